package log4g

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Layout formats a LoggingEvent into bytes for an appender's sink —
// Header/Footer/ContentType are optional; the zero values
// (nil, nil, "") are valid for layouts that don't need them.
type Layout interface {
	Format(event *LoggingEvent) []byte
	Header() []byte
	Footer() []byte
	ContentType() string
	ActivateOptions()
}

// TextLayout is the simple, non-configurable line formatter: timestamp,
// optional caller, level, optional marker, message.
type TextLayout struct {
	TimeFormat string
	ShowCaller bool
}

// NewTextLayout creates the default simple text layout.
func NewTextLayout() *TextLayout {
	return &TextLayout{TimeFormat: "2006-01-02 15:04:05.000", ShowCaller: true}
}

// Format implements Layout.
func (t *TextLayout) Format(event *LoggingEvent) []byte {
	var parts []string
	parts = append(parts, event.Time.Format(t.TimeFormat))
	if t.ShowCaller && event.Caller.File != "" {
		parts = append(parts, fmt.Sprintf("%s:%d", event.Caller.File, event.Caller.Line))
	}
	parts = append(parts, "["+event.Level.String()+"]")
	if event.Marker != "" {
		parts = append(parts, "["+event.Marker+"]")
	}
	parts = append(parts, event.LoggerName+" -")
	parts = append(parts, event.Message)
	return []byte(strings.Join(parts, " ") + "\n")
}

// Header implements Layout.
func (t *TextLayout) Header() []byte { return nil }

// Footer implements Layout.
func (t *TextLayout) Footer() []byte { return nil }

// ContentType implements Layout.
func (t *TextLayout) ContentType() string { return "text/plain" }

// ActivateOptions implements Layout.
func (t *TextLayout) ActivateOptions() {}

// patternVerb is one converter in a compiled PatternLayout: either a
// literal run of text, or a %-specifier with its width modifiers and
// optional {param}.
type patternVerb struct {
	literal string

	verb    byte
	param   string
	minWid  int
	maxWid  int
	left    bool
	hasMin  bool
	hasMax  bool
}

// PatternLayout implements the §4.6 conversion-pattern grammar with a
// small state machine: LITERAL -> CONVERTER (on '%') -> optional '-' ->
// optional digits (MIN) -> optional '.' -> optional digits (MAX) ->
// specifier char, optionally followed by {param}, returning to LITERAL.
//
// Specifiers: c (logger name, optional {N} = rightmost N dot-components),
// d{format} (date; strftime directives such as %Y are translated, other
// text is used as a Go reference-time layout), F (file), L (line),
// M (function), l (file:line), m (message), n (newline), p (level),
// r (milliseconds since start), t (thread label), x (NDC), X{key} (MDC),
// %% (literal percent).
type PatternLayout struct {
	pattern string
	verbs   []patternVerb
	// PadChar fills the width gap for a min-width specifier; space unless
	// a configuration sets it otherwise.
	PadChar byte
}

// NewPatternLayout compiles pattern into a PatternLayout. Example:
// "%d{2006-01-02 15:04:05.000} [%p] %c - %m%n".
func NewPatternLayout(pattern string) *PatternLayout {
	p := &PatternLayout{pattern: pattern, PadChar: ' '}
	p.compile()
	return p
}

// ActivateOptions re-compiles the pattern; useful after the configurator
// sets the Pattern property via reflection-free string assignment.
func (p *PatternLayout) ActivateOptions() { p.compile() }

// SetPattern replaces the conversion pattern and recompiles.
func (p *PatternLayout) SetPattern(pattern string) {
	p.pattern = pattern
	p.compile()
}

func (p *PatternLayout) compile() {
	p.verbs = nil
	s := p.pattern
	var lit strings.Builder
	flushLit := func() {
		if lit.Len() > 0 {
			p.verbs = append(p.verbs, patternVerb{literal: lit.String()})
			lit.Reset()
		}
	}
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '%' {
			lit.WriteByte(c)
			i++
			continue
		}
		// '%' seen; peek ahead for escaped percent.
		if i+1 < len(s) && s[i+1] == '%' {
			lit.WriteByte('%')
			i += 2
			continue
		}
		flushLit()
		i++ // consume '%'
		v := patternVerb{}
		if i < len(s) && s[i] == '-' {
			v.left = true
			i++
		}
		minStart := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i > minStart {
			v.hasMin = true
			v.minWid, _ = strconv.Atoi(s[minStart:i])
		}
		if i < len(s) && s[i] == '.' {
			i++
			maxStart := i
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				i++
			}
			if i > maxStart {
				v.hasMax = true
				v.maxWid, _ = strconv.Atoi(s[maxStart:i])
			}
		}
		if i >= len(s) {
			break
		}
		v.verb = s[i]
		i++
		if i < len(s) && s[i] == '{' {
			end := strings.IndexByte(s[i:], '}')
			if end >= 0 {
				v.param = s[i+1 : i+end]
				i += end + 1
			}
		}
		p.verbs = append(p.verbs, v)
	}
	flushLit()
}

func (p *PatternLayout) renderVerb(v patternVerb, event *LoggingEvent) string {
	switch v.verb {
	case 'c':
		name := event.LoggerName
		if v.param != "" {
			n, err := strconv.Atoi(v.param)
			if err == nil && n > 0 {
				name = rightmostComponents(name, n)
			}
		}
		return name
	case 'd':
		format := "2006-01-02 15:04:05.000"
		if v.param != "" {
			format = translateStrftime(v.param)
		}
		return event.Time.Format(format)
	case 'F':
		return event.Caller.File
	case 'L':
		return strconv.Itoa(event.Caller.Line)
	case 'M':
		return event.Caller.Function
	case 'l':
		return fmt.Sprintf("%s:%d", event.Caller.File, event.Caller.Line)
	case 'm':
		return event.Message
	case 'n':
		return "\n"
	case 'p':
		return event.Level.String()
	case 'r':
		return strconv.FormatInt(event.MillisSinceStart(), 10)
	case 't':
		return event.ThreadID
	case 'x':
		return event.NDC
	case 'X':
		if v.param == "" {
			return ""
		}
		if val, ok := event.MDC[v.param]; ok {
			return fmt.Sprintf("%v", val)
		}
		return ""
	default:
		return "%" + string(v.verb)
	}
}

// strftimeToGo maps strftime(3) conversion directives to the equivalent
// Go reference-time layout token, covering the directives a %d{...} date
// conversion pattern is documented to accept.
var strftimeToGo = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'e': "_2",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'P': "pm",
	'Z': "MST",
	'z': "-0700",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'h': "Jan",
	'B': "January",
	'T': "15:04:05",
	'F': "2006-01-02",
	'D': "01/02/06",
	'R': "15:04",
	'n': "\n",
	't': "\t",
}

// translateStrftime rewrites a strftime-style date format (the form
// spec.md's %d{...} documents, e.g. "%Y-%m-%d %H:%M:%S") into the Go
// reference-time layout string time.Format expects. Directives this table
// doesn't recognize, and any literal text between them, pass through
// unchanged — so a format that happens to already be a Go reference-time
// layout (containing no '%') round-trips untouched.
func translateStrftime(format string) string {
	var out strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			out.WriteByte(format[i])
			continue
		}
		next := format[i+1]
		if next == '%' {
			out.WriteByte('%')
			i++
			continue
		}
		if tok, ok := strftimeToGo[next]; ok {
			out.WriteString(tok)
			i++
			continue
		}
		out.WriteByte(format[i])
	}
	return out.String()
}

func rightmostComponents(name string, n int) string {
	parts := strings.Split(name, ".")
	if len(parts) <= n {
		return name
	}
	return strings.Join(parts[len(parts)-n:], ".")
}

func applyWidth(s string, v patternVerb, padChar byte) string {
	if v.hasMax && len(s) > v.maxWid {
		s = s[len(s)-v.maxWid:]
	}
	if v.hasMin && len(s) < v.minWid {
		pad := strings.Repeat(string(padChar), v.minWid-len(s))
		if v.left {
			s = s + pad
		} else {
			s = pad + s
		}
	}
	return s
}

// Format implements Layout.
func (p *PatternLayout) Format(event *LoggingEvent) []byte {
	var buf bytes.Buffer
	for _, v := range p.verbs {
		if v.verb == 0 {
			buf.WriteString(v.literal)
			continue
		}
		buf.WriteString(applyWidth(p.renderVerb(v, event), v, p.PadChar))
	}
	return buf.Bytes()
}

// Header implements Layout.
func (p *PatternLayout) Header() []byte { return nil }

// Footer implements Layout.
func (p *PatternLayout) Footer() []byte { return nil }

// ContentType implements Layout.
func (p *PatternLayout) ContentType() string { return "text/plain" }

// DefaultPattern is the pattern BasicConfigurator wires into its console
// appender.
const DefaultPattern = "%d{2006-01-02 15:04:05.000} [%p] %c - %m%n"
