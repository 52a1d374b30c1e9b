package log4g

import (
	"fmt"
	"html"
	"strings"
)

// HTMLLayout renders one <tr> table row per event in an HTML log table,
// colorizing WARN and above.
type HTMLLayout struct {
	Title string
}

// NewHTMLLayout creates an HTML layout with a default title.
func NewHTMLLayout() *HTMLLayout {
	return &HTMLLayout{Title: "log4g Log Messages"}
}

// ActivateOptions implements Layout.
func (h *HTMLLayout) ActivateOptions() {}

func escapeOrNbsp(s string) string {
	if s == "" {
		return "&nbsp;"
	}
	return html.EscapeString(s)
}

// Format implements Layout.
func (h *HTMLLayout) Format(event *LoggingEvent) []byte {
	var b strings.Builder
	b.WriteString("<tr>\r\n")
	fmt.Fprintf(&b, "<td>%d</td>\r\n", event.MillisSinceStart())
	fmt.Fprintf(&b, "<td title=\"%s thread\">%s</td>\r\n", html.EscapeString(event.ThreadID), html.EscapeString(event.ThreadID))

	levelCell := html.EscapeString(event.Level.String())
	switch {
	case event.Level.Rank() >= rankError:
		levelCell = `<font color="#993300"><strong>` + levelCell + `</strong></font>`
	case event.Level.Rank() >= rankWarn:
		levelCell = `<font color="#339933"><strong>` + levelCell + `</strong></font>`
	}
	fmt.Fprintf(&b, "<td title=\"Level\">%s</td>\r\n", levelCell)

	fmt.Fprintf(&b, "<td title=\"%s\">%s</td>\r\n", html.EscapeString(event.LoggerName), html.EscapeString(event.LoggerName))

	if event.Caller.File != "" {
		fmt.Fprintf(&b, "<td>%s:%d</td>\r\n", html.EscapeString(event.Caller.File), event.Caller.Line)
	}

	fmt.Fprintf(&b, "<td title=\"Message\">%s</td>\r\n", escapeOrNbsp(event.Message))
	b.WriteString("</tr>\r\n")
	return []byte(b.String())
}

// Header implements Layout.
func (h *HTMLLayout) Header() []byte {
	return []byte(fmt.Sprintf(
		"<html>\r\n<head><title>%s</title></head>\r\n<body>\r\n"+
			"<table cellspacing=\"0\" cellpadding=\"4\" border=\"1\">\r\n"+
			"<tr><th>Time</th><th>Thread</th><th>Level</th><th>Logger</th><th>Location</th><th>Message</th></tr>\r\n",
		html.EscapeString(h.Title)))
}

// Footer implements Layout.
func (h *HTMLLayout) Footer() []byte {
	return []byte("</table>\r\n</body>\r\n</html>\r\n")
}

// ContentType implements Layout.
func (h *HTMLLayout) ContentType() string { return "text/html" }
