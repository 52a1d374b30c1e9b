package log4g

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// XMLLayout renders a <log4g:event> element per event, suitable for
// feeding a log-aggregation XML parser.
type XMLLayout struct {
	LocationInfo bool
	Properties   bool
}

// NewXMLLayout creates an XML layout with location info included.
func NewXMLLayout() *XMLLayout {
	return &XMLLayout{LocationInfo: true, Properties: true}
}

// ActivateOptions implements Layout.
func (x *XMLLayout) ActivateOptions() {}

type xmlLocation struct {
	XMLName  xml.Name `xml:"log4g:locationInfo"`
	Function string   `xml:"function,attr"`
	File     string   `xml:"file,attr"`
	Line     int      `xml:"line,attr"`
}

type xmlData struct {
	XMLName xml.Name `xml:"log4g:data"`
	Name    string   `xml:"name,attr"`
	Value   string   `xml:"value,attr"`
}

type xmlProperties struct {
	XMLName xml.Name  `xml:"log4g:properties"`
	Data    []xmlData `xml:"log4g:data"`
}

type xmlEvent struct {
	XMLName    xml.Name       `xml:"log4g:event"`
	Logger     string         `xml:"logger,attr"`
	Timestamp  string         `xml:"timestamp,attr"`
	Level      string         `xml:"level,attr"`
	Thread     string         `xml:"thread,attr"`
	Message    string         `xml:"log4g:message"`
	NDC        string         `xml:"log4g:NDC,omitempty"`
	Location   *xmlLocation   `xml:"log4g:locationInfo"`
	Properties *xmlProperties `xml:"log4g:properties"`
}

// Format implements Layout.
func (x *XMLLayout) Format(event *LoggingEvent) []byte {
	ev := xmlEvent{
		Logger:    event.LoggerName,
		Timestamp: event.Time.Format("2006-01-02T15:04:05.000Z07:00"),
		Level:     event.Level.String(),
		Thread:    event.ThreadID,
		Message:   event.Message,
		NDC:       event.NDC,
	}
	if x.LocationInfo && event.Caller.File != "" {
		ev.Location = &xmlLocation{
			Function: event.Caller.Function,
			File:     event.Caller.File,
			Line:     event.Caller.Line,
		}
	}
	if x.Properties && len(event.MDC) > 0 {
		props := &xmlProperties{}
		for k, v := range event.MDC {
			props.Data = append(props.Data, xmlData{Name: k, Value: fmt.Sprintf("%v", v)})
		}
		ev.Properties = props
	}

	out, err := xml.MarshalIndent(ev, "", "  ")
	if err != nil {
		return []byte(fmt.Sprintf("<log4g:event error=%q/>\r\n", err.Error()))
	}
	var buf bytes.Buffer
	buf.Write(out)
	buf.WriteString("\r\n\r\n")
	return buf.Bytes()
}

// Header implements Layout.
func (x *XMLLayout) Header() []byte { return nil }

// Footer implements Layout.
func (x *XMLLayout) Footer() []byte { return nil }

// ContentType implements Layout.
func (x *XMLLayout) ContentType() string { return "text/xml" }
