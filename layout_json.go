package log4g

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSONLayout formats an event as one JSON object per line.
type JSONLayout struct {
	Pretty     bool
	TimeFormat string
}

// NewJSONLayout creates a JSON layout with RFC3339Nano timestamps.
func NewJSONLayout() *JSONLayout {
	return &JSONLayout{TimeFormat: time.RFC3339Nano}
}

// ActivateOptions implements Layout.
func (j *JSONLayout) ActivateOptions() {
	if j.TimeFormat == "" {
		j.TimeFormat = time.RFC3339Nano
	}
}

// Format implements Layout.
func (j *JSONLayout) Format(event *LoggingEvent) []byte {
	data := map[string]interface{}{
		"timestamp": event.Time.Format(j.TimeFormat),
		"level":     event.Level.String(),
		"logger":    event.LoggerName,
		"message":   event.Message,
		"thread":    event.ThreadID,
	}
	if event.Caller.File != "" {
		data["file"] = event.Caller.File
		data["line"] = event.Caller.Line
	}
	if event.Marker != "" {
		data["marker"] = event.Marker
	}
	if event.NDC != "" {
		data["ndc"] = event.NDC
	}
	if len(event.MDC) > 0 {
		data["mdc"] = event.MDC
	}
	for k, v := range event.Fields {
		data[k] = v
	}
	if event.Error != nil {
		data["error"] = event.Error.Error()
	}

	var out []byte
	var err error
	if j.Pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return []byte(fmt.Sprintf(`{"error":"marshal failed: %v"}`+"\n", err))
	}
	return append(out, '\n')
}

// Header implements Layout.
func (j *JSONLayout) Header() []byte { return nil }

// Footer implements Layout.
func (j *JSONLayout) Footer() []byte { return nil }

// ContentType implements Layout.
func (j *JSONLayout) ContentType() string { return "application/json" }
