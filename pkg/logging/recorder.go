package logging

import (
	"github.com/rs/zerolog"
)

// Diagnostic is a single recovered-failure event reported by a component.
type Diagnostic struct {
	Level   LogLevel
	Message string
	Fields  map[string]any
	Err     error
}

// Recorder receives diagnostics. Components take a Recorder instead of
// writing to a global logger so tests can observe what was reported.
type Recorder interface {
	Record(d Diagnostic)
}

// RecorderFunc adapts a plain function to the Recorder interface.
type RecorderFunc func(d Diagnostic)

// Record calls f(d).
func (f RecorderFunc) Record(d Diagnostic) {
	f(d)
}

// Discard is a Recorder that drops every diagnostic.
var Discard Recorder = RecorderFunc(func(Diagnostic) {})

type zerologRecorder struct {
	logger zerolog.Logger
}

// NewRecorder returns a Recorder that writes diagnostics as structured
// zerolog events at the diagnostic's level (warn when unset).
func NewRecorder(logger zerolog.Logger) Recorder {
	return &zerologRecorder{logger: logger}
}

func (r *zerologRecorder) Record(d Diagnostic) {
	level := zerolog.WarnLevel
	if d.Level != "" {
		level = parseLevel(d.Level)
	}

	event := r.logger.WithLevel(level)
	if d.Err != nil {
		event = event.Err(d.Err)
	}
	if len(d.Fields) > 0 {
		event = event.Fields(d.Fields)
	}
	event.Msg(d.Message)
}
