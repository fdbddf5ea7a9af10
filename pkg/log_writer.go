package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// LogWriter fans out log lines to several sinks (stdout and the rotated file).
// A failing sink does not stop the others.
type LogWriter struct {
	sinks []io.Writer
}

func NewLogWriter(sinks ...io.Writer) *LogWriter {
	return &LogWriter{sinks: sinks}
}

func (lw *LogWriter) Sinks() int {
	return len(lw.sinks)
}

func (lw *LogWriter) Write(p []byte) (int, error) {
	var errs error
	written := 0
	for _, s := range lw.sinks {
		if _, err := s.Write(p); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		written++
	}

	if written == 0 && errs != nil {
		return 0, errs
	}
	return len(p), errs
}
