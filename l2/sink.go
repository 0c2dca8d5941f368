package l2

import (
	"fmt"
	"io"
)

// LogSink is the destination for every per-operation event the cache
// emits. Mode (silent vs. normal) is a property of which sink is
// constructed at setup, never a conditional inside a handler.
type LogSink interface {
	Printf(format string, args ...any)
}

// fileSink writes every event to a single io.Writer, unconditionally.
// It backs the output log file, which receives every event regardless
// of CLI mode.
type fileSink struct {
	w io.Writer
}

// NewFileSink returns a LogSink that writes only to w.
func NewFileSink(w io.Writer) LogSink {
	return &fileSink{w: w}
}

func (s *fileSink) Printf(format string, args ...any) {
	fmt.Fprintf(s.w, format, args...)
}

// teeSink fans every event out to the log file and a second writer
// (stdout), used in normal mode.
type teeSink struct {
	file fileSink
	also io.Writer
}

// NewTeeSink returns a LogSink that writes to both file and also.
func NewTeeSink(file, also io.Writer) LogSink {
	return &teeSink{file: fileSink{w: file}, also: also}
}

func (s *teeSink) Printf(format string, args ...any) {
	s.file.Printf(format, args...)
	fmt.Fprintf(s.also, format, args...)
}
