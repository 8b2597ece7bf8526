// internal/sink/sink.go
package sink

import (
    "io"
    "log"
    "sync"
)

// Sink receives the run's human-readable progress lines, one per row
// outcome plus a final summary line. Writes come from the background
// worker goroutine, so implementations must be safe for that.
type Sink interface {
    Write(line string)
}

// WriterSink serializes lines onto an io.Writer.
type WriterSink struct {
    mu sync.Mutex
    W  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
    return &WriterSink{W: w}
}

func (s *WriterSink) Write(line string) {
    s.mu.Lock()
    defer s.mu.Unlock()
    io.WriteString(s.W, line+"\n")
}

// LogSink forwards lines to the standard logger.
type LogSink struct{}

func (LogSink) Write(line string) {
    log.Println(line)
}

// ChannelSink hands lines to a consumer over a buffered channel, so the
// invoking surface never shares mutable state with the worker.
type ChannelSink struct {
    C chan string
}

func NewChannelSink(size int) *ChannelSink {
    return &ChannelSink{C: make(chan string, size)}
}

func (s *ChannelSink) Write(line string) {
    s.C <- line
}

// Close releases the channel once the run has completed.
func (s *ChannelSink) Close() {
    close(s.C)
}
