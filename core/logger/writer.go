package logger

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"sync"
)

type logLine struct {
	data  []byte
	level slog.Level
}

type sink struct {
	w        *bufio.Writer
	minLevel slog.Level
}

// asyncWriter fans formatted lines out to sinks from a single goroutine.
// Each sink only receives lines at or above its minimum level.
type asyncWriter struct {
	queue    chan logLine
	flushReq chan chan error
	done     chan struct{}
	once     sync.Once
	sinks    []sink
	mu       sync.Mutex
	writeErr error
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	return newLeveledWriter(writers, nil, bufSize)
}

// newLeveledWriter builds a writer where all receives every line and errs only WARN and above.
func newLeveledWriter(all, errs []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	var sinks []sink
	for _, w := range all {
		if w != nil {
			sinks = append(sinks, sink{w: bufio.NewWriterSize(w, bufSize), minLevel: slog.LevelDebug})
		}
	}
	for _, w := range errs {
		if w != nil {
			sinks = append(sinks, sink{w: bufio.NewWriterSize(w, bufSize), minLevel: slog.LevelWarn})
		}
	}
	aw := &asyncWriter{
		queue:    make(chan logLine, 256),
		flushReq: make(chan chan error),
		done:     make(chan struct{}),
		sinks:    sinks,
	}
	go aw.loop()
	return aw
}

func (w *asyncWriter) loop() {
	for {
		select {
		case line, ok := <-w.queue:
			if !ok {
				_ = w.flushAll()
				close(w.done)
				return
			}
			if err := w.writeAll(line); err != nil {
				w.setErr(err)
			}
		case ack := <-w.flushReq:
			ack <- w.flushAll()
		}
	}
}

// Write enqueues a copy of p; it blocks when the queue is full rather than dropping lines.
func (w *asyncWriter) Write(p []byte, level slog.Level) error {
	if err := w.getErr(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	data := make([]byte, len(p))
	copy(data, p)
	w.queue <- logLine{data: data, level: level}
	return nil
}

// Flush waits until everything queued so far reached the sinks.
func (w *asyncWriter) Flush() error {
	select {
	case <-w.done:
		return w.getErr()
	default:
	}
	ack := make(chan error, 1)
	w.flushReq <- ack
	return <-ack
}

// Close drains the queue and reports the first encountered write error.
func (w *asyncWriter) Close() error {
	w.once.Do(func() {
		close(w.queue)
	})
	<-w.done
	return w.getErr()
}

func (w *asyncWriter) writeAll(line logLine) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range w.sinks {
		if line.level < s.minLevel {
			continue
		}
		if _, err := s.w.Write(line.data); err != nil {
			return err
		}
		if err := s.w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (w *asyncWriter) flushAll() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for _, s := range w.sinks {
		if err := s.w.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) getErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeErr
}

func (w *asyncWriter) setErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writeErr == nil {
		w.writeErr = err
	}
}
