package llmhttp

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	dataPrefix = []byte("data:")
	doneMarker = []byte("[DONE]")
)

// streamBody passes a Server-Sent Events body through to the caller while reading
// each "data:" event. The span ends at EOF, on a read error or on Close,
// whichever comes first.
type streamBody struct {
	rc    io.ReadCloser
	span  trace.Span
	state *responseState

	mu      sync.Mutex
	pending []byte
	once    sync.Once
}

func newStreamBody(rc io.ReadCloser, span trace.Span, state *responseState) *streamBody {
	return &streamBody{rc: rc, span: span, state: state}
}

func (s *streamBody) Read(p []byte) (int, error) {
	n, err := s.rc.Read(p)
	if n > 0 {
		s.consume(p[:n])
	}
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		s.finish(nil)
	default:
		s.finish(err)
	}
	return n, err
}

func (s *streamBody) Close() error {
	err := s.rc.Close()
	s.finish(nil)
	return err
}

func (s *streamBody) consume(chunk []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, chunk...)
	for {
		i := bytes.IndexByte(s.pending, '\n')
		if i < 0 {
			return
		}
		s.line(s.pending[:i])
		s.pending = s.pending[i+1:]
	}
}

func (s *streamBody) line(line []byte) {
	line = bytes.TrimRight(line, "\r")
	data, ok := bytes.CutPrefix(line, dataPrefix)
	if !ok {
		return
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, doneMarker) {
		return
	}
	s.state.apply(data, true)
}

func (s *streamBody) finish(err error) {
	s.once.Do(func() {
		s.mu.Lock()
		if len(s.pending) > 0 {
			s.line(s.pending)
			s.pending = nil
		}
		attrs := s.state.attributes()
		s.mu.Unlock()

		s.span.SetAttributes(attrs...)
		if err != nil {
			s.span.RecordError(err)
			s.span.SetStatus(codes.Error, err.Error())
		}
		s.span.End()
	})
}
