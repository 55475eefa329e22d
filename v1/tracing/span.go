package tracing

import (
	"slices"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// attributeSet keeps attributes in first-write order with last-write-wins values.
type attributeSet struct {
	keys   []attribute.Key
	values map[attribute.Key]attribute.Value
}

func (s *attributeSet) set(kv attribute.KeyValue) {
	if s.values == nil {
		s.values = make(map[attribute.Key]attribute.Value)
	}
	if _, ok := s.values[kv.Key]; !ok {
		s.keys = append(s.keys, kv.Key)
	}
	s.values[kv.Key] = kv.Value
}

func (s *attributeSet) get(key attribute.Key) (attribute.Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *attributeSet) remove(key attribute.Key) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	s.keys = slices.DeleteFunc(s.keys, func(k attribute.Key) bool { return k == key })
	return true
}

func (s *attributeSet) list() []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, attribute.KeyValue{Key: k, Value: s.values[k]})
	}
	return out
}

// decoratedSpan buffers the name and attributes of a recording SDK span so that
// processors can still rewrite them at end time. The buffer is flushed into the
// SDK span just before it ends.
type decoratedSpan struct {
	trace.Span

	provider *TracerProvider
	tc       TracingContext

	mu         sync.Mutex
	name       string
	attrs      attributeSet
	filters    []func(attribute.Key) bool
	suppressed int
	ending     bool
	flushed    bool
}

var (
	_ trace.Span  = (*decoratedSpan)(nil)
	_ MutableSpan = (*decoratedSpan)(nil)
)

func newDecoratedSpan(span trace.Span, provider *TracerProvider, name string, tc TracingContext, attrs []attribute.KeyValue) *decoratedSpan {
	s := &decoratedSpan{
		Span:     span,
		provider: provider,
		tc:       tc,
		name:     name,
	}
	for _, kv := range attrs {
		s.attrs.set(kv)
	}
	return s
}

func (s *decoratedSpan) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *decoratedSpan) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flushed {
		return
	}
	s.name = name
}

func (s *decoratedSpan) Attribute(key attribute.Key) (attribute.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attrs.get(key)
}

func (s *decoratedSpan) Attributes() []attribute.KeyValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attrs.list()
}

func (s *decoratedSpan) SetAttributes(kv ...attribute.KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flushed {
		return
	}
	for _, a := range kv {
		if !a.Valid() {
			continue
		}
		if s.rejectedLocked(a.Key) {
			s.suppressed++
			continue
		}
		s.attrs.set(a)
	}
}

func (s *decoratedSpan) DeleteAttributes(keys ...attribute.Key) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, k := range keys {
		if s.attrs.remove(k) {
			n++
		}
	}
	return n
}

func (s *decoratedSpan) FilterAttributes(drop func(attribute.Key) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if drop == nil {
		return 0
	}
	s.filters = append(s.filters, drop)
	n := 0
	for _, k := range slices.Clone(s.attrs.keys) {
		if drop(k) {
			s.attrs.remove(k)
			n++
		}
	}
	s.suppressed += n
	return n
}

func (s *decoratedSpan) TracingContext() TracingContext {
	return s.tc
}

// AddEvent forwards the event without the attributes an engaged filter rejects.
func (s *decoratedSpan) AddEvent(name string, options ...trace.EventOption) {
	s.mu.Lock()
	filtering := len(s.filters) > 0
	s.mu.Unlock()
	if !filtering {
		s.Span.AddEvent(name, options...)
		return
	}

	cfg := trace.NewEventConfig(options...)
	s.mu.Lock()
	kept := make([]attribute.KeyValue, 0, len(cfg.Attributes()))
	for _, kv := range cfg.Attributes() {
		if s.rejectedLocked(kv.Key) {
			s.suppressed++
			continue
		}
		kept = append(kept, kv)
	}
	s.mu.Unlock()

	opts := []trace.EventOption{trace.WithAttributes(kept...)}
	if ts := cfg.Timestamp(); !ts.IsZero() {
		opts = append(opts, trace.WithTimestamp(ts))
	}
	if cfg.StackTrace() {
		opts = append(opts, trace.WithStackTrace(true))
	}
	s.Span.AddEvent(name, opts...)
}

// End runs the OnEnd processors, writes the buffered state and ends the SDK span.
// Only the first call has any effect.
func (s *decoratedSpan) End(options ...trace.SpanEndOption) {
	s.mu.Lock()
	if s.ending {
		s.mu.Unlock()
		return
	}
	s.ending = true
	s.mu.Unlock()

	s.provider.pipeline.onEnd(s)

	s.mu.Lock()
	name := s.name
	attrs := s.attrs.list()
	s.flushed = true
	s.mu.Unlock()

	s.Span.SetName(name)
	if len(attrs) > 0 {
		s.Span.SetAttributes(attrs...)
	}
	s.Span.End(options...)
}

func (s *decoratedSpan) TracerProvider() trace.TracerProvider {
	return s.provider
}

func (s *decoratedSpan) suppressedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suppressed
}

func (s *decoratedSpan) rejectedLocked(key attribute.Key) bool {
	for _, drop := range s.filters {
		if drop(key) {
			return true
		}
	}
	return false
}
