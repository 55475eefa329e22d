package llmhttp

import (
	"net/http"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

type route struct {
	dialect *Dialect
	tracer  trace.Tracer
}

// Transport traces requests to known LLM hosts and forwards everything else untouched.
type Transport struct {
	// Base sends the requests. http.DefaultTransport when nil.
	Base http.RoundTripper

	mu     sync.RWMutex
	routes map[string]route
}

var _ http.RoundTripper = (*Transport)(nil)

// NewTransport wraps base, tracing requests to the hosts of dialects with tp.
// A nil tp means the global OpenTelemetry provider.
func NewTransport(base http.RoundTripper, tp trace.TracerProvider, dialects ...Dialect) *Transport {
	t := &Transport{Base: base}
	t.Add(tp, dialects...)
	return t
}

// Add routes the hosts of dialects through tp. A later Add for the same host wins.
func (t *Transport) Add(tp trace.TracerProvider, dialects ...Dialect) {
	tracer := tracerFor(tp)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.routes == nil {
		t.routes = make(map[string]route)
	}
	for i := range dialects {
		d := dialects[i]
		for _, host := range d.Hosts {
			t.routes[strings.ToLower(host)] = route{dialect: &d, tracer: tracer}
		}
	}
}

// Routes reports whether requests to host are traced.
func (t *Transport) Routes(host string) bool {
	_, ok := t.lookup(host)
	return ok
}

func (t *Transport) lookup(host string) (route, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.routes[strings.ToLower(host)]
	return r, ok
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base()
	if already(req.Context()) {
		return base.RoundTrip(req)
	}
	r, ok := t.lookup(req.URL.Hostname())
	if !ok {
		return base.RoundTrip(req)
	}
	operation := r.dialect.operation(req.URL.Path)
	if operation == "" {
		return base.RoundTrip(req)
	}
	return roundTrip(r.tracer, r.dialect, operation, req, base.RoundTrip)
}

// Middleware returns an SDK middleware tracing every request whose path maps to
// an operation of d, whatever the host. It has the shape of option.Middleware in
// the OpenAI and Anthropic Go SDKs.
func Middleware(tp trace.TracerProvider, d Dialect) func(*http.Request, Next) (*http.Response, error) {
	tracer := tracerFor(tp)
	return func(req *http.Request, next Next) (*http.Response, error) {
		if already(req.Context()) {
			return next(req)
		}
		operation := d.operation(req.URL.Path)
		if operation == "" {
			return next(req)
		}
		return roundTrip(tracer, &d, operation, req, next)
	}
}

var (
	globalMu sync.Mutex
	global   *Transport
)

// Install wraps http.DefaultTransport, once, so that every client using it is
// traced for the hosts of dialects. Further calls add routes to the same wrapper.
// Call it before issuing requests: replacing http.DefaultTransport is not
// synchronized with requests already in flight.
func Install(tp trace.TracerProvider, dialects ...Dialect) *Transport {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = &Transport{Base: http.DefaultTransport}
		http.DefaultTransport = global
	}
	global.Add(tp, dialects...)
	return global
}

// Uninstall restores the http.DefaultTransport that Install wrapped.
func Uninstall() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		return
	}
	if http.DefaultTransport == global {
		http.DefaultTransport = global.Base
	}
	global = nil
}

// WrapClient makes client trace requests to the hosts of dialects and returns it.
// Wrapping an already wrapped client only adds routes.
func WrapClient(client *http.Client, tp trace.TracerProvider, dialects ...Dialect) *http.Client {
	if client == nil {
		client = &http.Client{}
	}
	if t, ok := client.Transport.(*Transport); ok {
		t.Add(tp, dialects...)
		return client
	}
	client.Transport = NewTransport(client.Transport, tp, dialects...)
	return client
}
