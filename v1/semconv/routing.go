package semconv

import "strings"

const (
	// RoutingPrefix marks a span for ingestion by the billing collector.
	RoutingPrefix = "paid.trace."

	// SignalSuffix marks a span the collector converts into a billable signal.
	SignalSuffix = ".signal"

	rootName   = "trace"
	rootPrefix = "trace."
)

// RoutedName returns name carrying the routing prefix and, when suffix is set, the
// signal suffix. Names that already carry them are left as they are, so
// RoutedName(RoutedName(n, s), s) == RoutedName(n, s).
//
// Names in the SDK's own "trace" namespace only gain "paid.": "trace.signal"
// becomes "paid.trace.signal", not "paid.trace.trace.signal".
func RoutedName(name string, suffix bool) string {
	switch {
	case IsRouted(name):
	case name == rootName || strings.HasPrefix(name, rootPrefix):
		name = "paid." + name
	default:
		name = RoutingPrefix + name
	}
	if suffix && !strings.HasSuffix(name, SignalSuffix) {
		name += SignalSuffix
	}
	return name
}

// IsRouted reports whether name already carries the routing prefix. The routed
// root name "paid.trace" counts as routed.
func IsRouted(name string) bool {
	return name == "paid."+rootName || strings.HasPrefix(name, RoutingPrefix)
}
