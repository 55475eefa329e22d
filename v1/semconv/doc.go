// Package semconv holds the attribute vocabulary of the billing pipeline: the
// canonical GenAI keys every span is normalized into, the billing attribution keys,
// the provider-specific → canonical mapping table, provider-name canonicalization,
// span-kind and operation heuristics, the prompt/content key filter and the
// routing-name rules the collector relies on.
//
// Everything here is pure data and pure functions; the tracing package applies them.
package semconv
