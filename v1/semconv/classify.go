package semconv

import "strings"

// namePrefixes and nameMarkers are matched against the lower-cased span name.
var (
	namePrefixes = []string{
		"ai.",
		"openai.",
		"anthropic.",
		"mistral.",
		"gemini.",
		"bedrock.",
	}
	nameMarkers = []string{
		".ai.",
		"generatetext",
		"streamtext",
		"generateobject",
		"streamobject",
		"embed",
		"toolcall",
	}
)

// MatchesLLMName reports whether a span name follows a known LLM-call naming convention.
func MatchesLLMName(name string) bool {
	lowered := strings.ToLower(name)
	for _, p := range namePrefixes {
		if strings.HasPrefix(lowered, p) {
			return true
		}
	}
	// routed spans keep their original name after the prefix
	if rest, ok := strings.CutPrefix(lowered, strings.ToLower(RoutingPrefix)); ok {
		for _, p := range namePrefixes {
			if strings.HasPrefix(rest, p) {
				return true
			}
		}
	}
	for _, m := range nameMarkers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}

// ClassifySpanKind picks an OpenInference span kind from the span name and an
// optional operation name. Ambiguous input defaults to LLM.
func ClassifySpanKind(name, operation string) string {
	switch classify(name, operation) {
	case classEmbedding:
		return SpanKindEmbedding
	case classTool:
		return SpanKindTool
	case classAgent:
		return SpanKindAgent
	default:
		return SpanKindLLM
	}
}

// InferOperationName maps the same heuristics onto the GenAI operation vocabulary,
// defaulting to chat.
func InferOperationName(name, operation string) string {
	switch classify(name, operation) {
	case classEmbedding:
		return OperationEmbeddings
	case classTool:
		return OperationExecuteTool
	case classAgent:
		return OperationInvokeAgent
	default:
		return OperationChat
	}
}

type spanClass int

const (
	classLLM spanClass = iota
	classEmbedding
	classTool
	classAgent
)

func classify(name, operation string) spanClass {
	for _, s := range []string{strings.ToLower(operation), strings.ToLower(name)} {
		switch {
		case s == "":
			continue
		case strings.Contains(s, "embed"):
			return classEmbedding
		case strings.Contains(s, "tool"):
			return classTool
		case strings.Contains(s, "agent"):
			return classAgent
		}
	}
	return classLLM
}
