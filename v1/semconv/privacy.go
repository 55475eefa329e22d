package semconv

import (
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// PromptKeySubstrings covers the prompt/content attribute names used by the
// instrumentations we normalize. Any key containing one of them carries user content.
var PromptKeySubstrings = []string{
	"gen_ai.prompt",
	"gen_ai.completion",
	"gen_ai.request.messages",
	"gen_ai.response.messages",
	"gen_ai.input.messages",
	"gen_ai.output.messages",
	"gen_ai.system_instructions",
	"gen_ai.content",
	"llm.prompts",
	"llm.input_message",
	"llm.output_message",
	"llm.invocation_parameters",
	"input.value",
	"output.value",
	"ai.prompt",
	"ai.response.text",
	"ai.response.object",
	"ai.response.toolCalls",
	"ai.response.reasoning",
	"ai.toolCall.args",
	"ai.toolCall.result",
	"langchain.prompt",
}

// IsPromptKey reports whether key holds prompt or completion content.
func IsPromptKey(key attribute.Key) bool {
	k := string(key)
	for _, s := range PromptKeySubstrings {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}
