package semconv

import "go.opentelemetry.io/otel/attribute"

// Billing attribution keys read by the collector.
const (
	ExternalCustomerIDKey = attribute.Key("external_customer_id")
	ExternalAgentIDKey    = attribute.Key("external_agent_id")
	TokenKey              = attribute.Key("token")
	EventNameKey          = attribute.Key("event_name")
	DataKey               = attribute.Key("data")
	EnableCostTracingKey  = attribute.Key("enable_cost_tracing")
	MetadataKey           = attribute.Key("metadata")
)

// Canonical GenAI keys.
const (
	GenAISystemKey                = attribute.Key("gen_ai.system")
	GenAIOperationNameKey         = attribute.Key("gen_ai.operation.name")
	GenAIRequestModelKey          = attribute.Key("gen_ai.request.model")
	GenAIResponseModelKey         = attribute.Key("gen_ai.response.model")
	GenAIResponseIDKey            = attribute.Key("gen_ai.response.id")
	GenAIResponseFinishReasonsKey = attribute.Key("gen_ai.response.finish_reasons")
	GenAIUsageInputTokensKey      = attribute.Key("gen_ai.usage.input_tokens")
	GenAIUsageOutputTokensKey     = attribute.Key("gen_ai.usage.output_tokens")
	GenAIUsageTotalTokensKey      = attribute.Key("gen_ai.usage.total_tokens")
	GenAIToolNameKey              = attribute.Key("gen_ai.tool.name")
	GenAIToolCallIDKey            = attribute.Key("gen_ai.tool.call.id")

	// SpanKindKey follows the OpenInference convention.
	SpanKindKey = attribute.Key("openinference.span.kind")
)

// Provider-specific keys. The "ai.*" family is the Vercel AI SDK convention
// (v4 and v5 token names), "gen_ai.usage.*_tokens" and "llm.usage.*" the
// OpenLLMetry one, "llm.token_count.*" the OpenInference one.
const (
	AIModelIDKey                  = attribute.Key("ai.model.id")
	AIModelProviderKey            = attribute.Key("ai.model.provider")
	AIOperationIDKey              = attribute.Key("ai.operationId")
	AIResponseModelKey            = attribute.Key("ai.response.model")
	AIResponseIDKey               = attribute.Key("ai.response.id")
	AIResponseFinishReasonKey     = attribute.Key("ai.response.finishReason")
	AIUsagePromptTokensKey        = attribute.Key("ai.usage.promptTokens")
	AIUsageInputTokensKey         = attribute.Key("ai.usage.inputTokens")
	AIUsageCompletionTokensKey    = attribute.Key("ai.usage.completionTokens")
	AIUsageOutputTokensKey        = attribute.Key("ai.usage.outputTokens")
	AIUsageTotalTokensKey         = attribute.Key("ai.usage.totalTokens")
	AIToolCallNameKey             = attribute.Key("ai.toolCall.name")
	AIToolCallIDKey               = attribute.Key("ai.toolCall.id")
	GenAIUsagePromptTokensKey     = attribute.Key("gen_ai.usage.prompt_tokens")
	GenAIUsageCompletionTokensKey = attribute.Key("gen_ai.usage.completion_tokens")
	LLMUsageTotalTokensKey        = attribute.Key("llm.usage.total_tokens")
	LLMModelNameKey               = attribute.Key("llm.model_name")
	LLMProviderKey                = attribute.Key("llm.provider")
	LLMTokenCountPromptKey        = attribute.Key("llm.token_count.prompt")
	LLMTokenCountCompletionKey    = attribute.Key("llm.token_count.completion")
	LLMTokenCountTotalKey         = attribute.Key("llm.token_count.total")

	// GenAIPromptKey and GenAICompletionKey carry raw content and are always subject
	// to the prompt filter.
	GenAIPromptKey     = attribute.Key("gen_ai.prompt")
	GenAICompletionKey = attribute.Key("gen_ai.completion")
)

// Span kinds written to SpanKindKey.
const (
	SpanKindLLM       = "LLM"
	SpanKindEmbedding = "EMBEDDING"
	SpanKindTool      = "TOOL"
	SpanKindAgent     = "AGENT"
)

// Operation names written to GenAIOperationNameKey.
const (
	OperationChat        = "chat"
	OperationEmbeddings  = "embeddings"
	OperationExecuteTool = "execute_tool"
	OperationInvokeAgent = "invoke_agent"
)
