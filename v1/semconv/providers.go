package semconv

import "strings"

// Canonical provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMistral   = "mistral"
	ProviderBedrock   = "bedrock"
	ProviderGemini    = "gemini"
	ProviderVertexAI  = "vertex_ai"
	ProviderAzure     = "azure"
	ProviderCohere    = "cohere"
	ProviderGroq      = "groq"
)

var providerAliases = map[string]string{
	"openai":               ProviderOpenAI,
	"openai.chat":          ProviderOpenAI,
	"openai.completion":    ProviderOpenAI,
	"openai.responses":     ProviderOpenAI,
	"openai.embedding":     ProviderOpenAI,
	"openai.embeddings":    ProviderOpenAI,
	"anthropic":            ProviderAnthropic,
	"anthropic.messages":   ProviderAnthropic,
	"anthropic.chat":       ProviderAnthropic,
	"mistral":              ProviderMistral,
	"mistralai":            ProviderMistral,
	"mistral.chat":         ProviderMistral,
	"mistral.embeddings":   ProviderMistral,
	"bedrock":              ProviderBedrock,
	"amazon-bedrock":       ProviderBedrock,
	"amazon.bedrock":       ProviderBedrock,
	"aws.bedrock":          ProviderBedrock,
	"aws_bedrock":          ProviderBedrock,
	"gemini":               ProviderGemini,
	"google":               ProviderGemini,
	"google.generative-ai": ProviderGemini,
	"google.generativeai":  ProviderGemini,
	"gemini.chat":          ProviderGemini,
	"vertex_ai":            ProviderVertexAI,
	"vertexai":             ProviderVertexAI,
	"google.vertex":        ProviderVertexAI,
	"google.vertex.chat":   ProviderVertexAI,
	"azure":                ProviderAzure,
	"azure-openai":         ProviderAzure,
	"azure.openai":         ProviderAzure,
	"azure-openai.chat":    ProviderAzure,
	"cohere":               ProviderCohere,
	"cohere.chat":          ProviderCohere,
	"groq":                 ProviderGroq,
	"groq.chat":            ProviderGroq,
}

// CanonicalProvider maps a loosely specified provider id onto the canonical set.
// Unknown providers are returned lower-cased rather than dropped.
func CanonicalProvider(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := providerAliases[lowered]; ok {
		return canonical
	}
	return lowered
}
