// Package all links every LLM library adapter:
//
//	import _ "github.com/paid-ai/paid-go/v1/instrumentation/all"
package all

import (
	_ "github.com/paid-ai/paid-go/v1/instrumentation/anthropic"
	_ "github.com/paid-ai/paid-go/v1/instrumentation/gemini"
	_ "github.com/paid-ai/paid-go/v1/instrumentation/mistral"
	_ "github.com/paid-ai/paid-go/v1/instrumentation/openai"
)
