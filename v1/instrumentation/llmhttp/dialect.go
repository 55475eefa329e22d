package llmhttp

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Paths lists alternative gjson paths for one value. The first that exists wins.
type Paths []string

// Get returns the first existing result for payload.
func (p Paths) Get(payload []byte) gjson.Result {
	for _, path := range p {
		if r := gjson.GetBytes(payload, path); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// Dialect describes one provider's HTTP wire format.
type Dialect struct {
	// System is the provider id and the first segment of span names, e.g. "openai".
	System string

	// Hosts are matched against the request host by Transport. Middleware ignores them.
	Hosts []string

	// Operation maps a request path to an operation name such as "chat" or
	// "embeddings". An empty result means the request is not traced.
	Operation func(path string) string

	// PathModel extracts the model from the request path when the body does not carry it.
	PathModel func(path string) string

	RequestModel Paths
	Prompt       Paths

	ResponseModel Paths
	ResponseID    Paths
	FinishReason  Paths
	Completion    Paths

	InputTokens  Paths
	OutputTokens Paths
	TotalTokens  Paths

	// StreamCompletion is read from every SSE event and concatenated.
	StreamCompletion Paths
}

func (d *Dialect) operation(path string) string {
	if d.Operation == nil {
		return ""
	}
	return d.Operation(path)
}

func (d *Dialect) requestModel(path string, body []byte) string {
	if m := d.RequestModel.Get(body); m.Exists() {
		return m.String()
	}
	if d.PathModel != nil {
		return d.PathModel(path)
	}
	return ""
}

// SuffixOperations builds an Operation func from path suffixes.
// Earlier entries win, so list longer suffixes first.
func SuffixOperations(pairs ...[2]string) func(path string) string {
	return func(path string) string {
		path = strings.TrimSuffix(path, "/")
		for _, p := range pairs {
			if strings.HasSuffix(path, p[0]) {
				return p[1]
			}
		}
		return ""
	}
}
