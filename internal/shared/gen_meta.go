package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a single model request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// GenMeta holds operational metadata for one generation pass.
type GenMeta struct {
	Op      string
	Usage   TokenUsage
	Latency time.Duration
}
