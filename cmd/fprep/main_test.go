package main

import (
	"testing"
	"time"

	"fprep/internal/shared"
)

func TestFormatUsage(t *testing.T) {
	meta := shared.GenMeta{
		Op: "RecipePlan",
		Usage: shared.TokenUsage{
			PromptTokens:     812,
			CompletionTokens: 1204,
		},
		Latency: 2345600 * time.Microsecond,
	}

	got := formatUsage(meta)
	want := "RecipePlan: 812 prompt + 1204 completion tokens in 2.346s"
	if got != want {
		t.Errorf("formatUsage() = %q, want %q", got, want)
	}
}
