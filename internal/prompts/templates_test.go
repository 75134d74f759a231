package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildIntentPrompt(t *testing.T) {
	prompt := BuildIntentPrompt("how much is delivery?")

	require.Contains(t, prompt, "Riya")
	require.Contains(t, prompt, "450")
	require.True(t, strings.HasSuffix(prompt, "User: how much is delivery?"))
}

func TestCannedRepliesNonEmpty(t *testing.T) {
	require.NotEmpty(t, HeuristicReply)
	require.NotEmpty(t, FallbackReply)
	require.LessOrEqual(t, len([]rune(FallbackReply)), 450)
}
