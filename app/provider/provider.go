package provider

import (
	"context"

	"github.com/elliotchance/pie/v2"
)

// ID identifies one of the three chat models the user can pick.
type ID string

const (
	IDGemini  ID = "gemini"
	IDChatGPT ID = "chatgpt"
	IDClaude  ID = "claude"
)

func All() []ID {
	return []ID{IDGemini, IDChatGPT, IDClaude}
}

func Parse(raw string) (ID, bool) {
	id := ID(raw)
	if !pie.Contains(All(), id) {
		return "", false
	}

	return id, true
}

// Provider turns a user message into a bot reply. Respond never fails:
// every fault inside a provider is normalized to a fallback string.
type Provider interface {
	ID() ID
	Respond(ctx context.Context, text string) string
}
