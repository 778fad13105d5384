package provider

import (
	"context"
	"log/slog"
	"modelchat/app/config"

	"github.com/samber/do"
)

const unknownModelFallback = "I'm not sure which model you want me to use."

// Router dispatches a user message to the provider selected for it.
// The provider set is closed, one handler per tag.
type Router struct {
	gemini  Provider
	chatgpt Provider
	claude  Provider
}

func NewRouter(di *do.Injector) (*Router, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Router{
		gemini:  NewGemini(cfg),
		chatgpt: NewSimulated(IDChatGPT, chatGPTPersona, cfg.Chat.SimulatedDelay()),
		claude:  NewSimulated(IDClaude, claudePersona, cfg.Chat.SimulatedDelay()),
	}, nil
}

// Dispatch never fails: every branch, including the live provider's error
// paths, resolves to a reply string.
func (r *Router) Dispatch(ctx context.Context, text string, id ID) string {
	switch id {
	case IDGemini:
		return r.gemini.Respond(ctx, text)
	case IDChatGPT:
		return r.chatgpt.Respond(ctx, text)
	case IDClaude:
		return r.claude.Respond(ctx, text)
	default:
		slog.Warn("Unknown provider requested", "provider", id)
		return unknownModelFallback
	}
}
