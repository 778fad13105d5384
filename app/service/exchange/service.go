package exchange

import (
	"context"
	"log/slog"
	"modelchat/app/config"
	"modelchat/app/provider"
	"modelchat/app/service/conversation"
	"time"

	"github.com/samber/do"
)

// Service orchestrates one full turn: append the user message, wait the
// pacing delay, dispatch the router with the provider captured at
// submission time, land the reply. A second submission while an exchange
// is pending is rejected explicitly, never queued.
type Service struct {
	cfg             *config.Config
	conversationSvc *conversation.Service
	router          *provider.Router
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:             do.MustInvoke[*config.Config](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		router:          do.MustInvoke[*provider.Router](di),
	}, nil
}

// Submit accepts one user message and starts its exchange in the
// background. Returns conversation.ErrEmptyMessage for whitespace-only
// input and conversation.ErrExchangeInFlight while a turn is pending;
// neither touches the conversation state.
func (s *Service) Submit(ctx context.Context, text string) (conversation.Message, error) {
	ex, err := s.conversationSvc.Begin(text)
	if err != nil {
		return conversation.Message{}, err
	}

	go s.runExchange(ctx, ex)

	return ex.UserMessage, nil
}

// runExchange always runs to completion once started; there is no abort
// path for a dispatched request. A reply that no longer matches the
// current exchange (the user switched models meanwhile) is dropped.
func (s *Service) runExchange(ctx context.Context, ex conversation.Exchange) {
	if delay := s.cfg.Chat.ReplyDelay(); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			slog.Info("Exchange abandoned on shutdown", "provider", ex.Provider)
			return
		}
	}

	start := time.Now()
	reply := s.router.Dispatch(ctx, ex.UserMessage.Text, ex.Provider)

	if !s.conversationSvc.Complete(ex.ID, reply, ex.Provider) {
		slog.Debug("Discarded stale reply",
			"provider", ex.Provider,
			"duration", time.Since(start))
		return
	}

	slog.Info("Completed exchange",
		"provider", ex.Provider,
		"duration", time.Since(start))
}
