package server

import (
	"context"
	"fmt"
	"modelchat/app/config"
	"modelchat/app/service/conversation"
	"modelchat/app/service/exchange"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var _ do.Shutdownable = (*Service)(nil)

// Service is the HTTP surface of the chat demo: the conversation log, the
// model selector and the message submission endpoint.
type Service struct {
	cfg             *config.Config
	appCtx          context.Context
	conversationSvc *conversation.Service
	exchangeSvc     *exchange.Service

	app *fiber.App
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:             do.MustInvoke[*config.Config](di),
		appCtx:          do.MustInvoke[context.Context](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		exchangeSvc:     do.MustInvoke[*exchange.Service](di),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.Server.CORSOrigins,
	}))

	app.Get("/healthz", s.handleHealth)
	app.Get("/api/messages", s.handleListMessages)
	app.Post("/api/messages", s.handleSubmitMessage)
	app.Get("/api/model", s.handleGetModel)
	app.Put("/api/model", s.handleSelectModel)
	app.Post("/api/reset", s.handleReset)

	s.app = app

	return s, nil
}

func (s *Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.app.Listen(s.cfg.Server.Addr); err != nil {
			return fmt.Errorf("server listen failed: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		return s.app.ShutdownWithTimeout(shutdownTimeout)
	})

	return g.Wait()
}

func (s *Service) Shutdown() error {
	return s.app.ShutdownWithTimeout(shutdownTimeout)
}
