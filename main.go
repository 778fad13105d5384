package main

import (
	"context"
	"log/slog"
	"modelchat/app/config"
	"modelchat/app/provider"
	"modelchat/app/server"
	"modelchat/app/service/conversation"
	"modelchat/app/service/exchange"
	"modelchat/app/util/mylog"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	_ = godotenv.Load()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, provider.NewRouter)
	do.Provide(di, conversation.New)
	do.Provide(di, exchange.New)
	do.Provide(di, server.New)

	slog.Info("Service started", "addr", cfg.Server.Addr)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if err = do.MustInvoke[*server.Service](di).Run(appCtx); err != nil {
		slog.Error("Server stopped", "error", err)
	}
}
