package main

import (
	"context"
	"time"

	"github.com/likmaa/ejs-market/config"
	"github.com/likmaa/ejs-market/internal/app"
	"github.com/likmaa/ejs-market/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	marketService := app.New(sigCtx, cfg)

	marketService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	marketService.Close(ctx)
}
