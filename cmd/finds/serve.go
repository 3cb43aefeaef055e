package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"finds/internal/api"
	"finds/internal/bot"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog HTTP API (and the Telegram bot when configured)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, a)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, a *app) error {
	// Warm the catalog so the first request is served from memory or
	// cache; a degraded load is already handled inside.
	_, status := a.st.Load(ctx, false)
	a.log.WithField("status", status.Message).Info("Catalog warmed")

	g, ctx := errgroup.WithContext(ctx)

	srv := newAPIServer(a)
	g.Go(func() error {
		return srv.Run(ctx, a.cfg.ListenAddr)
	})

	if a.cfg.TelegramBotToken != "" {
		handler, err := newBotHandler(a)
		if err != nil {
			return err
		}
		g.Go(func() error {
			handler.Start(ctx)
			return nil
		})
	} else {
		a.log.Info("No Telegram token configured, bot disabled")
	}

	err := g.Wait()
	a.log.Info("Shut down")
	return err
}

func newAPIServer(a *app) *api.Server {
	return api.NewServer(a.st, a.svc, a.log)
}

func newBotHandler(a *app) (*bot.Handler, error) {
	return bot.NewHandler(a.cfg.TelegramBotToken, a.st, a.svc, a.log)
}
