package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"charlie/config"
	"charlie/internal/handler"
	"charlie/internal/service"
	"charlie/internal/sessions"
	"charlie/pkg/wasender"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe o servidor do webhook do WhatsApp",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		eng, closeFn := newEngine(ctx, cfg, log)
		defer closeFn()

		sender := wasender.NewClient(cfg.ApiKey)
		svc := service.NewMessageService(eng, sender, sessions.NewStore(), cfg.Today, log)
		if cfg.AdminToken == "" {
			log.Warn().Msg("ADMIN_TOKEN vazio, /reload e /questions desabilitados")
		}
		h := handler.New(svc, eng, cfg.AdminToken, log)

		srv := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      h.Routes(),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Info().Str("addr", srv.Addr).Msg("servidor iniciado")
			serverErrors <- srv.ListenAndServe()
		}()

		if cfg.UseNgrok {
			if err := registerWebhook(ctx, cfg, sender); err != nil {
				log.Error().Err(err).Msg("erro ao iniciar o ngrok")
			}
		}

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			log.Info().Msg("desligando servidor")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

// registerWebhook abre o tunel do ngrok e aponta o webhook da WaSenderAPI para ele.
func registerWebhook(ctx context.Context, cfg config.Config, sender *wasender.Client) error {
	publicURL, err := config.StartNgrok(ctx, cfg.Port)
	if err != nil {
		return err
	}
	return sender.SetWebhook(ctx, publicURL+"/webhook")
}
