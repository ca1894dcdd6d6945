package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"synergysphere/internal/auth"
	"synergysphere/internal/config"
	"synergysphere/internal/realtime"
	"synergysphere/internal/routes"
	"synergysphere/internal/session"
	"synergysphere/internal/translator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "Port to listen on")
	_ = v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := translator.InitTranslator(translator.Config{TranslationFolder: a.cfg.I18nDir}); err != nil {
		return err
	}
	if a.cfg.LogMode != config.LogDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess := session.New(a.repo, session.WithDelay(a.cfg.LoginDelay), session.WithLogger(a.log))
	if err := sess.Init(ctx); err != nil {
		a.log.Warn("session started with errors", zap.Error(err))
	}
	defer sess.Close()

	router := routes.SetupRoutes(routes.Deps{
		Repo:    a.repo,
		Session: sess,
		Issuer: auth.NewIssuer(auth.Config{
			Secret:   a.cfg.JWTSecret,
			Issuer:   a.cfg.JWTIssuer,
			Audience: a.cfg.JWTAudience,
		}),
		Hub:    realtime.NewHub(a.log),
		Logger: a.log,
	})

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server", zap.String("addr", srv.Addr), zap.String("storage", a.cfg.Storage))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
