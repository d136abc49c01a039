package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fhsmendes/weather-widget/handler"
	"github.com/fhsmendes/weather-widget/view"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget as a web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().String("port", "", "HTTP port (env PORT, default 8080)")
	cmd.Flags().String("assets-dir", "", "Directory served under /assets/")
	cmd.Flags().String("asset-base", "", "URL prefix for icon references (default /assets/)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	renderer, err := view.NewRenderer(a.cfg.AssetBase)
	if err != nil {
		return err
	}
	h := &handler.WidgetHandler{
		Controller: a.controller,
		Renderer:   renderer,
		AssetsDir:  a.cfg.AssetsDir,
	}

	s := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Weather widget running on http://localhost:%s", a.cfg.Port)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error in ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Println("Shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	return nil
}
