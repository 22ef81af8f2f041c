package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	apperrors "github.com/eolscan/eolscan/pkg/errors"
	"github.com/eolscan/eolscan/pkg/report"
	"github.com/eolscan/eolscan/pkg/store"
)

const serveShutdownTimeout = 5 * time.Second

// serveCommand creates the serve command: a read-only HTTP API over the
// tracked projects, resolved live against the EOL registry.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the EOL dashboard as an HTTP API",
		Long: `Serve a read-only HTTP API over the tracked projects.

Endpoints:
  GET /healthz              liveness probe
  GET /api/projects         all projects with resolved EOL status
  GET /api/projects/{name}  one project

Examples:
  eolscan serve
  eolscan serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newProjectStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			builder := report.NewBuilder(c.newRegistry(ctx, false), 0)
			return c.serve(ctx, addr, newAPIHandler(st, builder, c.Logger))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// serve runs the HTTP server until the context is cancelled, then shuts
// down gracefully.
func (c *CLI) serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newAPIHandler builds the dashboard API router. Every request reads the
// store fresh, so a concurrent "eolscan rescan" shows up immediately.
func newAPIHandler(st store.Store, builder *report.Builder, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/projects", func(w http.ResponseWriter, req *http.Request) {
		projects, err := st.List(req.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, builder.All(req.Context(), projects))
	})

	r.Get("/api/projects/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		projects, err := st.List(req.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}
		p, ok := projects[name]
		if !ok {
			writeError(w, logger, store.NotFound(name))
			return
		}
		writeJSON(w, http.StatusOK, builder.Project(req.Context(), p))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps application error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeProjectNotFound, apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidPath, apperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{
		"error": apperrors.UserMessage(err),
		"code":  string(apperrors.GetCode(err)),
	})
}
