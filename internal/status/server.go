package status

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var pageTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.BotName}} Status</title>
<style>
body { font-family: sans-serif; text-align: center; margin-top: 4em; }
.status { font-size: 1.6em; font-weight: bold; }
</style>
</head>
<body>
<h1>{{.BotName}}</h1>
<p class="status" style="color: {{.Color}}">{{.Status}}</p>
</body>
</html>
`))

// NewHandler returns the status router. It serves a single GET / route.
func NewHandler(l *Liveness) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, l.Report()); err != nil {
			slog.Warn("status page render failed", "error", err)
		}
	})
	return r
}

// Serve runs the status server until ctx is cancelled.
func Serve(ctx context.Context, addr string, l *Liveness) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(l),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Status server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
