package recoverer

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/render"
	"github.com/vadimbarashkov/ngo-site/pkg/middleware"
)

var serverErrorBody = map[string]string{
	"status":  "error",
	"message": "server error occurred",
}

// New recovers from panics in downstream handlers, logs them with the stack trace and
// answers 500 with a JSON error body.
func New(logger *slog.Logger) middleware.Middleware {
	const op = "middleware.recoverer.New"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("something went wrong, panic occurred",
					slog.String("op", op),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("err", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, serverErrorBody)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
