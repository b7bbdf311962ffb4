package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/AnshRaj112/esangrahan-backend/internal/apperrors"
	"github.com/AnshRaj112/esangrahan-backend/pkg/response"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Recoverer turns a handler panic into a 500 envelope. When the handler had
// already started the response, the connection is aborted instead so the
// client never sees two bodies.
func Recoverer(rd *response.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww, ok := w.(chimw.WrapResponseWriter)
			if !ok {
				ww = chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			}

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				if rd.Log != nil {
					rd.Log.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.ByteString("stack", debug.Stack()),
					)
				}
				if ww.Status() != 0 {
					panic(http.ErrAbortHandler)
				}
				rd.Error(ww, r, apperrors.Wrap(apperrors.Internal, "Server Error", fmt.Errorf("panic: %v", rec)))
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
