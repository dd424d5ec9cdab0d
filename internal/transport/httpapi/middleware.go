package httpapi

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/sandevgo/netnavi/internal/service/session"
	"github.com/sandevgo/netnavi/pkg/log"
)

type ctxKey int

const sessionKey ctxKey = 0

// sessionFromRequest resolves the bearer session id from the Authorization
// header. Unauthenticated requests get a nil session: chat still works, the
// Google-backed tools report the login requirement themselves.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if id, ok := strings.CutPrefix(auth, "Bearer "); ok {
			if sess, found := s.sessions.Get(id); found {
				r = r.WithContext(context.WithValue(r.Context(), sessionKey, sess))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFromCtx(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

func (s *Server) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := s.logger.WithContext(r.Context())
		log.FromCtx(ctx).Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.FromCtx(r.Context()).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")
				writeError(w, r, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
