package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/angelmondragon/secondnest/api/responses"
	pkgerrors "github.com/angelmondragon/secondnest/pkg/errors"
	"github.com/angelmondragon/secondnest/pkg/logger"
)

// SessionHeader carries the opaque shopper session id.
const SessionHeader = "X-Session-Id"

var sessionIDRe = regexp.MustCompile(`^[A-Za-z0-9._:-]{8,128}$`)

// Session requires a well-formed session id and places it on the context.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if sessionID == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "session id missing"))
				return
			}
			if !sessionIDRe.MatchString(sessionID) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "malformed session id").
					WithDetails(map[string]any{"header": SessionHeader}))
				return
			}

			ctx = WithSessionID(ctx, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
