package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"coderr/internal/identity"
	"coderr/models"

	"go.uber.org/zap"
)

type principalKey struct{}

// WithPrincipal кладет вызывающего в контекст запроса
func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom возвращает вызывающего или nil для анонимного запроса
func PrincipalFrom(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey{}).(*models.Principal)
	return p
}

type TokenVerifier interface {
	Verify(raw string) (*identity.Identity, error)
}

// Authenticator определяет вызывающего по токену. Без заголовка запрос анонимный,
// неверный токен - 401.
type Authenticator struct {
	tokens   TokenVerifier
	profiles ProfileLookup
	logger   *zap.Logger
}

func NewAuthenticator(tokens TokenVerifier, profiles ProfileLookup, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{tokens: tokens, profiles: profiles, logger: logger}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		id, err := a.tokens.Verify(raw)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			writeJSON(w, http.StatusUnauthorized, detailBody{"invalid token"})
			return
		}

		p := &models.Principal{UserID: id.UserID, Username: id.Username, IsSuperuser: id.IsSuperuser}
		profile, err := a.profiles.GetProfileByUserID(r.Context(), id.UserID)
		switch {
		case err == nil:
			p.Profile = profile
		case errors.Is(err, models.ErrRecordNotFound):
			// без профиля: шлюзы ролей откажут
		default:
			a.logger.Error("profile lookup failed", zap.Int64("user_id", id.UserID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, detailBody{"internal server error"})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// bearerToken принимает схемы Bearer и Token
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "bearer", "token":
		token = strings.TrimSpace(token)
		return token, token != ""
	}
	return "", false
}
