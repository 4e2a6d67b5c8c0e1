package middleware

import (
	"QRBoxer/internal/auth"
	"context"
	"net/http"
	"strings"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthCookieName — имя cookie с токеном сессии.
const AuthCookieName = "auth_token"

// WithAuth извлекает токен из cookie либо заголовка Authorization: Bearer,
// проверяет его и кладёт Identity в контекст. Анонимный или невалидный
// запрос проходит дальше без Identity — строгость решают хендлеры.
func WithAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ""
			if c, err := r.Cookie(AuthCookieName); err == nil {
				tokenString = c.Value
			}
			if tokenString == "" {
				if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
					tokenString = strings.TrimPrefix(h, "Bearer ")
				}
			}
			if tokenString != "" {
				if id, err := tokens.Verify(tokenString); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), identityKey, id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentityFromContext возвращает Identity запроса, если она установлена.
func GetIdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// SetAuthCookie выпускает токен для identity и ставит его в cookie ответа.
func SetAuthCookie(w http.ResponseWriter, tokens *auth.TokenService, id auth.Identity) (string, error) {
	token, err := tokens.Issue(id)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	return token, nil
}
