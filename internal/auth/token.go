package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ошибки проверки токена. Структурно битый токен и токен с чужой
// подписью различаются: это разные классы инцидентов.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

// Claims — полезная нагрузка токена: username и признак администратора.
type Claims struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет stateless-токены (JWT HS256).
// Секрет процесса загружается один раз при старте и инжектируется сюда;
// отзыва токенов нет — истёкший токен обновляется повторным логином.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService создаёт сервис токенов. ttl <= 0 — срок жизни сутки.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue подписывает токен для identity с iat/exp от текущего времени.
func (s *TokenService) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: id.Username,
		Admin:    id.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify проверяет подпись и срок действия и возвращает Identity.
// Подпись чужим ключом или подменённая полезная нагрузка — ErrInvalidSignature,
// структурный мусор — ErrMalformedToken.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Identity{}, ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return Identity{}, ErrTokenExpired
	default:
		return Identity{}, ErrMalformedToken
	}
	if !token.Valid || claims.Username == "" {
		return Identity{}, ErrMalformedToken
	}
	return Identity{Username: claims.Username, Admin: claims.Admin}, nil
}
