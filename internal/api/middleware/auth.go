package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "userID"

	// UserIDHeader заголовок с ID пользователя, проставляется API gateway
	UserIDHeader = "X-User-ID"

	msgUnauthorized = "требуется аутентификация"
	msgInvalidUser  = "некорректный идентификатор пользователя"
	msgInvalidToken = "недействительный токен"
)

var (
	errNoCredentials = errors.New("no credentials")
	errInvalidUserID = errors.New("invalid user id")
)

// Authenticator извлекает ID пользователя из запроса.
// Без секрета доверяет заголовку X-User-ID; с секретом требует Bearer JWT (HS256, claim sub).
type Authenticator struct {
	secret []byte
	logger Logger
}

// NewAuthenticator создает middleware аутентификации
func NewAuthenticator(jwtSecret string, logger Logger) *Authenticator {
	return &Authenticator{secret: []byte(jwtSecret), logger: logger}
}

// Middleware кладет ID пользователя в контекст или отвечает 401
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.authenticate(r)
		if err != nil {
			a.logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
			switch {
			case errors.Is(err, errNoCredentials):
				handlers.RespondUnauthorized(w, msgUnauthorized)
			case errors.Is(err, errInvalidUserID):
				handlers.RespondUnauthorized(w, msgInvalidUser)
			default:
				handlers.RespondUnauthorized(w, msgInvalidToken)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func (a *Authenticator) authenticate(r *http.Request) (int64, error) {
	if len(a.secret) == 0 {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			return 0, errNoCredentials
		}
		return parseUserID(raw)
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return 0, errNoCredentials
	}
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return 0, fmt.Errorf("authorization scheme is not Bearer")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("parse token: %v", err)
	}

	return parseUserID(claims.Subject)
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidUserID, raw)
	}
	return id, nil
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID достает ID аутентифицированного пользователя
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
