package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"renthive-backend/internal/domain/auth"
	"renthive-backend/pkg/id"
)

// Claims carried by RentHive access tokens.
type Claims struct {
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var (
	errNoToken      = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
)

// JWTAuth verifies an HS256 bearer token and puts the caller's auth.Actor on the
// request context. Websocket upgrades may pass the token as ?token=.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := tokenFrom(c.Request())
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}
			actor, err := ParseToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}
			req := c.Request()
			c.SetRequest(req.WithContext(auth.NewContext(req.Context(), actor)))
			return next(c)
		}
	}
}

// RequireRole lets through callers holding any of roles. Admin always passes.
func RequireRole(roles ...auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": errNoToken.Error()})
			}
			if actor.IsAdmin() {
				return next(c)
			}
			for _, r := range roles {
				if actor.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "role " + string(actor.Role) + " may not call this endpoint"})
		}
	}
}

func ActorFrom(c echo.Context) (auth.Actor, bool) {
	return auth.FromContext(c.Request().Context())
}

// ParseToken validates raw and maps its claims to an Actor.
func ParseToken(secret []byte, raw string) (auth.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return auth.Actor{}, errInvalidToken
	}

	sub := strings.ToLower(claims.Subject)
	role := auth.Role(claims.Role)
	if !id.Valid(sub) || !role.Valid() {
		return auth.Actor{}, errInvalidToken
	}
	return auth.Actor{UserID: sub, Role: role, Name: claims.Name, Email: claims.Email}, nil
}

// IssueToken signs an HS256 token for actor. ttl <= 0 issues a token without expiry.
func IssueToken(secret []byte, actor auth.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:  string(actor.Role),
		Name:  actor.Name,
		Email: actor.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  actor.UserID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func tokenFrom(req *http.Request) (string, error) {
	if h := strings.TrimSpace(req.Header.Get(echo.HeaderAuthorization)); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
			return "", errInvalidToken
		}
		return strings.TrimSpace(tok), nil
	}
	if strings.EqualFold(req.Header.Get(echo.HeaderUpgrade), "websocket") {
		if tok := req.URL.Query().Get("token"); tok != "" {
			return tok, nil
		}
	}
	return "", errNoToken
}
