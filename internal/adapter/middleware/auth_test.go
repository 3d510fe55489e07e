package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"renthive-backend/internal/domain/auth"
)

func whoami(c echo.Context) error {
	a, ok := ActorFrom(c)
	if !ok {
		return c.NoContent(http.StatusTeapot)
	}
	return c.JSON(http.StatusOK, map[string]string{"id": a.UserID, "role": string(a.Role), "email": a.Email})
}

func authEcho() *echo.Echo {
	e := echo.New()
	g := e.Group("", JWTAuth(testSecret))
	g.GET("/me", whoami)
	g.GET("/owner", whoami, RequireRole(auth.RoleOwner))
	g.GET("/renter", whoami, RequireRole(auth.RoleRenter, auth.RoleOwner))
	return e
}

func signed(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestJWTAuth(t *testing.T) {
	e := authEcho()
	owner := auth.Actor{UserID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: auth.RoleOwner, Email: "o@example.com"}
	admin := auth.Actor{UserID: "dddddddddddddddddddddddddddddddd", Role: auth.RoleAdmin}

	expired := signed(t, jwt.SigningMethodHS256, testSecret, Claims{
		Role: "renter",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   renterA.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	wrongKey := signed(t, jwt.SigningMethodHS256, []byte("other"), Claims{Role: "renter", RegisteredClaims: jwt.RegisteredClaims{Subject: renterA.UserID}})
	hs512 := signed(t, jwt.SigningMethodHS512, testSecret, Claims{Role: "renter", RegisteredClaims: jwt.RegisteredClaims{Subject: renterA.UserID}})
	badRole := signed(t, jwt.SigningMethodHS256, testSecret, Claims{Role: "vendor", RegisteredClaims: jwt.RegisteredClaims{Subject: renterA.UserID}})
	badSub := signed(t, jwt.SigningMethodHS256, testSecret, Claims{Role: "renter", RegisteredClaims: jwt.RegisteredClaims{Subject: "42"}})

	tests := []struct {
		name  string
		path  string
		auth  string
		query string
		upgr  bool
		want  int
	}{
		{name: "renter on /me", path: "/me", auth: bearer(t, renterA), want: http.StatusOK},
		{name: "lowercase scheme", path: "/me", auth: "bearer " + mustToken(t, renterA), want: http.StatusOK},
		{name: "no token", path: "/me", want: http.StatusUnauthorized},
		{name: "basic scheme", path: "/me", auth: "Basic abc", want: http.StatusUnauthorized},
		{name: "expired", path: "/me", auth: "Bearer " + expired, want: http.StatusUnauthorized},
		{name: "wrong key", path: "/me", auth: "Bearer " + wrongKey, want: http.StatusUnauthorized},
		{name: "wrong alg", path: "/me", auth: "Bearer " + hs512, want: http.StatusUnauthorized},
		{name: "unknown role", path: "/me", auth: "Bearer " + badRole, want: http.StatusUnauthorized},
		{name: "bad subject", path: "/me", auth: "Bearer " + badSub, want: http.StatusUnauthorized},
		{name: "renter on owner route", path: "/owner", auth: bearer(t, renterA), want: http.StatusForbidden},
		{name: "owner on owner route", path: "/owner", auth: bearer(t, owner), want: http.StatusOK},
		{name: "admin on owner route", path: "/owner", auth: bearer(t, admin), want: http.StatusOK},
		{name: "owner on renter route", path: "/renter", auth: bearer(t, owner), want: http.StatusOK},
		{name: "query token on upgrade", path: "/me", query: mustToken(t, renterA), upgr: true, want: http.StatusOK},
		{name: "query token without upgrade", path: "/me", query: mustToken(t, renterA), want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.path
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.auth != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.auth)
			}
			if tt.upgr {
				req.Header.Set(echo.HeaderUpgrade, "websocket")
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("want %d, got %d body=%s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestParseToken_Claims(t *testing.T) {
	in := auth.Actor{UserID: renterA.UserID, Role: auth.RoleRenter, Name: "Rina", Email: "rina@example.com"}
	tok := mustToken(t, in)
	got, err := ParseToken(testSecret, tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if got != in {
		t.Fatalf("got %+v, want %+v", got, in)
	}
}

func mustToken(t *testing.T, a auth.Actor) string {
	t.Helper()
	tok, err := IssueToken(testSecret, a, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return tok
}
