package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blogbliss/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uint, ttl time.Duration) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		User: models.TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func runMiddleware(mw echo.MiddlewareFunc, token string) (*httptest.ResponseRecorder, uint, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("auth-token", token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID uint
	var called bool
	handler := mw(func(c echo.Context) error {
		called = true
		gotID, _ = c.Get(UserIDKey).(uint)
		return c.NoContent(http.StatusOK)
	})
	handler(c)
	return rec, gotID, called
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	token := signToken(t, testSecret, 42, time.Hour)
	rec, gotID, called := runMiddleware(JWTAuthMiddleware(testSecret), token)
	if !called {
		t.Fatalf("handler not called: %s", rec.Body.String())
	}
	if gotID != 42 {
		t.Fatalf("expected userID 42 in context, got %d", gotID)
	}
}

func TestJWTAuthRejections(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"malformed token", "not.a.token"},
		{"wrong secret", signToken(t, "other-secret", 42, time.Hour)},
		{"expired token", signToken(t, testSecret, 42, -time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _, called := runMiddleware(JWTAuthMiddleware(testSecret), tc.token)
			if called {
				t.Fatal("handler ran despite invalid token")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestOptionalJWTAuth(t *testing.T) {
	t.Run("valid token attaches identity", func(t *testing.T) {
		token := signToken(t, testSecret, 7, time.Hour)
		_, gotID, called := runMiddleware(OptionalJWTAuthMiddleware(testSecret), token)
		if !called || gotID != 7 {
			t.Fatalf("expected handler call with userID 7, called=%v id=%d", called, gotID)
		}
	})

	t.Run("missing token still passes through", func(t *testing.T) {
		rec, gotID, called := runMiddleware(OptionalJWTAuthMiddleware(testSecret), "")
		if !called {
			t.Fatal("handler not called for anonymous request")
		}
		if gotID != 0 {
			t.Fatalf("expected no identity, got %d", gotID)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("garbage token is ignored", func(t *testing.T) {
		_, gotID, called := runMiddleware(OptionalJWTAuthMiddleware(testSecret), "garbage")
		if !called || gotID != 0 {
			t.Fatalf("expected anonymous pass-through, called=%v id=%d", called, gotID)
		}
	})
}
