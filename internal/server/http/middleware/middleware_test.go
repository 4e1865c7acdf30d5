package middleware

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/nebulaeats/nebula/internal/pkg/auth"
	"github.com/nebulaeats/nebula/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedEngine(parser TokenParser) *gin.Engine {
	engine := gin.New()
	engine.GET("/protected", AuthRequired(parser), func(c *gin.Context) {
		id, _ := c.Get(UserIDContextKey)
		c.String(http.StatusOK, "%v", id)
	})
	return engine
}

func TestAuthRequiredMissingToken(t *testing.T) {
	engine := protectedEngine(test.TokenParserStub{ID: "u-1"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRequiredBearerHeader(t *testing.T) {
	parser := test.TokenParserStub{ParseFn: func(token string) (string, error) {
		if token != "good-token" {
			return "", pkgAuth.ErrInvalidToken
		}
		return "u-7", nil
	}}
	engine := protectedEngine(parser)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "u-7" {
		t.Fatalf("expected user id in context, got %q", rec.Body.String())
	}
}

func TestAuthRequiredCookie(t *testing.T) {
	engine := protectedEngine(test.TokenParserStub{ID: "u-3"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "nebula_token", Value: "cookie-token"})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "u-3" {
		t.Fatalf("expected user id in context, got %q", rec.Body.String())
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	engine := protectedEngine(test.TokenParserStub{Err: pkgAuth.ErrInvalidToken})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tampered")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRequiredParserFailure(t *testing.T) {
	engine := protectedEngine(test.TokenParserStub{Err: errors.New("key store down")})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer any")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestSetAuthCookie(t *testing.T) {
	engine := gin.New()
	engine.GET("/login", func(c *gin.Context) {
		SetAuthCookie(c, "fresh-token")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "nebula_token" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected session cookie")
	}
	if cookie.Value != "fresh-token" || !cookie.HttpOnly {
		t.Fatalf("unexpected cookie %+v", cookie)
	}
	if got := rec.Header().Get("Authorization"); got != "Bearer fresh-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
}

func TestDecompressRequest(t *testing.T) {
	engine := gin.New()
	engine.Use(DecompressRequest())
	engine.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, "%s", body)
	})

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(`{"hello":"world"}`)); err != nil {
		t.Fatalf("compress payload: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/echo", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"hello":"world"}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestDecompressRequestRejectsBrokenPayload(t *testing.T) {
	engine := gin.New()
	engine.Use(DecompressRequest())
	engine.POST("/echo", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}
