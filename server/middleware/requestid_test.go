package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func requestIDProbe(t *testing.T, header string) (*httptest.ResponseRecorder, context.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())

	var seen context.Context
	engine.GET("/probe", func(c *gin.Context) {
		seen = c.Request.Context()
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set("X-Request-Id", header)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	rec, ctx := requestIDProbe(t, "")

	id := rec.Header().Get("X-Request-Id")
	if id == "" {
		t.Fatal("expected a generated request ID on the response")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated ID %q is not a uuid: %v", id, err)
	}

	fromCtx, ok := RequestIDFromContext(ctx)
	if !ok || fromCtx != id {
		t.Errorf("context ID = %q (ok=%v), want %q", fromCtx, ok, id)
	}
}

func TestRequestIDEchoesIncoming(t *testing.T) {
	rec, ctx := requestIDProbe(t, "upstream-id-42")

	if got := rec.Header().Get("X-Request-Id"); got != "upstream-id-42" {
		t.Errorf("response ID = %q, want the incoming one", got)
	}
	if fromCtx, _ := RequestIDFromContext(ctx); fromCtx != "upstream-id-42" {
		t.Errorf("context ID = %q, want the incoming one", fromCtx)
	}
}

func TestRequestIDFromContextUnbound(t *testing.T) {
	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Error("bare context should carry no request ID")
	}
}
