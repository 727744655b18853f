package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rating_of_titles/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/secure", h.userIDMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "userId": userID(c)})
	})
	return r
}

func TestUserIDMiddleware_Errors(t *testing.T) {
	type want struct {
		code   int
		errMsg string
	}
	cases := []struct {
		name   string
		header string
		parse  error
		want   want
	}{
		{
			name:   "missing header",
			header: "",
			want:   want{code: http.StatusUnauthorized, errMsg: "missing Authorization header"},
		},
		{
			name:   "wrong scheme",
			header: "Basic abc",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:   "no token after scheme",
			header: "Bearer",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:   "parse failure",
			header: "Bearer bad-token",
			parse:  errors.New("token is expired"),
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid or expired token"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseID: 1, parseErr: tc.parse}
			r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tc.want.code {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.want.code, w.Body.String())
			}
			var m map[string]any
			_ = json.Unmarshal(w.Body.Bytes(), &m)
			if m["message"] != tc.want.errMsg {
				t.Fatalf("message=%v, want %q", m["message"], tc.want.errMsg)
			}
		})
	}
}

func TestUserIDMiddleware_SetsIdentity(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header = authHeader("tok789")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["userId"].(float64)) != 7 {
		t.Fatalf("expected userId 7, got %v", m["userId"])
	}
	if auth.lastParseToken != "tok789" {
		t.Fatalf("expected token tok789 passed to ParseToken, got %q", auth.lastParseToken)
	}
}

func TestRequestIDMiddleware_HeaderSet(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected X-Request-Id response header")
	}

	// inbound id is honored
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got != "fixed-id" {
		t.Fatalf("expected fixed-id, got %q", got)
	}
}
