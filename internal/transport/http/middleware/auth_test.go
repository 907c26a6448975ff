package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"intranet/internal/auth"
)

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := auth.GenerateToken("secret", "emp-1", "ana@acme.mx", "admin", true, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var got UserContext
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		got = user
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got.ID != "emp-1" || got.Email != "ana@acme.mx" || !got.IsAdmin {
		t.Fatalf("user context = %+v", got)
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("did not expect user in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("did not expect user in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestRequireAdmin(t *testing.T) {
	protected := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	adminToken, _ := auth.GenerateToken("secret", "emp-1", "ana@acme.mx", "admin", true, time.Hour)
	userToken, _ := auth.GenerateToken("secret", "emp-2", "luis@acme.mx", "usuario", false, time.Hour)

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{"admin allowed", adminToken, http.StatusNoContent},
		{"user forbidden", userToken, http.StatusForbidden},
		{"anonymous unauthorized", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			Auth("secret")(protected).ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}
