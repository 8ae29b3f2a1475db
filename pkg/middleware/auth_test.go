package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func validClaims(token string) (*Claims, error) {
	if token == "good-token" {
		return &Claims{UserID: 42, Username: "glowfan", Email: "jane@example.com", Role: "user"}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func decodeAuthBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// --- Auth ---

func TestAuth_MissingToken(t *testing.T) {
	handler := Auth(validClaims)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeAuthBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "access denied, no token provided, please login to continue", body["message"])
}

func TestAuth_MalformedHeader(t *testing.T) {
	handler := Auth(validClaims)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeAuthBody(t, rec)
	assert.Equal(t, "invalid authorization header format", body["message"])
}

func TestAuth_InvalidToken(t *testing.T) {
	handler := Auth(validClaims)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeAuthBody(t, rec)
	assert.Equal(t, "access denied, please login to continue", body["message"])
}

func TestAuth_ValidToken_InjectsClaims(t *testing.T) {
	var gotUserID int64
	var gotUsername, gotRole string
	handler := Auth(validClaims)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotUsername = UsernameFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
	assert.Equal(t, "glowfan", gotUsername)
	assert.Equal(t, "user", gotRole)
}

func TestAuth_CaseInsensitiveBearer(t *testing.T) {
	handler := Auth(validClaims)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// --- RequireRole ---

func TestRequireRole_Allowed(t *testing.T) {
	handler := RequireRole("admin")(okHandler())

	ctx := WithClaims(context.Background(), &Claims{UserID: 1, Username: "boss", Role: "admin"})
	req := httptest.NewRequest(http.MethodGet, "/admin", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	handler := RequireRole("admin")(okHandler())

	ctx := WithClaims(context.Background(), &Claims{UserID: 2, Username: "glowfan", Role: "user"})
	req := httptest.NewRequest(http.MethodGet, "/admin", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeAuthBody(t, rec)
	assert.Equal(t, "access denied, admin rights required", body["message"])
}

func TestRequireRole_NoClaims(t *testing.T) {
	handler := RequireRole("admin")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// --- Context accessors ---

func TestUserIDFromContext_Empty(t *testing.T) {
	assert.Equal(t, int64(0), UserIDFromContext(context.Background()))
}

func TestUsernameFromContext_Empty(t *testing.T) {
	assert.Equal(t, "", UsernameFromContext(context.Background()))
}

func TestRoleFromContext_Empty(t *testing.T) {
	assert.Equal(t, "", RoleFromContext(context.Background()))
}
