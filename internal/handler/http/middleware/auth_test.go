package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func protected(t *testing.T, seen *user.Actor) http.Handler {
	t.Helper()
	ja := jwtauth.New("HS256", []byte(testSecret), nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := ActorFromContext(r.Context())
		require.NoError(t, err)
		*seen = actor
		w.WriteHeader(http.StatusNoContent)
	})
	return jwtauth.Verifier(ja)(AuthRequired(ja)(next))
}

func signed(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	ja := jwtauth.New("HS256", []byte(testSecret), nil)
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	_, token, err := ja.Encode(claims)
	require.NoError(t, err)
	return token
}

func TestAuthRequired_StoresActor(t *testing.T) {
	var seen user.Actor
	h := protected(t, &seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, map[string]interface{}{
		"user_id":   "manager-1",
		"role":      "manager",
		"type":      "access",
		"branch_id": "branch-1",
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "manager-1", seen.ID)
	assert.Equal(t, user.RoleManager, seen.Role)
	require.NotNil(t, seen.BranchID)
	assert.Equal(t, "branch-1", *seen.BranchID)
}

func TestAuthRequired_RejectsBadClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]interface{}
	}{
		{"refresh token", map[string]interface{}{"user_id": "u-1", "role": "admin", "type": "refresh"}},
		{"missing type", map[string]interface{}{"user_id": "u-1", "role": "admin"}},
		{"unknown role", map[string]interface{}{"user_id": "u-1", "role": "owner", "type": "access"}},
		{"missing user", map[string]interface{}{"role": "admin", "type": "access"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen user.Actor
			h := protected(t, &seen)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+signed(t, tt.claims))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Empty(t, seen.ID)
		})
	}
}

func TestAuthRequired_RejectsMissingToken(t *testing.T) {
	var seen user.Actor
	h := protected(t, &seen)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequirePermission(user.PermissionWalletApprove)(next)

	managerReq := httptest.NewRequest(http.MethodGet, "/", nil)
	managerReq = managerReq.WithContext(WithActor(managerReq.Context(), user.Actor{ID: "m-1", Role: user.RoleManager}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, managerReq)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminReq := httptest.NewRequest(http.MethodGet, "/", nil)
	adminReq = adminReq.WithContext(WithActor(adminReq.Context(), user.Actor{ID: "a-1", Role: user.RoleAdmin}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, adminReq)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
