// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/wear-shop/internal/account"
	"github.com/carterperez-dev/wear-shop/internal/core"
	"github.com/carterperez-dev/wear-shop/internal/middleware"
)

type privilegeCall struct {
	op    string
	id    string
	actor account.Actor
}

type fakePrivileges struct {
	calls []privilegeCall
	err   error
}

func (f *fakePrivileges) GrantAdminRole(_ context.Context, id string, actor account.Actor) (string, error) {
	f.calls = append(f.calls, privilegeCall{"grant", id, actor})
	if f.err != nil {
		return "", f.err
	}
	return id, nil
}

func (f *fakePrivileges) RevokeAdminRole(_ context.Context, id string, actor account.Actor) (string, error) {
	f.calls = append(f.calls, privilegeCall{"revoke", id, actor})
	if f.err != nil {
		return "", f.err
	}
	return id, nil
}

var (
	superAdmin = account.Actor{
		ID:    "super-1",
		Roles: account.NewRoleSet(account.RoleUser, account.RoleSuperAdmin),
	}
	plainUser = account.Actor{
		ID:    "user-1",
		Roles: account.NewRoleSet(account.RoleUser),
	}
)

func as(actor account.Actor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(account.WithActor(r.Context(), actor)))
		})
	}
}

func newTestRouter(actor account.Actor, cfg HandlerConfig) http.Handler {
	r := chi.NewRouter()
	NewHandler(cfg).RegisterRoutes(r, as(actor), middleware.RequireElevated)
	return r
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestGrantAndRevokeAdmin(t *testing.T) {
	privileges := &fakePrivileges{}
	h := newTestRouter(superAdmin, HandlerConfig{Privileges: privileges})

	rec := do(h, http.MethodPost, "/admin/accounts/target-1/admin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updated_account_id":"target-1"`)

	rec = do(h, http.MethodDelete, "/admin/accounts/target-1/admin")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, privileges.calls, 2)
	assert.Equal(t, privilegeCall{"grant", "target-1", superAdmin}, privileges.calls[0])
	assert.Equal(t, privilegeCall{"revoke", "target-1", superAdmin}, privileges.calls[1])
}

func TestPrivilegeErrors(t *testing.T) {
	tests := map[string]struct {
		err    error
		status int
		code   string
	}{
		"forbidden":         {core.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		"self change":       {core.ErrInvalidOperation, http.StatusBadRequest, "INVALID_OPERATION"},
		"missing":           {core.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		"roles moved":       {core.ErrConflict, http.StatusConflict, "CONFLICT"},
		"store unavailable": {core.ErrUnavailable, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			privileges := &fakePrivileges{err: fmt.Errorf("grant admin: %w", tt.err)}
			h := newTestRouter(superAdmin, HandlerConfig{Privileges: privileges})

			rec := do(h, http.MethodPost, "/admin/accounts/target-1/admin")
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.code)
		})
	}
}

func TestAdminRoutesRejectPlainUsers(t *testing.T) {
	privileges := &fakePrivileges{}
	h := newTestRouter(plainUser, HandlerConfig{Privileges: privileges})

	for _, path := range []string{"/admin/accounts/target-1/admin", "/admin/stats"} {
		method := http.MethodGet
		if path != "/admin/stats" {
			method = http.MethodPost
		}
		assert.Equal(t, http.StatusForbidden, do(h, method, path).Code, path)
	}
	assert.Empty(t, privileges.calls)
}

func TestSystemStats(t *testing.T) {
	h := newTestRouter(superAdmin, HandlerConfig{
		Privileges: &fakePrivileges{},
		DBStats: func() sql.DBStats {
			return sql.DBStats{MaxOpenConnections: 25, OpenConnections: 3, InUse: 1, Idle: 2}
		},
		RedisStats: func() *redis.PoolStats {
			return &redis.PoolStats{Hits: 10, TotalConns: 4, IdleConns: 3}
		},
		DBPing:    func(context.Context) error { return nil },
		RedisPing: func(context.Context) error { return fmt.Errorf("redis ping failed") },
	})

	rec := do(h, http.MethodGet, "/admin/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Data.Database.Healthy)
	require.NotNil(t, body.Data.Database.Stats)
	assert.Equal(t, 25, body.Data.Database.Stats.MaxOpenConnections)
	assert.False(t, body.Data.Redis.Healthy)
	require.NotNil(t, body.Data.Redis.Stats)
	assert.Equal(t, uint32(4), body.Data.Redis.Stats.TotalConns)
	assert.NotEmpty(t, body.Data.Runtime.GoVersion)
}

func TestStatsWithoutSources(t *testing.T) {
	h := newTestRouter(superAdmin, HandlerConfig{Privileges: &fakePrivileges{}})

	rec := do(h, http.MethodGet, "/admin/stats/db")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)

	rec = do(h, http.MethodGet, "/admin/stats/runtime")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_version")
}
