package service

import (
	"testing"
	"time"

	"societyhub/internal/model"
	"societyhub/internal/repository"
	"societyhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := e.fx.CreateSociety("Alpha")
	owner := e.fx.CreateUser("Olga", model.RoleOwner, s.ID)

	resp, err := e.auth.Login(ctx, owner.Phone, "password123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	user, err := e.auth.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, user.ID)

	_, err = e.auth.Login(ctx, owner.Phone, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = e.auth.Login(ctx, "+910000000000", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := e.fx.CreateUser("Olga", model.RoleOwner, e.fx.CreateSociety("Alpha").ID)
	token, _, err := e.auth.IssueToken(owner)
	require.NoError(t, err)

	_, err = e.auth.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(repository.NewUserRepository(e.db), nil, testConfig())
	other.cfg.Auth.JWTSecret = "different"
	_, err = other.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	e.auth.now = func() time.Time { return time.Now().Add(e.cfg.Auth.TokenTTL + time.Minute) }
	_, err = e.auth.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_InactiveUser(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := e.fx.CreateUser("Olga", model.RoleOwner, e.fx.CreateSociety("Alpha").ID)
	token, _, err := e.auth.IssueToken(owner)
	require.NoError(t, err)

	require.NoError(t, e.db.Model(owner).UpdateColumn("is_active", false).Error)
	e.auth.InvalidateUser(ctx, owner.ID)

	_, err = e.auth.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestAuthService_ResolveScope(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := e.fx.CreateSociety("Alpha")
	b := e.fx.CreateSociety("Beta")
	c := e.fx.CreateSociety("Gamma")
	admin := e.fx.CreateAdmin("Asha", b.ID, a.ID)
	loaded, err := e.auth.LoadUser(ctx, admin.ID)
	require.NoError(t, err)

	sc, err := e.auth.ResolveScope(loaded, 0)
	require.NoError(t, err)
	assert.Equal(t, b.ID, sc.SocietyID, "earliest link wins")
	assert.False(t, sc.Personal)

	sc, err = e.auth.ResolveScope(loaded, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, sc.SocietyID)

	_, err = e.auth.ResolveScope(loaded, c.ID)
	assert.ErrorIs(t, err, ErrSocietyNotLinked)

	lonely := e.fx.CreateUser("Lonely", model.RoleAdmin, 0)
	sc, err = e.auth.ResolveScope(lonely, 0)
	require.NoError(t, err)
	assert.Zero(t, sc.SocietyID)

	fallback := e.fx.CreateUser("Fallback", model.RoleAdmin, c.ID)
	sc, err = e.auth.ResolveScope(fallback, 0)
	require.NoError(t, err)
	assert.Equal(t, c.ID, sc.SocietyID)

	super := e.fx.CreateUser("Root", model.RoleSuperadmin, 0)
	sc, err = e.auth.ResolveScope(super, 0)
	require.NoError(t, err)
	assert.True(t, sc.Unrestricted)

	tenant := e.fx.CreateUser("Tom", model.RoleTenant, a.ID)
	sc, err = e.auth.ResolveScope(tenant, 0)
	require.NoError(t, err)
	assert.Equal(t, a.ID, sc.SocietyID)
	assert.True(t, sc.Personal)
	assert.Equal(t, tenant.ID, sc.UserID)

	guard := e.fx.CreateUser("Gopal", model.RoleSecurityGuard, a.ID)
	sc, err = e.auth.ResolveScope(guard, 0)
	require.NoError(t, err)
	assert.False(t, sc.Personal)
}
