package repository_test

import (
	"testing"
	"time"

	"societyhub/internal/model"
	"societyhub/internal/repository"
	"societyhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_FindByIdentifier(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := fx.CreateSociety("Alpha")
	admin := fx.CreateAdmin("Asha", s.ID)
	email := "Asha@Example.com"
	require.NoError(t, db.Model(admin).Update("email", "asha@example.com").Error)

	repo := repository.NewUserRepository(db)

	byPhone, err := repo.FindByIdentifier(ctx, admin.Phone)
	require.NoError(t, err)
	require.NotNil(t, byPhone)
	assert.Equal(t, admin.ID, byPhone.ID)
	require.Len(t, byPhone.AdminSocieties, 1)
	assert.Equal(t, s.ID, byPhone.AdminSocieties[0].SocietyID)

	byEmail, err := repo.FindByIdentifier(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, admin.ID, byEmail.ID)

	missing, err := repo.FindByIdentifier(ctx, "+10000000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOTPRepository_MarkUsedOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	repo := repository.NewOTPRepository(db)
	otp := &model.OTP{Phone: "+911234567", Code: "123456", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, otp))

	found, err := repo.FindLatest(ctx, "+911234567", "123456")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, otp.ID, found.ID)

	ok, err := repo.MarkUsed(ctx, otp.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkUsed(ctx, otp.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	none, err := repo.FindLatest(ctx, "+911234567", "000000")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestNoticeRepository_FanOutAndRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := fx.CreateSociety("Alpha")
	owner := fx.CreateUser("Olga", model.RoleOwner, s.ID)
	tenant := fx.CreateUser("Tom", model.RoleTenant, s.ID)

	repo := repository.NewNoticeRepository(db)
	notice := &model.Notice{Title: "Water cut", Body: "Tuesday 10-12", Audience: model.AudienceOwners, CreatedBy: 1}
	notice.SocietyID = s.ID
	require.NoError(t, repo.CreateWithRecipients(ctx, notice, []uint{owner.ID}))
	assert.NotZero(t, notice.ID)

	ownerNotices, err := repo.ListForUser(ctx, s.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, ownerNotices, 1)
	assert.Equal(t, "Water cut", ownerNotices[0].Title)
	assert.False(t, ownerNotices[0].Read)

	tenantNotices, err := repo.ListForUser(ctx, s.ID, tenant.ID)
	require.NoError(t, err)
	assert.Empty(t, tenantNotices)

	ok, err := repo.MarkRead(ctx, notice.ID, tenant.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.MarkRead(ctx, notice.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ownerNotices, err = repo.ListForUser(ctx, s.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, ownerNotices, 1)
	assert.True(t, ownerNotices[0].Read)
	assert.NotNil(t, ownerNotices[0].ReadAt)
}

func TestAdminSocietyRepository_LinkUnlink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateSociety("Alpha")
	b := fx.CreateSociety("Beta")
	admin := fx.CreateAdmin("Asha", a.ID)

	repo := repository.NewAdminSocietyRepository(db)
	_, err := repo.Link(ctx, admin.ID, b.ID)
	require.NoError(t, err)

	_, err = repo.Link(ctx, admin.ID, b.ID)
	assert.Error(t, err)

	links, err := repo.ListByUser(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, a.ID, links[0].SocietyID)
	assert.Equal(t, "Beta", links[1].Society.Name)

	removed, err := repo.Unlink(ctx, admin.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Unlink(ctx, admin.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestGormAuditLogRepository_ListNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	repo := repository.NewGormAuditLogRepository(db)
	require.NoError(t, repo.Create(ctx, &model.SuperadminLog{SuperadminID: 1, Action: "create", TargetType: "society", TargetID: 1}))
	require.NoError(t, repo.Create(ctx, &model.SuperadminLog{SuperadminID: 1, Action: "delete", TargetType: "society", TargetID: 1}))

	logs, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "delete", logs[0].Action)
}

func TestSocietyMemberAndAdminIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateSociety("Alpha")
	b := fx.CreateSociety("Beta")
	guard := fx.CreateUser("Gopal", model.RoleSecurityGuard, a.ID)
	fx.CreateUser("Other", model.RoleSecurityGuard, b.ID)
	admin := fx.CreateAdmin("Asha", a.ID, b.ID)
	fx.CreateAdmin("Bela", b.ID)

	members, err := repository.NewUserRepository(db).ListMemberIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{guard.ID}, members)

	admins, err := repository.NewAdminSocietyRepository(db).ListAdminIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{admin.ID}, admins)
}
