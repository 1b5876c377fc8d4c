package seed

import (
	"testing"
	"time"

	"societyhub/internal/model"
	"societyhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CreatesDemoSociety(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res, err := Run(ctx, db, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var tenant model.User
	require.NoError(t, db.First(&tenant, res.Tenant.ID).Error)
	require.NotNil(t, tenant.FlatID)
	assert.Equal(t, res.Flats[0].ID, *tenant.FlatID)

	var links int64
	db.Model(&model.AdminSociety{}).Where("user_id = ? AND society_id = ?", res.Admin.ID, res.Society.ID).Count(&links)
	assert.Equal(t, int64(1), links)

	var agreements int64
	db.Model(&model.Agreement{}).Where("society_id = ?", res.Society.ID).Count(&agreements)
	assert.Equal(t, int64(1), agreements)
}

func TestRun_SecondRunLeavesNoPartialState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := Run(ctx, db, time.Now())
	require.NoError(t, err)

	// Seeded phones are fixed, so a second run hits the unique index and rolls back.
	_, err = Run(ctx, db, time.Now())
	require.Error(t, err)

	var societies int64
	db.Model(&model.Society{}).Count(&societies)
	assert.Equal(t, int64(1), societies)
}
