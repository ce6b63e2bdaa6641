package seed

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	authdomain "github.com/majilabs/oasis/internal/auth/domain"
	"github.com/majilabs/oasis/internal/auth/password"
	reservoirdomain "github.com/majilabs/oasis/internal/reservoir/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&reservoirdomain.Reservoir{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return db, node
}

func TestEnsureAdminIdempotent(t *testing.T) {
	db, node := newTestDB(t)

	require.NoError(t, EnsureAdmin(db, node))
	require.NoError(t, EnsureAdmin(db, node))

	var count int64
	require.NoError(t, db.Model(&authdomain.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var admin authdomain.User
	require.NoError(t, db.First(&admin, "email = ?", defaultAdminEmail).Error)
	assert.True(t, admin.IsAdmin())
	assert.True(t, password.Verify(defaultAdminPassword, admin.PasswordHash))
}

func TestEnsureAdminSkipsNonEmptyTable(t *testing.T) {
	db, node := newTestDB(t)

	existing := authdomain.User{
		ID:           node.Generate(),
		FullName:     "Existing",
		Email:        "existing@example.com",
		PasswordHash: "x",
		Role:         authdomain.RoleUser,
	}
	require.NoError(t, db.Create(&existing).Error)

	require.NoError(t, EnsureAdmin(db, node))

	var count int64
	require.NoError(t, db.Model(&authdomain.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureSampleReservoirsIdempotent(t *testing.T) {
	db, node := newTestDB(t)

	require.NoError(t, EnsureSampleReservoirs(db, node))
	require.NoError(t, EnsureSampleReservoirs(db, node))

	var count int64
	require.NoError(t, db.Model(&reservoirdomain.Reservoir{}).Count(&count).Error)
	assert.Equal(t, int64(len(sampleReservoirs)), count)

	var rec reservoirdomain.Reservoir
	require.NoError(t, db.First(&rec, "name = ?", "Kitui Dam").Error)
	assert.Equal(t, reservoirdomain.QualityPoor, rec.WaterQuality)
	assert.NotNil(t, rec.EstimatedRunoutDate)
	assert.Equal(t, 25, rec.CapacityPercentage())
}
