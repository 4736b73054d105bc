package main

import (
	"context"
	"testing"

	"github.com/rakaarfi/roster-system-be/internal/config"
	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/repository"
	"github.com/rakaarfi/roster-system-be/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureBootstrapAdmin(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewStaffMemoryRepository()

	require.NoError(t, ensureBootstrapAdmin(ctx, repo, &config.Config{}))
	_, err := repo.GetStaff(ctx, "admin")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	cfg := &config.Config{
		BootstrapAdminID:       "admin",
		BootstrapAdminEmail:    "admin@example.com",
		BootstrapAdminPassword: "changeme",
		DefaultWeeklyCapHours:  38,
	}
	require.NoError(t, ensureBootstrapAdmin(ctx, repo, cfg))
	require.NoError(t, ensureBootstrapAdmin(ctx, repo, cfg))

	creds, err := repo.GetCredentials(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, creds.Role)
	assert.True(t, utils.CheckPasswordHash("changeme", creds.PasswordHash))
}

func TestOpenStore(t *testing.T) {
	repo, closer, err := openStore(context.Background(), &config.Config{StoreDriver: config.DriverSQLite, SQLitePath: t.TempDir() + "/roster.db"})
	require.NoError(t, err)
	assert.NotNil(t, repo)
	assert.NoError(t, closer.Close())

	_, _, err = openStore(context.Background(), &config.Config{StoreDriver: "mongo"})
	assert.Error(t, err)
}
