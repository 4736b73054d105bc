package main

import (
	"context"
	"errors"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/config"
	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/repository"
	"github.com/rakaarfi/roster-system-be/internal/utils"
	zlog "github.com/rs/zerolog/log"
)

// ensureBootstrapAdmin creates the configured Admin account if it does not exist yet.
func ensureBootstrapAdmin(ctx context.Context, repo repository.StaffRepository, cfg *config.Config) error {
	if cfg.BootstrapAdminID == "" || cfg.BootstrapAdminPassword == "" {
		return nil
	}
	hash, err := utils.HashPassword(cfg.BootstrapAdminPassword)
	if err != nil {
		return err
	}
	admin := &models.StaffProfile{
		ID:            cfg.BootstrapAdminID,
		Name:          cfg.BootstrapAdminID,
		Email:         cfg.BootstrapAdminEmail,
		Role:          models.RoleAdmin,
		WeeklyHourCap: cfg.DefaultWeeklyCapHours,
		Shifts:        []models.Shift{},
		Messages:      []models.Message{},
		Active:        true,
		CreatedAt:     time.Now(),
	}
	if err := repo.CreateStaff(ctx, admin, hash); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			zlog.Debug().Str("staff_id", admin.ID).Msg("Bootstrap admin already exists")
			return nil
		}
		return err
	}
	zlog.Info().Str("staff_id", admin.ID).Msg("Bootstrap admin created")
	return nil
}
