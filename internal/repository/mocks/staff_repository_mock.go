// internal/repository/mocks/staff_repository_mock.go
package mocks

import (
	"context"

	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/rakaarfi/roster-system-be/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockStaffRepository adalah mock untuk StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

var _ repository.StaffRepository = (*MockStaffRepository)(nil)

func (m *MockStaffRepository) CreateStaff(ctx context.Context, profile *models.StaffProfile, passwordHash string) error {
	args := m.Called(ctx, profile, passwordHash)
	return args.Error(0)
}

func (m *MockStaffRepository) GetStaff(ctx context.Context, id string) (*models.StaffProfile, error) {
	args := m.Called(ctx, id)
	// Handle nil return jika staff tidak ditemukan
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffProfile), args.Error(1)
}

func (m *MockStaffRepository) QueryStaffByRole(ctx context.Context, q repository.StaffQuery, page, limit int) ([]models.StaffProfile, int, error) {
	args := m.Called(ctx, q, page, limit)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return ret.([]models.StaffProfile), args.Int(1), args.Error(2)
}

func (m *MockStaffRepository) UpdateStaff(ctx context.Context, id string, patch repository.StaffPatch) (*models.StaffProfile, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffProfile), args.Error(1)
}

func (m *MockStaffRepository) GetCredentials(ctx context.Context, id string) (*models.Credentials, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credentials), args.Error(1)
}
