package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/entity"
	domainerror "github.com/brokerdash/backend/internal/domain/error"
	"github.com/brokerdash/backend/internal/integration/persistence/model"
)

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserContext, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}

// FindByTeam retrieves every member of a team, ordered by name.
func (r *userRepository) FindByTeam(ctx context.Context, teamID uuid.UUID) ([]*entity.UserContext, error) {
	var models []model.UserModel
	result := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toUsers(models), nil
}

// FindTeamLeaders retrieves every team leader across all teams.
func (r *userRepository) FindTeamLeaders(ctx context.Context) ([]*entity.UserContext, error) {
	var models []model.UserModel
	result := r.db.WithContext(ctx).
		Where("role = ?", entity.RoleTeamLeader).
		Order("name ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toUsers(models), nil
}

func toUsers(models []model.UserModel) []*entity.UserContext {
	users := make([]*entity.UserContext, len(models))
	for i := range models {
		users[i] = models[i].ToEntity()
	}
	return users
}
