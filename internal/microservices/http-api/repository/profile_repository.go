package repository

import (
	"context"

	"blogdesk/internal/microservices/http-api/models"
	"blogdesk/internal/moderation"

	"gorm.io/gorm"
)

// ProfileFilter narrows List and Count. Nil fields are ignored.
type ProfileFilter struct {
	Role   *moderation.Role
	Active *bool
}

// ProfileRepository defines the interface for profile data operations.
type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	List(ctx context.Context, filter ProfileFilter) ([]models.Profile, error)
	Count(ctx context.Context, filter ProfileFilter) (int64, error)
	// Update applies patch (column -> value) and returns the fresh row.
	Update(ctx context.Context, id string, patch map[string]any) (*models.Profile, error)
	Delete(ctx context.Context, id string) error
}

// profileRepository is the GORM implementation of ProfileRepository.
type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *models.Profile) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *profileRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	// return nil on miss so a zero-value profile is never mistaken for a hit
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *profileRepository) scoped(ctx context.Context, filter ProfileFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Profile{})
	if filter.Role != nil {
		q = q.Where("role = ?", *filter.Role)
	}
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}
	return q
}

func (r *profileRepository) List(ctx context.Context, filter ProfileFilter) ([]models.Profile, error) {
	var list []models.Profile
	if err := r.scoped(ctx, filter).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (r *profileRepository) Count(ctx context.Context, filter ProfileFilter) (int64, error) {
	var total int64
	if err := r.scoped(ctx, filter).Count(&total).Error; err != nil {
		return 0, translate(err)
	}
	return total, nil
}

func (r *profileRepository) Update(ctx context.Context, id string, patch map[string]any) (*models.Profile, error) {
	var updated models.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Profile{}).Where("id = ?", id).Updates(patch)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

// Delete removes the profile; blogs and comments go with it via ON DELETE CASCADE.
func (r *profileRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
