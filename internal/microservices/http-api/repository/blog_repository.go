package repository

import (
	"context"

	"blogdesk/internal/microservices/http-api/models"
	"blogdesk/internal/moderation"

	"gorm.io/gorm"
)

// BlogFilter narrows List. Empty fields are ignored.
type BlogFilter struct {
	AuthorID string
	Status   moderation.Status
	// VisibleTo restricts the result to approved blogs plus the ones authored by this profile.
	VisibleTo string
}

type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	FindByID(ctx context.Context, id int64) (*models.Blog, error)
	// FindDetail loads the author, the comments and each comment's author.
	FindDetail(ctx context.Context, id int64) (*models.Blog, error)
	List(ctx context.Context, filter BlogFilter) ([]models.Blog, error)
	// Update writes patch only if the row still carries expectedVersion, bumps
	// the version and reads the row back inside the same transaction.
	Update(ctx context.Context, id, expectedVersion int64, patch map[string]any) (*models.Blog, error)
	// IncrementViews bumps view_count atomically and returns the new value.
	IncrementViews(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	return translate(r.db.WithContext(ctx).Create(blog).Error)
}

func (r *blogRepository) FindByID(ctx context.Context, id int64) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).Preload("Author").First(&blog, id).Error; err != nil {
		return nil, translate(err)
	}
	return &blog, nil
}

func (r *blogRepository) FindDetail(ctx context.Context, id int64) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.Author").
		First(&blog, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context, filter BlogFilter) ([]models.Blog, error) {
	var list []models.Blog
	q := r.db.WithContext(ctx).Preload("Author")
	if filter.AuthorID != "" {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.VisibleTo != "" {
		q = q.Where("(status = ? OR author_id = ?)", moderation.StatusApproved, filter.VisibleTo)
	}
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (r *blogRepository) Update(ctx context.Context, id, expectedVersion int64, patch map[string]any) (*models.Blog, error) {
	var updated models.Blog
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		values := make(map[string]any, len(patch)+1)
		for k, v := range patch {
			values[k] = v
		}
		values["version"] = gorm.Expr("version + 1")

		res := tx.Model(&models.Blog{}).
			Where("id = ? AND version = ?", id, expectedVersion).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&models.Blog{}).Where("id = ?", id).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return ErrNotFound
			}
			return ErrStaleVersion
		}
		return tx.Preload("Author").First(&updated, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

func (r *blogRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	var views int64
	// UPDATE ... RETURNING keeps the read-modify-write inside one statement
	res := r.db.WithContext(ctx).
		Raw("UPDATE blogs SET view_count = view_count + 1 WHERE id = ? RETURNING view_count", id).
		Scan(&views)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return views, nil
}

// Delete removes the blog; its comments go with it via ON DELETE CASCADE.
func (r *blogRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Blog{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
