package repositories

import (
	"context"

	"github.com/sellaap/go-storefront/app/models"
	"gorm.io/gorm"
)

type PostRepositoryImpl interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetAll(ctx context.Context) ([]models.Post, error)
	GetPublishedPaginated(ctx context.Context, limit, offset int) ([]models.Post, int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ResolveTags(ctx context.Context, tags []models.Tag) ([]models.Tag, error)
	ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepositoryImpl {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Tags").First(&post, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Tags").First(&post, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Preload("Tags").Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetPublishedPaginated(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("status = ?", models.StatusPublished).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("status = ?", models.StatusPublished).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error

	return posts, total, err
}

func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// ResolveTags reuses existing Tag rows by slug and creates the rest,
// so the same tag name across posts always maps to one row.
func (r *postRepository) ResolveTags(ctx context.Context, tags []models.Tag) ([]models.Tag, error) {
	resolved := make([]models.Tag, 0, len(tags))
	for _, tag := range tags {
		var existing models.Tag
		err := r.db.WithContext(ctx).First(&existing, "slug = ?", tag.Slug).Error
		if err == nil {
			resolved = append(resolved, existing)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
			return nil, err
		}
		resolved = append(resolved, tag)
	}
	return resolved, nil
}

// ReplaceTags makes tags the post's full tag set, detaching anything
// not in it.
func (r *postRepository) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}
