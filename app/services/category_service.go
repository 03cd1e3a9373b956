package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/repositories"
	"github.com/sellaap/go-storefront/app/utils/cache"
)

type CategoryInput struct {
	Name        string `validate:"required,min=2,max=100"`
	Description string
	Image       string
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryImpl
	cache        *cache.Cache
	validate     *validator.Validate
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryImpl, c *cache.Cache) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cache:        c,
		validate:     validator.New(),
	}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	tags := []string{cache.TagCategories}
	return cache.Memoize(s.cache, "categories:all", cache.TTLCategories, tags, func() ([]models.Category, error) {
		return s.categoryRepo.GetAll(ctx)
	})
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}

	category := &models.Category{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        helpers.GenerateSlug(input.Name),
		Description: input.Description,
		Image:       input.Image,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return fail(failureMessage("create category", err))
	}

	s.cache.InvalidateTags(cache.TagCategories)
	return ok(category)
}

func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return fail(failureMessage("load category", err))
	}
	if category == nil {
		return fail("category not found")
	}

	category.Name = input.Name
	category.Slug = helpers.GenerateSlug(input.Name)
	category.Description = input.Description
	category.Image = input.Image
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return fail(failureMessage("update category", err))
	}

	s.cache.InvalidateTags(cache.TagCategories)
	return ok(category)
}

// Delete surfaces the referential-integrity refusal as a plain message
// so the admin can reassign products first.
func (s *CategoryService) Delete(ctx context.Context, id string) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fail(failureMessage("delete category", err))
	}

	s.cache.InvalidateTags(cache.TagCategories)
	return ok(nil)
}
