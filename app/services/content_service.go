package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/repositories"
	"github.com/sellaap/go-storefront/app/utils/cache"
	"github.com/sellaap/go-storefront/app/utils/linkcheck"
)

type PostInput struct {
	Title           string `validate:"required,min=2,max=255"`
	Excerpt         string
	Content         string
	CoverImage      string
	Status          string `validate:"required"`
	MetaTitle       string
	MetaDescription string
	Keywords        string
	TagNames        []string
}

type PageInput struct {
	Title           string `validate:"required,min=2,max=255"`
	Content         string
	Status          string `validate:"required"`
	MetaTitle       string
	MetaDescription string
	Keywords        string
}

// ContentService is the action layer for posts and pages. Saves run
// the internal-link check over the HTML body and attach any broken
// links as warnings; the save itself still succeeds.
type ContentService struct {
	postRepo    repositories.PostRepositoryImpl
	pageRepo    repositories.PageRepositoryImpl
	productRepo repositories.ProductRepositoryImpl
	cache       *cache.Cache
	validate    *validator.Validate
}

func NewContentService(
	postRepo repositories.PostRepositoryImpl,
	pageRepo repositories.PageRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	c *cache.Cache,
) *ContentService {
	return &ContentService{
		postRepo:    postRepo,
		pageRepo:    pageRepo,
		productRepo: productRepo,
		cache:       c,
		validate:    validator.New(),
	}
}

// slugChecker adapts the repositories to the link checker.
type slugChecker struct {
	svc *ContentService
}

func (c slugChecker) PageSlugExists(ctx context.Context, slug string) (bool, error) {
	return c.svc.pageRepo.SlugExists(ctx, slug)
}

func (c slugChecker) PostSlugExists(ctx context.Context, slug string) (bool, error) {
	return c.svc.postRepo.SlugExists(ctx, slug)
}

func (c slugChecker) ProductSlugExists(ctx context.Context, slug string) (bool, error) {
	return c.svc.productRepo.SlugExists(ctx, slug)
}

func (s *ContentService) checkLinks(ctx context.Context, body string) []string {
	warnings, err := linkcheck.CheckContent(ctx, body, slugChecker{svc: s})
	if err != nil {
		// Best-effort check: a store error here never blocks the save.
		log.Printf("checkLinks: %v", err)
	}
	return warnings
}

func (s *ContentService) PublishedPosts(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
	type pageResult struct {
		Posts []models.Post
		Total int64
	}
	key := cacheKeyPage("posts:published", limit, offset)
	tags := []string{cache.TagPosts, cache.PathTag("/blog")}
	res, err := cache.Memoize(s.cache, key, cache.TTLContent, tags, func() (pageResult, error) {
		posts, total, err := s.postRepo.GetPublishedPaginated(ctx, limit, offset)
		return pageResult{Posts: posts, Total: total}, err
	})
	return res.Posts, res.Total, err
}

func (s *ContentService) PostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	tags := []string{cache.TagPosts, cache.PathTag("/blog/" + slug)}
	return cache.Memoize(s.cache, "posts:slug:"+slug, cache.TTLContent, tags, func() (*models.Post, error) {
		return s.postRepo.GetBySlug(ctx, slug)
	})
}

func (s *ContentService) PageBySlug(ctx context.Context, slug string) (*models.Page, error) {
	tags := []string{cache.TagPages, cache.PathTag("/pages/" + slug)}
	return cache.Memoize(s.cache, "pages:slug:"+slug, cache.TTLContent, tags, func() (*models.Page, error) {
		return s.pageRepo.GetBySlug(ctx, slug)
	})
}

func (s *ContentService) CreatePost(ctx context.Context, input PostInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}
	if !models.ValidPostStatus(input.Status) {
		return fail("invalid post status: " + input.Status)
	}

	tags, err := s.postRepo.ResolveTags(ctx, buildTags(input.TagNames))
	if err != nil {
		return fail(failureMessage("resolve tags", err))
	}

	post := &models.Post{
		ID:              uuid.New().String(),
		Title:           input.Title,
		Slug:            helpers.GenerateSlug(input.Title),
		Excerpt:         input.Excerpt,
		Content:         input.Content,
		CoverImage:      input.CoverImage,
		Status:          input.Status,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		Keywords:        input.Keywords,
		Tags:            tags,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if input.Status == models.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return fail(failureMessage("create post", err))
	}

	s.invalidatePost(post.Slug)
	return ok(post, s.checkLinks(ctx, post.Content)...)
}

func (s *ContentService) UpdatePost(ctx context.Context, id string, input PostInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}
	if !models.ValidPostStatus(input.Status) {
		return fail("invalid post status: " + input.Status)
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return fail(failureMessage("load post", err))
	}
	if post == nil {
		return fail("post not found")
	}

	tags, err := s.postRepo.ResolveTags(ctx, buildTags(input.TagNames))
	if err != nil {
		return fail(failureMessage("resolve tags", err))
	}

	oldSlug := post.Slug
	post.Title = input.Title
	post.Slug = helpers.GenerateSlug(input.Title)
	post.Excerpt = input.Excerpt
	post.Content = input.Content
	post.CoverImage = input.CoverImage
	post.MetaTitle = input.MetaTitle
	post.MetaDescription = input.MetaDescription
	post.Keywords = input.Keywords
	if input.Status == models.StatusPublished && post.Status != models.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}
	post.Status = input.Status
	post.Tags = nil
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(ctx, post); err != nil {
		return fail(failureMessage("update post", err))
	}
	if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
		return fail(failureMessage("save post tags", err))
	}
	post.Tags = tags

	s.invalidatePost(oldSlug)
	if post.Slug != oldSlug {
		s.invalidatePost(post.Slug)
	}
	return ok(post, s.checkLinks(ctx, post.Content)...)
}

func (s *ContentService) DeletePost(ctx context.Context, id string) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return fail(failureMessage("load post", err))
	}
	if post == nil {
		return fail("post not found")
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return fail(failureMessage("delete post", err))
	}

	s.invalidatePost(post.Slug)
	return ok(nil)
}

func (s *ContentService) CreatePage(ctx context.Context, input PageInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}
	if !models.ValidPageStatus(input.Status) {
		return fail("invalid page status: " + input.Status)
	}

	page := &models.Page{
		ID:              uuid.New().String(),
		Title:           input.Title,
		Slug:            helpers.GenerateSlug(input.Title),
		Content:         input.Content,
		Status:          input.Status,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		Keywords:        input.Keywords,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.pageRepo.Create(ctx, page); err != nil {
		return fail(failureMessage("create page", err))
	}

	s.invalidatePage(page.Slug)
	return ok(page, s.checkLinks(ctx, page.Content)...)
}

func (s *ContentService) UpdatePage(ctx context.Context, id string, input PageInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}
	if !models.ValidPageStatus(input.Status) {
		return fail("invalid page status: " + input.Status)
	}

	page, err := s.pageRepo.GetByID(ctx, id)
	if err != nil {
		return fail(failureMessage("load page", err))
	}
	if page == nil {
		return fail("page not found")
	}

	oldSlug := page.Slug
	page.Title = input.Title
	page.Slug = helpers.GenerateSlug(input.Title)
	page.Content = input.Content
	page.Status = input.Status
	page.MetaTitle = input.MetaTitle
	page.MetaDescription = input.MetaDescription
	page.Keywords = input.Keywords
	page.UpdatedAt = time.Now()

	if err := s.pageRepo.Update(ctx, page); err != nil {
		return fail(failureMessage("update page", err))
	}

	s.invalidatePage(oldSlug)
	if page.Slug != oldSlug {
		s.invalidatePage(page.Slug)
	}
	return ok(page, s.checkLinks(ctx, page.Content)...)
}

func (s *ContentService) DeletePage(ctx context.Context, id string) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}

	page, err := s.pageRepo.GetByID(ctx, id)
	if err != nil {
		return fail(failureMessage("load page", err))
	}
	if page == nil {
		return fail("page not found")
	}

	if err := s.pageRepo.Delete(ctx, id); err != nil {
		return fail(failureMessage("delete page", err))
	}

	s.invalidatePage(page.Slug)
	return ok(nil)
}

func (s *ContentService) invalidatePost(slug string) {
	s.cache.InvalidateTags(cache.TagPosts)
	s.cache.InvalidatePath("/blog")
	s.cache.InvalidatePath("/blog/" + slug)
}

func (s *ContentService) invalidatePage(slug string) {
	s.cache.InvalidateTags(cache.TagPages)
	s.cache.InvalidatePath("/pages/" + slug)
}

func buildTags(names []string) []models.Tag {
	var tags []models.Tag
	for _, name := range names {
		if name == "" {
			continue
		}
		tags = append(tags, models.Tag{
			ID:        uuid.New().String(),
			Name:      name,
			Slug:      helpers.GenerateSlug(name),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
	}
	return tags
}

func cacheKeyPage(prefix string, limit, offset int) string {
	return fmt.Sprintf("%s:%d:%d", prefix, limit, offset)
}
