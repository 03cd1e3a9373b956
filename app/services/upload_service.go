package services

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/repositories"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".svg":  true,
}

// UploadService stores admin image uploads on disk and records them so
// the media list can offer previously uploaded URLs for reuse.
type UploadService struct {
	imageRepo repositories.ImageRepositoryImpl
	uploadDir string
	uploadURL string
}

func NewUploadService(imageRepo repositories.ImageRepositoryImpl, uploadDir, uploadURL string) *UploadService {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if uploadURL == "" {
		uploadURL = "/uploads"
	}
	return &UploadService{
		imageRepo: imageRepo,
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}

// Upload saves one multipart file into the folder hint and returns the
// public URL the admin UI previews and later attaches to an entity.
func (s *UploadService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return fail("unsupported file type: " + ext)
	}

	folder = helpers.GenerateSlug(folder)
	if folder == "" {
		folder = "misc"
	}

	name := uuid.New().String() + ext
	dir := filepath.Join(s.uploadDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(failureMessage("prepare upload directory", err))
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fail(failureMessage("save upload", err))
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		return fail(failureMessage("save upload", err))
	}

	url := s.uploadURL + "/" + folder + "/" + name
	image := &models.Image{
		ID:        uuid.New().String(),
		Path:      url,
		Folder:    folder,
		Size:      size,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return fail(failureMessage("record upload", err))
	}

	return ok(map[string]string{"url": url})
}
