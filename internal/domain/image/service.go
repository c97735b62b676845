package image

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxFileSize = 20 * 1024 * 1024 // 20 MB

	thumbWidth  = 480
	thumbHeight = 480
)

// AllowedMimeTypes defines which image types are accepted for upload.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// PropertyCodes resolves a property id to its human-readable code, which
// names the property's upload directory.
type PropertyCodes interface {
	CodeByID(ctx context.Context, id string) (string, error)
}

// Service handles image upload to local disk: save original, generate a
// thumbnail, record the row. The database row is authoritative; files are a
// secondary store.
type Service struct {
	repo       *Repository
	codes      PropertyCodes
	uploadsDir string
	staticBase string
}

func NewService(repo *Repository, codes PropertyCodes, uploadsDir, staticBase string) *Service {
	return &Service{
		repo:       repo,
		codes:      codes,
		uploadsDir: uploadsDir,
		staticBase: staticBase,
	}
}

// Upload stores the file under the property's upload directory, derives a
// thumbnail next to it and inserts the image row. When isMain is requested
// the new image is promoted after creation, demoting any previous main image.
func (s *Service) Upload(ctx context.Context, propertyID string, fileHeader *multipart.FileHeader, altText string, isMain bool) (*Image, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	code, err := s.codes.CodeByID(ctx, propertyID)
	if err != nil {
		return nil, ErrPropertyNotFound
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Detect MIME type from first 512 bytes
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return nil, ErrInvalidMimeType
	}
	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	absDir := filepath.Join(s.uploadsDir, code)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	filename := fmt.Sprintf("%s_%s%s", id, sanitizeName(fileHeader.Filename), ext)

	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	dst.Close()

	relPath := code + "/" + filename

	img := &Image{
		ID:         id,
		PropertyID: propertyID,
		ImagePath:  relPath,
		ImageURL:   PublicURL(s.staticBase, relPath, 0),
		AltText:    altText,
		FileSize:   fileHeader.Size,
		MimeType:   mimeType,
		CreatedAt:  time.Now().UTC(),
	}

	// Thumbnail generation is best-effort: a decode failure leaves the row
	// without a thumbnail URL rather than failing the upload.
	if thumbRel, err := s.generateThumbnail(absPath, relPath); err != nil {
		log.Printf("thumbnail_failed image_id=%s path=%s error=%q", id, relPath, err)
	} else {
		img.ThumbnailURL = PublicURL(s.staticBase, thumbRel, 0)
	}

	if err := s.repo.Create(ctx, img); err != nil {
		s.removeFiles(relPath) // rollback files on DB error
		return nil, fmt.Errorf("failed to save image record: %w", err)
	}

	if isMain && !img.IsMain {
		if err := s.repo.SetMain(ctx, propertyID, img.ID); err != nil {
			return nil, err
		}
		img.IsMain = true
	}

	return img, nil
}

// SetMain promotes an image to be the property's main image.
func (s *Service) SetMain(ctx context.Context, propertyID, imageID string) error {
	return s.repo.SetMain(ctx, propertyID, imageID)
}

// Delete removes the row (promoting a successor when needed) and then removes
// the files. File removal failures are logged, not surfaced: the committed
// row deletion is authoritative.
func (s *Service) Delete(ctx context.Context, imageID string) error {
	img, err := s.repo.Delete(ctx, imageID)
	if err != nil {
		return err
	}
	s.removeFiles(img.ImagePath)
	return nil
}

// DeleteByProperty removes all images of a property, rows first, then files
// best-effort.
func (s *Service) DeleteByProperty(ctx context.Context, propertyID string) error {
	images, err := s.repo.DeleteByPropertyID(ctx, propertyID)
	if err != nil {
		return err
	}
	for _, img := range images {
		s.removeFiles(img.ImagePath)
	}
	return nil
}

func (s *Service) generateThumbnail(absPath, relPath string) (string, error) {
	src, err := imaging.Open(absPath)
	if err != nil {
		return "", err
	}
	thumb := imaging.Fit(src, thumbWidth, thumbHeight, imaging.Lanczos)

	thumbRel := ThumbPath(relPath)
	if err := imaging.Save(thumb, filepath.Join(s.uploadsDir, filepath.FromSlash(thumbRel))); err != nil {
		return "", err
	}
	return thumbRel, nil
}

func (s *Service) removeFiles(relPath string) {
	if relPath == "" {
		return
	}
	for _, rel := range []string{relPath, ThumbPath(relPath)} {
		abs := filepath.Join(s.uploadsDir, filepath.FromSlash(rel))
		if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
			log.Printf("file_cleanup_failed path=%s error=%q", abs, err)
		}
	}
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "image"
	}
	return name
}
