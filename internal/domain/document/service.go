package document

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

	"github.com/google/uuid"

	"realty/internal/domain/image"
)

const MaxFileSize = 30 * 1024 * 1024 // 30 MB

var AllowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/zip": true, // docx and xlsx sniff as zip
	"text/plain":      true,
}

// PropertyCodes resolves a property id to its upload directory name.
type PropertyCodes interface {
	CodeByID(ctx context.Context, id string) (string, error)
}

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

// Upload stores the file under <uploads>/<code>/docs/ and records the row.
func (s *Service) Upload(ctx context.Context, propertyID string, fileHeader *multipart.FileHeader) (*Document, error) {
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

	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return nil, ErrInvalidMimeType
	}
	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	absDir := filepath.Join(s.uploadsDir, code, "docs")
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.New().String()
	filename := fmt.Sprintf("%s%s", id, strings.ToLower(filepath.Ext(fileHeader.Filename)))

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

	relPath := code + "/docs/" + filename

	doc := &Document{
		ID:               id,
		PropertyID:       propertyID,
		Filename:         filename,
		OriginalFilename: fileHeader.Filename,
		Path:             relPath,
		Size:             fileHeader.Size,
		MimeType:         mimeType,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to save document record: %w", err)
	}

	doc.URL = image.PublicURL(s.staticBase, relPath, 0)
	return doc, nil
}

func (s *Service) ListByProperty(ctx context.Context, propertyID string) ([]Document, error) {
	docs, err := s.repo.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].URL = image.PublicURL(s.staticBase, docs[i].Path, 0)
	}
	return docs, nil
}

// Delete removes the row, then the file best-effort.
func (s *Service) Delete(ctx context.Context, id string) error {
	doc, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.removeFile(doc.Path)
	return nil
}

// DeleteByProperty removes all documents of a property, rows first.
func (s *Service) DeleteByProperty(ctx context.Context, propertyID string) error {
	docs, err := s.repo.DeleteByPropertyID(ctx, propertyID)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		s.removeFile(doc.Path)
	}
	return nil
}

func (s *Service) removeFile(relPath string) {
	if relPath == "" {
		return
	}
	abs := filepath.Join(s.uploadsDir, filepath.FromSlash(relPath))
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		log.Printf("file_cleanup_failed path=%s error=%q", abs, err)
	}
}
