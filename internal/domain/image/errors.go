package image

import "errors"

var (
	ErrNotFound         = errors.New("image not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrEmptyFile        = errors.New("file is empty")
	ErrFileTooLarge     = errors.New("file is too large")
	ErrInvalidMimeType  = errors.New("unsupported file type")
)
