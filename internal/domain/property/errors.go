package property

import "errors"

var (
	ErrNotFound        = errors.New("property not found")
	ErrValidation      = errors.New("validation failed")
	ErrNothingToUpdate = errors.New("nothing to update")
)
