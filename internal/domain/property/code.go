package property

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gorm.io/gorm"
)

var codePattern = regexp.MustCompile(`^prop-(\d+)$`)

// nextPropertyCode allocates the next sequential prop-NNN code. It scans both
// the existing property codes and the upload directory names: a previously
// rolled-back insert can leave an orphaned prop-NNN folder behind, and its
// number must never be reused. The number is zero-padded to at least three
// digits, or to the width of the widest existing code.
func (r *Repository) nextPropertyCode(tx *gorm.DB) (string, error) {
	maxNum := 0
	width := 3

	consider := func(digits string) {
		n, err := strconv.Atoi(digits)
		if err != nil {
			return
		}
		if n > maxNum {
			maxNum = n
		}
		if len(digits) > width {
			width = len(digits)
		}
	}

	var codes []string
	if err := tx.Model(&Property{}).
		Where("property_code LIKE ?", "prop-%").
		Pluck("property_code", &codes).Error; err != nil {
		return "", err
	}
	for _, code := range codes {
		if m := codePattern.FindStringSubmatch(code); m != nil {
			consider(m[1])
		}
	}

	// The uploads dir may not exist yet; that just means no orphaned folders.
	if entries, err := os.ReadDir(r.uploadsDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if m := codePattern.FindStringSubmatch(entry.Name()); m != nil {
				consider(m[1])
			}
		}
	}

	return fmt.Sprintf("prop-%0*d", width, maxNum+1), nil
}
