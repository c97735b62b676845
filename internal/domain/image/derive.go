package image

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
)

// PublicURL builds a public URL for a stored relative path. Each path segment
// is percent-encoded independently so spaces and non-ASCII filenames survive.
// A positive version is appended as a cache-busting query parameter.
func PublicURL(base, relPath string, version int64) string {
	relPath = strings.Trim(strings.ReplaceAll(relPath, "\\", "/"), "/")
	if relPath == "" {
		return ""
	}

	segs := strings.Split(relPath, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}

	u := strings.TrimRight(base, "/") + "/" + strings.Join(segs, "/")
	if version > 0 {
		u += fmt.Sprintf("?v=%d", version)
	}
	return u
}

// ThumbPath derives the thumbnail's relative path by inserting a _thumb
// suffix before the file extension, in the same directory.
func ThumbPath(relPath string) string {
	ext := path.Ext(relPath)
	return strings.TrimSuffix(relPath, ext) + "_thumb" + ext
}

// Prepare returns a display-ready copy of a gallery: images with an empty
// stored URL are dropped, URLs are made absolute against publicBase when one
// is configured, and the result is sorted into display order
// (main first, then sort order ascending, then id).
func Prepare(images []Image, publicBase string) []Image {
	out := make([]Image, 0, len(images))
	for _, img := range images {
		if img.ImageURL == "" {
			continue
		}
		if publicBase != "" {
			if strings.HasPrefix(img.ImageURL, "/") {
				img.ImageURL = publicBase + img.ImageURL
			}
			if strings.HasPrefix(img.ThumbnailURL, "/") {
				img.ThumbnailURL = publicBase + img.ThumbnailURL
			}
		}
		out = append(out, img)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsMain != out[j].IsMain {
			return out[i].IsMain
		}
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}
