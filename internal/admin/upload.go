package admin

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

// MaxUploadBytes caps every image upload
const MaxUploadBytes = 2 << 20

// UploadKind describes one upload field of the admin forms
type UploadKind struct {
	Field   string
	Allowed []string
	TooBig  string
	BadType string
}

var (
	// Logo is the optional company logo of a vacancy
	Logo = UploadKind{
		Field:   "logoImage",
		Allowed: []string{"image/jpeg", "image/png", "image/webp", "image/svg+xml"},
		TooBig:  "Logo max 2MB.",
		BadType: "Invalid logo type.",
	}
	// FeaturedImage is the image of a blog post
	FeaturedImage = UploadKind{
		Field:   "featuredImageFile",
		Allowed: []string{"image/jpeg", "image/png", "image/webp"},
		TooBig:  "Image max 2MB.",
		BadType: "Invalid image type.",
	}
)

// ReadUpload buffers r and checks size and sniffed content type. The declared
// extension is ignored.
func ReadUpload(kind UploadKind, filename string, r io.Reader) (*silvertalent.Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("admin: read %s: %w", kind.Field, err)
	}
	if len(data) > MaxUploadBytes {
		return nil, listing.ValidationError{Field: kind.Field, Reason: kind.TooBig}
	}
	if len(data) == 0 {
		return nil, listing.ValidationError{Field: kind.Field, Reason: kind.BadType}
	}

	detected := mimetype.Detect(data)
	contentType := ""
	for _, allowed := range kind.Allowed {
		if detected.Is(allowed) {
			contentType = allowed
			break
		}
	}
	if contentType == "" {
		return nil, listing.ValidationError{Field: kind.Field, Reason: kind.BadType}
	}

	return &silvertalent.Upload{
		Filename:    filepath.Base(filename),
		ContentType: contentType,
		Body:        bytes.NewReader(data),
	}, nil
}
