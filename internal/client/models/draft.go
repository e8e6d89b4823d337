package models

import (
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// FileRef points at a local file chosen as a product image. The file is not
// read when it is selected; readers open it on demand.
type FileRef struct {
	Name string
	Path string
}

// NewFileRef builds a FileRef named after the base of path.
func NewFileRef(path string) FileRef {
	return FileRef{Name: filepath.Base(path), Path: path}
}

func (f FileRef) IsZero() bool { return f.Path == "" }

// Open opens the referenced file for reading.
func (f FileRef) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// Draft is the not-yet-persisted form state of a product.
type Draft struct {
	Name        string
	Price       decimal.Decimal
	Description string
	// Image is set only when a file was selected in this session.
	Image *FileRef
	// Preview is shown to the user and never sent to the API.
	Preview string
}

// EmptyDraft returns the form defaults.
func EmptyDraft() Draft {
	return Draft{Price: decimal.Zero}
}

// IsEmpty reports whether d carries nothing beyond the defaults.
func (d Draft) IsEmpty() bool {
	return d.Name == "" && d.Description == "" && d.Price.IsZero() && d.Image == nil && d.Preview == ""
}

// DraftFromProduct prefills a form from an existing record. The image is left
// unset so it is only sent when the user picks a new file; the current image
// stays visible through the preview.
func DraftFromProduct(p Product) Draft {
	return Draft{
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Preview:     p.Image.String(),
	}
}
