// Package export writes the local product list to CSV.
package export

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/gocarina/gocsv"
)

type row struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Price       string `csv:"price"`
	Description string `csv:"description"`
	Uploaded    string `csv:"uploaded"`
	HasImage    bool   `csv:"has_image"`
}

// WriteCSV writes one row per product, in list order, with a header line.
// Dates use layout; an empty layout means models.DefaultDateLayout.
func WriteCSV(w io.Writer, products []models.Product, layout string) error {
	if layout == "" {
		layout = models.DefaultDateLayout
	}

	rows := make([]*row, 0, len(products))
	for _, p := range products {
		rows = append(rows, &row{
			ID:          p.ID,
			Name:        p.Name,
			Price:       models.FormatPrice(p.Price),
			Description: p.Description,
			Uploaded:    models.FormatDate(p.UploadedAt, layout),
			HasImage:    !p.Image.IsZero(),
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
