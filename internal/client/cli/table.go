package cli

import (
	"io"

	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/olekukonko/tablewriter"
)

// RenderProducts prints list as a table. Images are shown as a marker; the
// data URIs are too long for a terminal.
func RenderProducts(w io.Writer, list []models.Product, layout string) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Price", "Description", "Uploaded", "Image")

	for _, p := range list {
		img := ""
		if !p.Image.IsZero() {
			img = "yes"
		}
		if err := table.Append(
			p.ID,
			p.Name,
			models.FormatPrice(p.Price),
			p.Description,
			models.FormatDate(p.UploadedAt, layout),
			img,
		); err != nil {
			return err
		}
	}
	return table.Render()
}
