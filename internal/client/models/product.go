// Package models defines the catalog data carried between the API, the local
// snapshot cache and the interactive client.
package models

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Product is a persisted catalog record as returned by the API.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Description string
	Image       Image
	UploadedAt  time.Time

	// Issues names fields the API sent in a shape that could not be read.
	// Those fields are left zero so the rest of the record stays usable.
	Issues []string
}

// productWire mirrors the API field names. Price and upload time arrive in
// more than one shape and are decoded by hand.
type productWire struct {
	ID          string              `json:"_id"`
	Name        string              `json:"prd_name"`
	Price       any                 `json:"prd_price"`
	Description string              `json:"prd_desc"`
	Image       Image               `json:"image"`
	UploadedAt  jsoniter.RawMessage `json:"uploadedAt"`
}

func (p *Product) UnmarshalJSON(b []byte) error {
	var w productWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	var issues []string
	price, err := ParsePrice(w.Price)
	if err != nil {
		issues = append(issues, err.Error())
	}
	uploaded, err := parseUploadedAt(w.UploadedAt)
	if err != nil {
		issues = append(issues, err.Error())
	}

	*p = Product{
		ID:          w.ID,
		Name:        w.Name,
		Price:       price,
		Description: w.Description,
		Image:       w.Image,
		UploadedAt:  uploaded,
		Issues:      issues,
	}
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	out := struct {
		ID          string  `json:"_id"`
		Name        string  `json:"prd_name"`
		Price       string  `json:"prd_price"`
		Description string  `json:"prd_desc"`
		Image       Image   `json:"image"`
		UploadedAt  *string `json:"uploadedAt,omitempty"`
	}{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.String(),
		Description: p.Description,
		Image:       p.Image,
	}
	if !p.UploadedAt.IsZero() {
		s := p.UploadedAt.UTC().Format(time.RFC3339Nano)
		out.UploadedAt = &s
	}
	return json.Marshal(out)
}

// Normalized returns a copy of p with its image in displayable string form.
func (p Product) Normalized() Product {
	p.Image = NormalizeImage(p.Image)
	return p
}

// Normalize returns a new slice with every record normalized. The input is
// not modified.
func Normalize(products []Product) []Product {
	out := make([]Product, len(products))
	for n, p := range products {
		out[n] = p.Normalized()
	}
	return out
}

// ParsePrice accepts a JSON number, a numeric string or nil (zero).
func ParsePrice(v any) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price: %w", err)
	}
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price %q: %w", s, err)
	}
	return d, nil
}

// parseUploadedAt reads a date string in any common layout or a number of
// epoch milliseconds.
func parseUploadedAt(raw jsoniter.RawMessage) (time.Time, error) {
	if len(raw) == 0 {
		return time.Time{}, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return time.Time{}, err
	}

	switch value := v.(type) {
	case nil:
		return time.Time{}, nil
	case float64:
		return time.UnixMilli(int64(value)).UTC(), nil
	case string:
		if value == "" {
			return time.Time{}, nil
		}
		t, err := dateparse.ParseIn(value, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("uploadedAt %q: %w", value, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("uploadedAt: unexpected %T", v)
	}
}
