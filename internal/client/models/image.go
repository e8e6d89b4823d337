package models

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// RawImagePrefix is prepended to base64-encoded raw image payloads. The API
// does not report the stored format, so every raw payload is labelled JPEG.
const RawImagePrefix = "data:image/jpeg;base64,"

// ImageKind tells which representation an Image carries.
type ImageKind int

const (
	ImageNone ImageKind = iota
	// ImageRef is a displayable string: an URL or a data URI.
	ImageRef
	// ImageRaw is a byte payload returned by the API as {"type":"Buffer","data":[...]}.
	ImageRaw
)

// Image is the union of the three shapes an API record may carry.
type Image struct {
	Kind ImageKind
	Ref  string
	Data []byte
}

var ErrInvalidImage = errors.New("invalid image payload")

// RefImage returns an Image holding s, or no image when s is empty.
func RefImage(s string) Image {
	if s == "" {
		return Image{}
	}
	return Image{Kind: ImageRef, Ref: s}
}

// RawImage returns an Image holding a copy of b.
func RawImage(b []byte) Image {
	data := make([]byte, len(b))
	copy(data, b)
	return Image{Kind: ImageRaw, Data: data}
}

func (i Image) IsZero() bool { return i.Kind == ImageNone }

// String returns the displayable form. Raw payloads are encoded on the fly.
func (i Image) String() string {
	return NormalizeImage(i).Ref
}

// NormalizeImage converts a raw payload into a data URI and passes every other
// shape through unchanged.
func NormalizeImage(i Image) Image {
	if i.Kind != ImageRaw {
		return i
	}
	return Image{Kind: ImageRef, Ref: RawImagePrefix + base64.StdEncoding.EncodeToString(i.Data)}
}

type bufferPayload struct {
	Type string `json:"type"`
	Data []int  `json:"data"`
}

// UnmarshalJSON accepts null, a string, or a Buffer-shaped object.
func (i *Image) UnmarshalJSON(b []byte) error {
	*i = Image{}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case nil:
		return nil
	case string:
		*i = RefImage(value)
		return nil
	case map[string]any:
		var p bufferPayload
		if err := json.Unmarshal(b, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		if p.Data == nil {
			return nil
		}
		data := make([]byte, len(p.Data))
		for n, octet := range p.Data {
			if octet < 0 || octet > 255 {
				return fmt.Errorf("%w: byte %d out of range", ErrInvalidImage, octet)
			}
			data[n] = byte(octet)
		}
		*i = Image{Kind: ImageRaw, Data: data}
		return nil
	default:
		return fmt.Errorf("%w: unexpected %T", ErrInvalidImage, v)
	}
}

// MarshalJSON writes the normalized string, or null.
func (i Image) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.String())
}
