package models

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeImage(t *testing.T) {
	tests := []struct {
		name string
		in   Image
		want Image
	}{
		{
			name: "raw bytes become a jpeg data URI",
			in:   RawImage([]byte{0x01, 0x02, 0x03}),
			want: Image{Kind: ImageRef, Ref: "data:image/jpeg;base64,AQID"},
		},
		{
			name: "url passes through",
			in:   RefImage("http://x/y.png"),
			want: Image{Kind: ImageRef, Ref: "http://x/y.png"},
		},
		{
			name: "data URI passes through",
			in:   RefImage("data:image/png;base64,iVBORw0KGgo="),
			want: Image{Kind: ImageRef, Ref: "data:image/png;base64,iVBORw0KGgo="},
		},
		{
			name: "absent stays absent",
			in:   Image{},
			want: Image{},
		},
		{
			name: "empty raw payload",
			in:   RawImage(nil),
			want: Image{Kind: ImageRef, Ref: RawImagePrefix},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, cmp.Diff(tt.want, NormalizeImage(tt.in)))
		})
	}
}

func TestNormalizeImage_EncodesExactBytes(t *testing.T) {
	payload := []byte("\xff\xd8\xff\xe0 not really a jpeg")
	got := NormalizeImage(RawImage(payload)).Ref

	require.True(t, strings.HasPrefix(got, RawImagePrefix))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(got, RawImagePrefix))
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := []Product{
		{ID: "1", Image: RawImage([]byte{1, 2, 3})},
		{ID: "2", Image: RefImage("http://x/y.png")},
		{ID: "3"},
	}

	out := Normalize(in)

	require.Len(t, out, 3)
	assert.Equal(t, ImageRaw, in[0].Image.Kind, "input must be left alone")
	assert.Equal(t, "data:image/jpeg;base64,AQID", out[0].Image.Ref)
	assert.Equal(t, "http://x/y.png", out[1].Image.Ref)
	assert.True(t, out[2].Image.IsZero())
}

func TestProduct_UnmarshalJSON_ImageShapes(t *testing.T) {
	body := `[
		{"_id":"a","prd_name":"Raw","prd_price":9.99,"prd_desc":"d","image":{"type":"Buffer","data":[1,2,3]},"uploadedAt":"2024-03-05T10:20:30.000Z"},
		{"_id":"b","prd_name":"Url","prd_price":"12.50","prd_desc":"d","image":"http://x/y.png"},
		{"_id":"c","prd_name":"None","prd_price":0,"prd_desc":"d"},
		{"_id":"d","prd_name":"Null","prd_price":null,"prd_desc":"d","image":null},
		{"_id":"e","prd_name":"NoData","prd_price":1,"prd_desc":"d","image":{"type":"Buffer"}}
	]`

	var got []Product
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 5)

	assert.Equal(t, ImageRaw, got[0].Image.Kind)
	assert.Equal(t, []byte{1, 2, 3}, got[0].Image.Data)
	assert.True(t, decimal.RequireFromString("9.99").Equal(got[0].Price))
	assert.Equal(t, time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC), got[0].UploadedAt.UTC())

	assert.Equal(t, RefImage("http://x/y.png"), got[1].Image)
	assert.Equal(t, "12.50", FormatPrice(got[1].Price))

	assert.True(t, got[2].Image.IsZero())
	assert.True(t, got[2].UploadedAt.IsZero())

	assert.True(t, got[3].Image.IsZero())
	assert.True(t, got[3].Price.IsZero())

	assert.True(t, got[4].Image.IsZero())
}

func TestProduct_UnmarshalJSON_EpochMillis(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"x","uploadedAt":1709634030000}`), &p))
	assert.Equal(t, time.UnixMilli(1709634030000).UTC(), p.UploadedAt)
}

func TestProduct_UnmarshalJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "byte out of range", body: `{"_id":"x","image":{"type":"Buffer","data":[1,256]}}`},
		{name: "image is a number", body: `{"_id":"x","image":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			require.Error(t, json.Unmarshal([]byte(tt.body), &p))
		})
	}
}

func TestProduct_UnmarshalJSON_ToleratesBadFields(t *testing.T) {
	var list []Product
	body := `[
		{"_id":"1","prd_name":"Good","prd_price":"9.99","uploadedAt":"2024-03-05T10:20:30Z"},
		{"_id":"2","prd_name":"Odd date","prd_price":1,"uploadedAt":"not a date"},
		{"_id":"3","prd_name":"Odd price","prd_price":"cheap"}
	]`
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list, 3)

	assert.Empty(t, list[0].Issues)

	assert.Equal(t, "Odd date", list[1].Name)
	assert.True(t, list[1].UploadedAt.IsZero())
	assert.True(t, list[1].Price.Equal(decimal.NewFromInt(1)))
	require.Len(t, list[1].Issues, 1)
	assert.Contains(t, list[1].Issues[0], "not a date")

	assert.True(t, list[2].Price.IsZero())
	require.Len(t, list[2].Issues, 1)
	assert.Contains(t, list[2].Issues[0], "cheap")
}

func TestProduct_MarshalJSON_NormalizesImage(t *testing.T) {
	p := Product{
		ID:          "a",
		Name:        "Widget",
		Price:       decimal.RequireFromString("9.99"),
		Description: "A widget",
		Image:       RawImage([]byte{1, 2, 3}),
		UploadedAt:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"_id":"a","prd_name":"Widget","prd_price":"9.99","prd_desc":"A widget",
		"image":"data:image/jpeg;base64,AQID","uploadedAt":"2024-03-05T00:00:00Z"
	}`, string(b))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      any
		want    string
		wantErr bool
	}{
		{in: nil, want: "0"},
		{in: "", want: "0"},
		{in: 9.99, want: "9.99"},
		{in: "12.50", want: "12.5"},
		{in: 3, want: "3"},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String(), "%v", tt.in)
	}
}
