package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RequestIDHeader carries a per-request identifier that is also logged.
const RequestIDHeader = "X-Request-ID"

// Multipart field names understood by the API.
const (
	FieldName        = "prd_name"
	FieldPrice       = "prd_price"
	FieldDescription = "prd_desc"
	FieldImage       = "image"
)

// HTTPClient implements Client against the REST collection resource:
//
//	GET    {base}       list
//	POST   {base}       create (multipart)
//	PUT    {base}/{id}  update (multipart)
//	DELETE {base}/{id}  delete
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

var _ Client = (*HTTPClient)(nil)

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds every request. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.timeout = d }
}

// NewHTTPClient validates baseURL and returns a client for it.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) itemURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}

func (c *HTTPClient) List(ctx context.Context) ([]models.Product, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL, nil, "")
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("decode product list: %w", err)
	}
	return products, nil
}

func (c *HTTPClient) Create(ctx context.Context, form Form) (*models.Product, error) {
	return c.send(ctx, http.MethodPost, c.baseURL, form)
}

func (c *HTTPClient) Update(ctx context.Context, id string, form Form) (*models.Product, error) {
	return c.send(ctx, http.MethodPut, c.itemURL(id), form)
}

func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil, "")
	return err
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) send(ctx context.Context, method, target string, form Form) (*models.Product, error) {
	payload, contentType, err := EncodeForm(form)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, method, target, payload, contentType)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body), nil
}

// decodeRecord reads the echoed record. Some deployments answer with a bare
// record, others wrap it as {"product": ...}; anything else yields nil.
func decodeRecord(body []byte) *models.Product {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var p models.Product
	if err := json.Unmarshal(body, &p); err == nil && p.ID != "" {
		return &p
	}

	var wrapped struct {
		Product *models.Product `json:"product"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Product != nil && wrapped.Product.ID != "" {
		return wrapped.Product
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, target string, payload io.Reader, contentType string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, RequestID(ctx))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{Status: resp.StatusCode, Detail: detailFromBody(body)}
	}
	return body, nil
}

// EncodeForm writes form as multipart/form-data. The image part is present
// only when form.Image is set.
func EncodeForm(form Form) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{FieldName, form.Name},
		{FieldPrice, form.Price},
		{FieldDescription, form.Description},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	if form.Image != nil && !form.Image.IsZero() {
		if err := writeImagePart(w, *form.Image); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func writeImagePart(w *multipart.Writer, file models.FileRef) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open image %s: %w", file.Name, err)
	}
	defer src.Close()

	name := file.Name
	if name == "" {
		name = filepath.Base(file.Path)
	}
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     FieldImage,
		"filename": name,
	}))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy image %s: %w", file.Name, err)
	}
	return nil
}

type requestIDKey struct{}

// WithRequestID stores id in ctx so the request and the logs agree on it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored in ctx, or a fresh one.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
