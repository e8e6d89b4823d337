package catalog

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophcatalog/internal/client/client"
	"github.com/dmitrijs2005/gophcatalog/internal/client/services"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/stretchr/testify/require"
)

type apiRequest struct {
	Method string
	Path   string
	Fields map[string]string
	// Image holds the uploaded bytes; nil when no image part was sent.
	Image []byte
}

// catalogAPI is an in-memory product collection speaking the wire format of
// the real API.
type catalogAPI struct {
	mu       sync.Mutex
	records  []map[string]any
	nextID   int
	requests []apiRequest
	// failWith makes every non-GET request answer with this status.
	failWith int
}

func newCatalogAPI(records ...map[string]any) *catalogAPI {
	return &catalogAPI{records: records, nextID: 100}
}

func (a *catalogAPI) serve(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := apiRequest{Method: r.Method, Path: r.URL.Path, Fields: map[string]string{}}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			for k, v := range r.MultipartForm.Value {
				req.Fields[k] = v[0]
			}
			if fh := r.MultipartForm.File[client.FieldImage]; len(fh) > 0 {
				f, err := fh[0].Open()
				require.NoError(t, err)
				req.Image, err = io.ReadAll(f)
				require.NoError(t, err)
				_ = f.Close()
			}
		}

		a.mu.Lock()
		defer a.mu.Unlock()
		a.requests = append(a.requests, req)

		if a.failWith != 0 && r.Method != http.MethodGet {
			w.WriteHeader(a.failWith)
			_, _ = io.WriteString(w, `{"message":"rejected by test"}`)
			return
		}

		id := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/product"), "/")
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(a.records)
		case http.MethodPost:
			a.nextID++
			rec := record(strconv.Itoa(a.nextID), req.Fields)
			a.records = append(a.records, rec)
			_ = json.NewEncoder(w).Encode(rec)
		case http.MethodPut:
			for i, rec := range a.records {
				if rec["_id"] == id {
					a.records[i] = record(id, req.Fields)
					_ = json.NewEncoder(w).Encode(a.records[i])
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
		case http.MethodDelete:
			for i, rec := range a.records {
				if rec["_id"] == id {
					a.records = append(a.records[:i], a.records[i+1:]...)
					_, _ = io.WriteString(w, `{"ok":true}`)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"no such product"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func record(id string, fields map[string]string) map[string]any {
	return map[string]any{
		"_id":        id,
		"prd_name":   fields[client.FieldName],
		"prd_price":  fields[client.FieldPrice],
		"prd_desc":   fields[client.FieldDescription],
		"uploadedAt": "2024-03-05T10:00:00Z",
	}
}

func (a *catalogAPI) snapshot() []apiRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]apiRequest(nil), a.requests...)
}

func (a *catalogAPI) count(method string) int {
	n := 0
	for _, r := range a.snapshot() {
		if r.Method == method {
			n++
		}
	}
	return n
}

func (a *catalogAPI) writes() []apiRequest {
	var out []apiRequest
	for _, r := range a.snapshot() {
		if r.Method != http.MethodGet {
			out = append(out, r)
		}
	}
	return out
}

// newHTTPSynchronizer wires a Synchronizer to api over real HTTP.
func newHTTPSynchronizer(t *testing.T, api *catalogAPI, opts ...Option) *Synchronizer {
	t.Helper()
	srv := api.serve(t)
	c, err := client.NewHTTPClient(srv.URL + "/product")
	require.NoError(t, err)
	log := logging.NewNop()
	return New(services.NewProductService(c, nil, log), log, opts...)
}
