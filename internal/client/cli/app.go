package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/client/catalog"
	"github.com/dmitrijs2005/gophcatalog/internal/client/client"
	"github.com/dmitrijs2005/gophcatalog/internal/client/config"
	"github.com/dmitrijs2005/gophcatalog/internal/client/repositories/products"
	"github.com/dmitrijs2005/gophcatalog/internal/client/services"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
)

// App wires the configuration, the API client, the snapshot cache and the
// synchronizer, and runs commands against them.
type App struct {
	config  *config.Config
	catalog *catalog.Synchronizer
	service services.ProductService
	log     logging.Logger
	db      *sql.DB

	input lineReader
	out   io.Writer
}

// NewApp builds an App for cfg. The snapshot cache is opened only when
// cfg.CacheDSN is set; failing to open it is logged and the App runs
// without one.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	apiClient, err := client.NewHTTPClient(cfg.APIURL, client.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return nil, err
	}

	var (
		db   *sql.DB
		repo products.Repository
	)
	if cfg.CacheDSN != "" {
		db, err = products.InitDatabase(ctx, cfg.CacheDSN)
		if err != nil {
			log.Warn(ctx, "snapshot cache disabled", "dsn", cfg.CacheDSN, "error", err)
		} else {
			repo = products.NewSQLiteRepository(db)
		}
	}

	svc := services.NewProductService(apiClient, repo, log)
	sync := catalog.New(svc, log, catalog.WithMergeOnWrite(cfg.MergeOnWrite))

	return &App{
		config:  cfg,
		catalog: sync,
		service: svc,
		log:     log,
		db:      db,
		input:   newLineInput(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Catalog exposes the synchronizer for one-shot commands.
func (a *App) Catalog() *catalog.Synchronizer {
	return a.catalog
}

// SetOutput redirects user-facing output.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Close releases the API client and the snapshot cache.
func (a *App) Close(ctx context.Context) error {
	err := a.service.Close(ctx)
	if a.db != nil {
		if cerr := a.db.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Load restores the cached snapshot and then fetches the remote collection.
// A failed fetch leaves the restored snapshot in place.
func (a *App) Load(ctx context.Context) error {
	_, _ = a.catalog.Restore(ctx)
	_, err := a.catalog.LoadAll(ctx)
	return err
}

// Run loads the list, starts the background refresh when configured, and
// blocks in the REPL until the user exits or stdin ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(ctx)

	_ = a.Load(ctx)
	a.printMode()

	if a.config.RefreshInterval > 0 {
		go a.StartRefreshWatcher(ctx, a.config.RefreshInterval)
	}

	fmt.Fprintln(a.out, "Welcome to the product catalog (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.input)
	return nil
}

func (a *App) printMode() {
	fmt.Fprintf(a.out, "Working %s with %d products\n", a.catalog.Mode(), len(a.catalog.Products()))
}

// status is shown in the REPL prompt.
func (a *App) status() string {
	s := a.catalog.Mode().String()
	if id := a.catalog.EditingID(); id != "" {
		s = "editing " + id + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// StartRefreshWatcher reloads the list every interval until ctx ends and
// reports switches between online and offline.
func (a *App) StartRefreshWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			before := a.catalog.Mode()
			_, _ = a.catalog.LoadAll(ctx)
			if after := a.catalog.Mode(); after != before {
				a.log.Info(ctx, "switched mode", "mode", after.String())
			}

		case <-ctx.Done():
			return
		}
	}
}
