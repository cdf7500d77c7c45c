// Package setups turns environment configuration into the content snapshot,
// lead repository and asset backend shared by the web server and the CLI.
package setups

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/exchangedesk/fortworth1031/content"
	contactrepo "github.com/exchangedesk/fortworth1031/domains/contact/be/repo"
	"github.com/exchangedesk/fortworth1031/platform/go/assets"
	"github.com/exchangedesk/fortworth1031/platform/go/batch"
	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	"github.com/exchangedesk/fortworth1031/platform/go/persistence"
	"github.com/exchangedesk/fortworth1031/platform/go/site"
)

// ContentConfig selects embedded content or a directory on disk.
type ContentConfig struct {
	Dir   string `env:"CONTENT_DIR"`
	Watch bool   `env:"CONTENT_WATCH" envDefault:"false"`
}

// FS returns the configured content tree.
func (c ContentConfig) FS() fs.FS {
	if strings.TrimSpace(c.Dir) == "" {
		return content.FS()
	}
	return os.DirFS(c.Dir)
}

// BatchDir is the directory the watcher follows; empty for embedded content.
func (c ContentConfig) BatchDir() string {
	if strings.TrimSpace(c.Dir) == "" {
		return ""
	}
	return filepath.Join(c.Dir, content.BatchDir)
}

// Content is one load of the content tree.
type Content struct {
	Site    site.Info
	Catalog *catalog.Catalog
	Store   *batch.Store
	Issues  []batch.Issue
}

// LoadContent reads site settings and batches from fsys and validates records
// against the schemas shipped with the tree, or the embedded ones when absent.
func LoadContent(fsys fs.FS) (Content, error) {
	info, err := site.Load(fsys)
	if err != nil {
		return Content{}, err
	}

	c, store, err := catalog.Load(fsys, CatalogOptions(info))
	if err != nil {
		return Content{}, err
	}

	schemas, err := batch.LoadSchemas(fsys, content.SchemaDir)
	if err != nil {
		schemas, err = batch.LoadSchemas(content.FS(), content.SchemaDir)
		if err != nil {
			return Content{}, fmt.Errorf("load schemas: %w", err)
		}
	}

	return Content{Site: info, Catalog: c, Store: store, Issues: schemas.Validate(store)}, nil
}

// CatalogOptions derives catalog build options from site settings.
func CatalogOptions(info site.Info) catalog.Options {
	return catalog.Options{PrimaryCity: info.PrimaryCity(), StateAbbr: info.StateAbbr()}
}

// LogContent reports duplicate slugs and schema issues. Neither stops the site.
func LogContent(logger *zap.Logger, c Content) {
	for _, d := range c.Catalog.Duplicates() {
		logger.Info("duplicate slug replaced by later partition",
			zap.String("entity", string(d.Entity)),
			zap.String("slug", d.Slug),
		)
	}
	for _, issue := range c.Issues {
		logger.Warn("content record failed schema validation", zap.String("issue", issue.String()))
	}
}

// LeadStoreConfig selects the lead persistence backend.
type LeadStoreConfig struct {
	Kind        string `env:"LEAD_STORE" envDefault:"sqlite"` // memory | sqlite | postgres
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"./.data/leads.db"`
	DatabaseURL string `env:"DATABASE_URL"` // required when LEAD_STORE=postgres

	Pool persistence.PoolConfig
}

// OpenLeads builds the configured repository. The returned func releases it.
func OpenLeads(ctx context.Context, cfg LeadStoreConfig) (contactrepo.Repository, func(), error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "memory":
		return contactrepo.NewMemoryRepository(), func() {}, nil
	case "", "sqlite":
		store, err := persistence.OpenSQLiteLeadStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return contactrepo.NewSQLiteRepository(store), func() { _ = store.Close() }, nil
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required when LEAD_STORE=postgres")
		}
		poolCfg := cfg.Pool
		poolCfg.ConnString = cfg.DatabaseURL
		pool, err := persistence.NewPool(ctx, poolCfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := persistence.NewLeadStore(ctx, pool)
		if err != nil {
			persistence.ClosePool(pool)
			return nil, nil, err
		}
		return contactrepo.NewPostgresRepository(store), func() { persistence.ClosePool(pool) }, nil
	default:
		return nil, nil, fmt.Errorf("invalid LEAD_STORE %q (use memory, sqlite or postgres)", cfg.Kind)
	}
}

// AssetConfig selects where images are served from.
type AssetConfig struct {
	Backend  string `env:"ASSET_BACKEND" envDefault:"local"` // local | gcs
	LocalDir string `env:"ASSET_LOCAL_DIR" envDefault:"./public"`
	Bucket   string `env:"ASSET_BUCKET"` // required when ASSET_BACKEND=gcs
	Prefix   string `env:"ASSET_PREFIX"`
}

// OpenAssets builds the configured backend. The returned func releases it.
func OpenAssets(ctx context.Context, cfg AssetConfig) (assets.Backend, func(), error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "local":
		if strings.TrimSpace(cfg.LocalDir) == "" {
			return nil, nil, fmt.Errorf("ASSET_LOCAL_DIR is required when ASSET_BACKEND=local")
		}
		return assets.NewLocalBackend(cfg.LocalDir), func() {}, nil
	case "gcs":
		if strings.TrimSpace(cfg.Bucket) == "" {
			return nil, nil, fmt.Errorf("ASSET_BUCKET is required when ASSET_BACKEND=gcs")
		}
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("init gcs client: %w", err)
		}
		return assets.NewGCSBackend(client, cfg.Bucket, cfg.Prefix), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("invalid ASSET_BACKEND %q (use local or gcs)", cfg.Backend)
	}
}
