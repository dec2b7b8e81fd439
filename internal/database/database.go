// Package database opens the document store selected by the connection URL.
package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fkhayef/blog/internal/config"
	"github.com/fkhayef/blog/internal/docstore"
	"github.com/fkhayef/blog/internal/docstore/memstore"
	"github.com/fkhayef/blog/internal/docstore/mongostore"
	"github.com/fkhayef/blog/internal/docstore/sqlstore"
)

// ErrNotConfigured is returned when DATABASE_URL is empty.
var ErrNotConfigured = errors.New("DATABASE_URL is not set")

// Open connects to the backend named by the URL scheme of cfg.DatabaseURL.
func Open(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	url := cfg.DatabaseURL
	if url == "" {
		return nil, ErrNotConfigured
	}

	switch scheme(url) {
	case "mongodb", "mongodb+srv":
		store, err := mongostore.Connect(ctx, url, cfg.DatabaseName)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "postgres", "postgresql":
		store, err := sqlstore.Open(ctx, sqlstore.Postgres{}, url)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "mysql":
		// go-sql-driver takes a bare DSN: user:pass@tcp(host:port)/db
		store, err := sqlstore.Open(ctx, sqlstore.MySQL{}, strings.TrimPrefix(url, "mysql://"))
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return memstore.New(cfg.DatabaseName), nil
	default:
		return nil, fmt.Errorf("unsupported database url scheme %q", scheme(url))
	}
}

// OpenOrOffline is Open that never fails: when the backend cannot be
// reached the service runs degraded on a docstore.Offline.
func OpenOrOffline(ctx context.Context, cfg *config.Config) docstore.Store {
	store, err := Open(ctx, cfg)
	if err != nil {
		log.Printf("Database unavailable, running degraded: %v", err)
		return &docstore.Offline{Reason: err}
	}
	return store
}

func scheme(url string) string {
	i := strings.Index(url, "://")
	if i < 0 {
		return ""
	}
	return strings.ToLower(url[:i])
}
