package main

import (
	"os"

	"github.com/halide-labs/dehancer-cli/pkg/cachedir"
	"github.com/halide-labs/dehancer-cli/pkg/dehancer"
	"github.com/halide-labs/dehancer-cli/pkg/diskcache"
)

// app wires the cache and the API client together for the commands.
type app struct {
	cache  *diskcache.Store
	client *dehancer.Client
}

// newApp builds the app: .env first so DEHANCER_BASE_URL can come from
// there, then the per-user cache, then the client (which restores any auth
// session from the cache).
func newApp() (*app, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	dir, err := cachedir.Default()
	if err != nil {
		return nil, err
	}

	cache := diskcache.New(dir)

	baseURL := os.Getenv("DEHANCER_BASE_URL")
	if baseURL == "" {
		baseURL = dehancer.DefaultBaseURL
	}

	return &app{
		cache:  cache,
		client: dehancer.New(baseURL, cache, nil),
	}, nil
}
