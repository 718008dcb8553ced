// Package diskrepertoirefx provides an fx module for a disk-backed repertoire client.
package diskrepertoirefx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/repertoire"
	"github.com/discochess/repertoire/internal/codec/zstdcodec"
	"github.com/discochess/repertoire/internal/fetch"
	"github.com/discochess/repertoire/internal/stats"
	"github.com/discochess/repertoire/internal/stats/logger"
	"github.com/discochess/repertoire/internal/store/cachedstore"
	"github.com/discochess/repertoire/internal/store/cachedstore/cachestrategy/lru"
	"github.com/discochess/repertoire/internal/store/cachedstore/memory"
	"github.com/discochess/repertoire/internal/store/diskstore"
)

// Config holds configuration for the disk-backed repertoire client.
type Config struct {
	// DataDir is the directory holding snapshot data.
	DataDir string

	// CacheSize is the number of snapshot blobs to cache in memory.
	// Default is 16.
	CacheSize int

	// ExportURL overrides the game export API base URL. Empty means
	// the public Lichess endpoint.
	ExportURL string
}

// Module provides a disk-backed repertoire client.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("diskrepertoire",
	fx.Provide(
		newStatsCollector,
		newClient,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("repertoire.stats"))
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *repertoire.Client
}

func newClient(p Params) (Result, error) {
	cacheSize := p.Config.CacheSize
	if cacheSize <= 0 {
		cacheSize = 16
	}

	baseStore, err := diskstore.New(p.Config.DataDir, zstdcodec.New())
	if err != nil {
		return Result{}, err
	}

	lruStrategy, err := lru.New(cacheSize)
	if err != nil {
		return Result{}, err
	}

	st := cachedstore.New(baseStore, memory.New(lruStrategy, p.Collector))

	var fetchOpts []fetch.Option
	if p.Config.ExportURL != "" {
		fetchOpts = append(fetchOpts, fetch.WithBaseURL(p.Config.ExportURL))
	}

	client, err := repertoire.New(
		repertoire.WithStore(st),
		repertoire.WithFetcher(fetch.NewClient(fetchOpts...)),
		repertoire.WithStats(p.Collector),
		repertoire.WithLogger(p.Logger.Named("repertoire")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return Result{Client: client}, nil
}
