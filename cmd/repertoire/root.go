package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/discochess/repertoire"
	"github.com/discochess/repertoire/internal/codec/zstdcodec"
	"github.com/discochess/repertoire/internal/store/cachedstore"
	"github.com/discochess/repertoire/internal/store/cachedstore/cachestrategy/lru"
	"github.com/discochess/repertoire/internal/store/cachedstore/memory"
	"github.com/discochess/repertoire/internal/store/diskstore"
)

var (
	// Global flags.
	dataDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "repertoire",
	Short: "Per-player move statistics from chess game archives",
	Long: `Repertoire builds a position-keyed move index from a player's games
and answers questions about what was played from any position: most
common moves, who played them, and how the games ended.

Examples:
  # Build an index from a player's Lichess games
  repertoire build magnus --max 500

  # Ingest a local PGN archive
  repertoire ingest games.pgn --identity magnus

  # Most common moves from the starting position
  repertoire top "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -" --name magnus

  # Outcome statistics for a position
  repertoire stats "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -" --name magnus`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "./data", "directory holding snapshot data")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// openClient opens a disk-backed client over the data directory, with a
// small blob cache in front of it.
func openClient(opts ...repertoire.Option) (*repertoire.Client, error) {
	baseStore, err := diskstore.New(dataDir, zstdcodec.New())
	if err != nil {
		return nil, fmt.Errorf("opening data directory: %w", err)
	}

	lruStrategy, err := lru.New(16)
	if err != nil {
		return nil, fmt.Errorf("creating LRU strategy: %w", err)
	}
	st := cachedstore.New(baseStore, memory.New(lruStrategy, nil))

	opts = append([]repertoire.Option{repertoire.WithStore(st)}, opts...)
	client, err := repertoire.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	return client, nil
}

// requireData fails with a hint when the data directory has not been
// created yet.
func requireData() error {
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		return fmt.Errorf("data directory %q does not exist; run 'repertoire build' first", dataDir)
	}
	return nil
}
