// Package repertoire builds a queryable statistical index of chess
// positions from a player's games: for every position ever reached, how
// often each move was played, by whom, with which color, and with what
// eventual outcome.
//
// Example usage:
//
//	client, err := repertoire.New(
//	    repertoire.WithFetcher(fetch.NewClient()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if _, err := client.Build(ctx, "alice", fetch.Query{Max: 100}); err != nil {
//	    log.Fatal(err)
//	}
//	for _, mc := range client.TopMoves("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 5) {
//	    fmt.Printf("%s: %d\n", mc.Move, mc.Count)
//	}
package repertoire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/discochess/repertoire/internal/fetch"
	"github.com/discochess/repertoire/internal/index"
	"github.com/discochess/repertoire/internal/stats"
	"github.com/discochess/repertoire/internal/store"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrClosed indicates the client has been closed.
	ErrClosed = errors.New("repertoire: client closed")

	// ErrNoStore indicates no store was configured for a persistence
	// operation.
	ErrNoStore = errors.New("repertoire: no store configured")

	// ErrNoFetcher indicates no game fetcher was configured for Build.
	ErrNoFetcher = errors.New("repertoire: no fetcher configured")

	// ErrNoSnapshot indicates no usable snapshot is available; the
	// caller should rebuild the index from source games.
	ErrNoSnapshot = errors.New("repertoire: no snapshot available")
)

// Client owns one move index and wires it to its collaborators: an
// optional snapshot store, an optional game fetcher, a stats collector
// and a logger.
//
// The index itself is a plain synchronous structure; a Client is NOT
// safe for concurrent mutation. Callers needing concurrent ingestion
// must serialize access externally.
type Client struct {
	index   *index.Index
	store   store.Store
	fetcher *fetch.Client
	stats   stats.Collector
	logger  *zap.Logger
	closed  atomic.Bool
}

// New creates a new Client with the given options.
// If no options are provided, sensible defaults are used: an empty
// in-memory index with no store, no fetcher, no metrics and no logging.
func New(opts ...Option) (*Client, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	c := &Client{
		index:   index.New(),
		store:   cfg.store,
		fetcher: cfg.fetcher,
		stats:   cfg.stats,
		logger:  cfg.logger,
	}

	c.logger.Debug("client initialized",
		zap.Bool("hasStore", c.store != nil),
		zap.Bool("hasFetcher", c.fetcher != nil),
	)

	return c, nil
}

// IngestMoves replays a bare sequence of UCI moves from the standard
// starting position and records them without identity attribution.
// Replay stops at the first invalid move, keeping the valid prefix.
// Returns the number of plies indexed. Never fails.
func (c *Client) IngestMoves(moves []string) int {
	if c.closed.Load() {
		return 0
	}
	n := c.index.IngestMoves(moves)
	c.stats.IncCounter(stats.MetricMovesIndexed, int64(n))
	c.stats.SetGauge(stats.MetricPositions, int64(c.index.Len()))
	return n
}

// IngestGame ingests one PGN game record attributed to the tracked
// identity. Unparseable records and games the identity did not play in
// are skipped whole. Returns the number of plies indexed. Never fails.
func (c *Client) IngestGame(identity, record string) int {
	if c.closed.Load() {
		return 0
	}
	n := c.index.IngestGame(identity, record)
	c.noteGame(n)
	return n
}

// IngestPGN ingests every game in a multi-game PGN stream, attributed to
// the tracked identity. Each game is isolated: one bad record never
// aborts the batch or loses data aggregated from the others. Returns the
// number of games that contributed moves. A read error from r is
// reported only for the stream itself, never for individual records.
func (c *Client) IngestPGN(r io.Reader, identity string) (int, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}

	records, err := fetch.SplitGames(r)
	if err != nil {
		return 0, fmt.Errorf("reading PGN stream: %w", err)
	}

	var games int
	for _, record := range records {
		n := c.index.IngestGame(identity, record)
		c.noteGame(n)
		if n > 0 {
			games++
		}
	}
	return games, nil
}

// Build fetches games for the identity from the configured fetcher and
// ingests them. Returns the number of games that contributed moves.
func (c *Client) Build(ctx context.Context, identity string, q fetch.Query) (int, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	if c.fetcher == nil {
		return 0, ErrNoFetcher
	}

	records, err := c.fetcher.UserGames(ctx, identity, q)
	if err != nil {
		return 0, fmt.Errorf("fetching games: %w", err)
	}

	var games int
	for _, record := range records {
		n := c.index.IngestGame(identity, record)
		c.noteGame(n)
		if n > 0 {
			games++
		}
	}

	c.logger.Info("build complete",
		zap.String("identity", identity),
		zap.Int("fetched", len(records)),
		zap.Int("ingested", games),
		zap.Int("positions", c.index.Len()),
	)
	return games, nil
}

// TopMoves returns up to limit moves played from a position, sorted by
// descending count with first-observed order breaking ties. A limit of
// zero or less applies the default of 8. Unknown positions yield an
// empty list.
func (c *Client) TopMoves(position string, limit int) []MoveCount {
	c.stats.IncCounter(stats.MetricLookups, 1)
	entries := c.index.TopMoves(position, limit)
	out := make([]MoveCount, len(entries))
	for i, e := range entries {
		out[i] = MoveCount{Move: e.Move, Count: e.Count}
	}
	return out
}

// ResultStats returns the outcome counters attributed to a position;
// unknown positions yield all zeros.
func (c *Client) ResultStats(position string) ResultStats {
	c.stats.IncCounter(stats.MetricLookups, 1)
	rs := c.index.ResultStats(position)
	return ResultStats{Win: rs.Win, Loss: rs.Loss, Draw: rs.Draw, Total: rs.Total}
}

// Bucket returns a copy of the full statistics bucket for a position, or
// nil if the position has never been indexed.
func (c *Client) Bucket(position string) *index.Bucket {
	c.stats.IncCounter(stats.MetricLookups, 1)
	return c.index.Bucket(position)
}

// Positions returns every indexed position identifier.
func (c *Client) Positions() []string {
	return c.index.Positions()
}

// Len returns the number of distinct positions held.
func (c *Client) Len() int {
	return c.index.Len()
}

// Clear discards all indexed data.
func (c *Client) Clear() {
	c.index.Clear()
	c.stats.SetGauge(stats.MetricPositions, 0)
}

// Save serializes the index and writes it to the configured store under
// the given snapshot name.
func (c *Client) Save(ctx context.Context, name string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if c.store == nil {
		return ErrNoStore
	}

	data, err := c.index.Encode()
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := c.store.WriteBlob(ctx, name, data); err != nil {
		return fmt.Errorf("writing snapshot %q: %w", name, err)
	}

	c.stats.IncCounter(stats.MetricSnapshotSaves, 1)
	c.logger.Debug("snapshot saved",
		zap.String("name", name),
		zap.Int("positions", c.index.Len()),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Load replaces the index with the named snapshot from the configured
// store. Older snapshots missing optional fields load with those fields
// zeroed; a missing or structurally invalid snapshot yields an error
// wrapping ErrNoSnapshot, prompting the caller to rebuild from source.
// On error the current index is left untouched.
func (c *Client) Load(ctx context.Context, name string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if c.store == nil {
		return ErrNoStore
	}

	data, err := c.store.ReadBlob(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: snapshot %q not found", ErrNoSnapshot, name)
		}
		return fmt.Errorf("reading snapshot %q: %w", name, err)
	}

	ix, err := index.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoSnapshot, err)
	}

	c.index = ix
	c.stats.IncCounter(stats.MetricSnapshotLoads, 1)
	c.stats.SetGauge(stats.MetricPositions, int64(ix.Len()))
	c.logger.Debug("snapshot loaded",
		zap.String("name", name),
		zap.Int("positions", ix.Len()),
	)
	return nil
}

// Snapshots returns the names of all snapshots held by the configured
// store, so callers can discover what Load accepts.
func (c *Client) Snapshots(ctx context.Context) ([]string, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if c.store == nil {
		return nil, ErrNoStore
	}
	lister, ok := c.store.(store.Lister)
	if !ok {
		return nil, fmt.Errorf("store %T does not support listing snapshots", c.store)
	}
	return lister.List(ctx)
}

// Close releases all resources associated with the client.
// After Close, the client should not be used.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	if c.store != nil {
		if err := c.store.Close(); err != nil {
			return fmt.Errorf("closing store: %w", err)
		}
	}

	return nil
}

// Store returns the storage backend used by this client, if any.
func (c *Client) Store() store.Store {
	return c.store
}

// noteGame records per-game ingestion metrics.
func (c *Client) noteGame(plies int) {
	if plies == 0 {
		c.stats.IncCounter(stats.MetricGamesSkipped, 1)
		return
	}
	c.stats.IncCounter(stats.MetricGamesIngested, 1)
	c.stats.IncCounter(stats.MetricMovesIndexed, int64(plies))
	c.stats.SetGauge(stats.MetricPositions, int64(c.index.Len()))
}
