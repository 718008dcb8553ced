package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/discochess/repertoire"
	"github.com/discochess/repertoire/internal/fetch"
	"github.com/discochess/repertoire/internal/index"
	"github.com/discochess/repertoire/internal/snapshot"
)

var buildCmd = &cobra.Command{
	Use:   "build USERNAME",
	Short: "Build a move index from a player's online games",
	Long: `Download a player's games from the Lichess export API and build a
position-keyed move index from them, attributed to that player.

The index is saved as a compressed snapshot in the data directory,
named after the player unless --name overrides it.

Examples:
  # Index the last 500 rated blitz games
  repertoire build magnus --max 500 --perf blitz --rated

  # Index everything since a date
  repertoire build magnus --since 2024-01-01

  # Use a self-hosted export endpoint
  repertoire build magnus --export-url https://lichess.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

var (
	buildName  string
	buildMax   int
	buildSince string
	buildUntil string
	buildPerf  string
	buildRated bool
	exportURL  string
)

func init() {
	buildCmd.Flags().StringVar(&buildName, "name", "", "snapshot name (defaults to the username)")
	buildCmd.Flags().IntVar(&buildMax, "max", 0, "maximum number of games to download (0 = no limit)")
	buildCmd.Flags().StringVar(&buildSince, "since", "", "only games ending after this date (YYYY-MM-DD)")
	buildCmd.Flags().StringVar(&buildUntil, "until", "", "only games ending before this date (YYYY-MM-DD)")
	buildCmd.Flags().StringVar(&buildPerf, "perf", "", "restrict to one time control: bullet, blitz, rapid, classical, correspondence")
	buildCmd.Flags().BoolVar(&buildRated, "rated", false, "restrict to rated games")
	buildCmd.Flags().StringVar(&exportURL, "export-url", "", "game export API base URL (default: lichess.org)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	username := args[0]
	name := buildName
	if name == "" {
		name = username
	}

	query := fetch.Query{Max: buildMax, Perf: buildPerf, RatedOnly: buildRated}
	var err error
	if query.Since, err = parseDateFlag(buildSince); err != nil {
		return err
	}
	if query.Until, err = parseDateFlag(buildUntil); err != nil {
		return err
	}

	var fetchOpts []fetch.Option
	if exportURL != "" {
		fetchOpts = append(fetchOpts, fetch.WithBaseURL(exportURL))
	}

	client, err := openClient(repertoire.WithFetcher(fetch.NewClient(fetchOpts...)))
	if err != nil {
		return err
	}
	defer client.Close()

	// Handle interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cleaning up...")
		cancel()
	}()

	fmt.Printf("Building repertoire index\n")
	fmt.Printf("  Player:   %s\n", username)
	fmt.Printf("  Snapshot: %s\n", name)
	if buildMax > 0 {
		fmt.Printf("  Max:      %d games\n", buildMax)
	}
	fmt.Println()

	start := time.Now()
	games, err := client.Build(ctx, username, query)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d games, %d positions in %s\n", games, client.Len(), time.Since(start).Round(time.Millisecond))

	if err := client.Save(ctx, name); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	manifest := &snapshot.Manifest{
		FormatVersion: index.FormatVersion,
		Identity:      username,
		Games:         games,
		Positions:     client.Len(),
		BuiltAt:       time.Now().UTC(),
		Source:        "lichess",
		Compression:   "zstd",
	}
	if err := snapshot.Write(dataDir, manifest); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	fmt.Printf("Snapshot saved to %s\n", dataDir)
	return nil
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
