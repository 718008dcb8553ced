package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/discochess/repertoire/internal/index"
	"github.com/discochess/repertoire/internal/snapshot"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest FILE",
	Short: "Build a move index from a local PGN archive",
	Long: `Read a multi-game PGN file and build a position-keyed move index
from it, attributed to the given identity.

Games the identity did not play in are skipped; unparseable records
are skipped without aborting the rest of the file.

Examples:
  # Ingest an exported archive
  repertoire ingest games.pgn --identity magnus

  # Merge into an existing snapshot
  repertoire ingest more-games.pgn --identity magnus --append`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var (
	ingestIdentity string
	ingestName     string
	ingestAppend   bool
)

func init() {
	ingestCmd.Flags().StringVar(&ingestIdentity, "identity", "", "player name whose games to attribute (required)")
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "snapshot name (defaults to the identity)")
	ingestCmd.Flags().BoolVar(&ingestAppend, "append", false, "load the existing snapshot first and merge into it")
	ingestCmd.MarkFlagRequired("identity")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]
	name := ingestName
	if name == "" {
		name = ingestIdentity
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening PGN file: %w", err)
	}
	defer f.Close()

	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	if ingestAppend {
		if err := client.Load(ctx, name); err != nil {
			return fmt.Errorf("loading existing snapshot: %w", err)
		}
		if verbose {
			fmt.Printf("Loaded snapshot %q with %d positions\n", name, client.Len())
		}
	}

	start := time.Now()
	games, err := client.IngestPGN(f, ingestIdentity)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d games, %d positions in %s\n", games, client.Len(), time.Since(start).Round(time.Millisecond))

	if err := client.Save(ctx, name); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	manifest := &snapshot.Manifest{
		FormatVersion: index.FormatVersion,
		Identity:      ingestIdentity,
		Games:         games,
		Positions:     client.Len(),
		BuiltAt:       time.Now().UTC(),
		Source:        strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Compression:   "zstd",
	}
	if err := snapshot.Write(dataDir, manifest); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	fmt.Printf("Snapshot saved to %s\n", dataDir)
	return nil
}
