package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/repertoire"
	"github.com/discochess/repertoire/internal/analysis"
	"github.com/discochess/repertoire/internal/fen"
	"github.com/discochess/repertoire/internal/snapshot"
)

var statsCmd = &cobra.Command{
	Use:   "stats [FEN]",
	Short: "Show outcome and move statistics for a position",
	Long: `Show how games that reached a position ended for the tracked player,
plus a summary of how varied the move choice from that position is.

With no FEN argument, shows snapshot-level statistics instead.

Examples:
  # Snapshot overview
  repertoire stats --name magnus

  # One position
  repertoire stats "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -" --name magnus`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

var statsName string

func init() {
	statsCmd.Flags().StringVar(&statsName, "name", "", "snapshot name to query (required)")
	statsCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := requireData(); err != nil {
		return err
	}

	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Load(context.Background(), statsName); err != nil {
		return err
	}

	if len(args) == 0 {
		return printSnapshotStats(client)
	}

	position, err := fen.Canonical(args[0])
	if err != nil {
		return fmt.Errorf("invalid FEN: %w", err)
	}
	return printPositionStats(client, position)
}

func printSnapshotStats(client *repertoire.Client) error {
	fmt.Printf("Snapshot:  %s\n", statsName)
	fmt.Printf("Positions: %d\n", client.Len())

	if m, err := snapshot.Read(dataDir); err == nil {
		fmt.Printf("Identity:  %s\n", m.Identity)
		fmt.Printf("Games:     %d\n", m.Games)
		fmt.Printf("Built:     %s\n", m.BuiltAt.Format("2006-01-02 15:04 MST"))
		fmt.Printf("Source:    %s\n", m.Source)
	}
	return nil
}

func printPositionStats(client *repertoire.Client, position string) error {
	bucket := client.Bucket(position)
	if bucket == nil {
		fmt.Println("Position not found in snapshot.")
		return nil
	}

	fmt.Printf("FEN:    %s\n", position)
	fmt.Printf("Moves:  %d plies (%d by tracked player, %d by opponents)\n",
		bucket.Total, bucket.User.Total, bucket.Opp.Total)

	rs := client.ResultStats(position)
	if rs.Total > 0 {
		score := analysis.OutcomeScore(rs.Win, rs.Loss, rs.Draw)
		fmt.Printf("Score:  %s over %d games (%.1f%% scoring, 95%% CI %.1f%%-%.1f%%)\n",
			rs.Score(), rs.Total, 100*score.Mean, 100*score.Low, 100*score.High)
	}

	counts := make([]int, 0, bucket.Moves.Len())
	for _, p := range bucket.Moves.Pairs() {
		counts = append(counts, p.Count)
	}
	spread := analysis.SpreadFromCounts(counts)
	if spread.Moves > 1 {
		fmt.Printf("Spread: %d distinct moves, top choice %.1f%%, entropy %.2f bits\n",
			spread.Moves, 100*spread.Top, spread.Entropy)
	}
	return nil
}
