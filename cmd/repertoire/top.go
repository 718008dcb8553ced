package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/discochess/repertoire"
	"github.com/discochess/repertoire/internal/fen"
)

var topCmd = &cobra.Command{
	Use:   "top [FEN]",
	Short: "Show the most common moves from a position",
	Long: `Show the most common moves played from a chess position given in FEN
notation, most frequent first.

The FEN string should include at least the piece placement and side to
move. Castling rights and en passant square are optional.

Examples:
  # Starting position
  repertoire top "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -" --name magnus

  # After 1.e4
  repertoire top "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3" --name magnus --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runTop,
}

var (
	topName    string
	topLimit   int
	outputJSON bool
	showTiming bool
)

func init() {
	topCmd.Flags().StringVar(&topName, "name", "", "snapshot name to query (required)")
	topCmd.Flags().IntVar(&topLimit, "limit", 0, "maximum number of moves to show (0 = default)")
	topCmd.Flags().BoolVar(&outputJSON, "json", false, "output result as JSON")
	topCmd.Flags().BoolVar(&showTiming, "timing", false, "show load and query timing")
	topCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(topCmd)
}

func runTop(cmd *cobra.Command, args []string) error {
	position, err := fen.Canonical(args[0])
	if err != nil {
		return fmt.Errorf("invalid FEN: %w", err)
	}

	if err := requireData(); err != nil {
		return err
	}

	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	start := time.Now()
	if err := client.Load(context.Background(), topName); err != nil {
		return err
	}

	moves := client.TopMoves(position, topLimit)
	elapsed := time.Since(start)

	if outputJSON {
		printTopJSON(position, moves, elapsed)
	} else {
		printTopText(position, moves, elapsed)
	}
	return nil
}

func printTopText(position string, moves []repertoire.MoveCount, elapsed time.Duration) {
	fmt.Printf("FEN:   %s\n", position)
	if len(moves) == 0 {
		fmt.Println("No moves recorded from this position.")
		return
	}
	total := 0
	for _, mc := range moves {
		total += mc.Count
	}
	for i, mc := range moves {
		fmt.Printf("%2d. %-6s %5d  (%.1f%%)\n", i+1, mc.Move, mc.Count, 100*float64(mc.Count)/float64(total))
	}
	if showTiming {
		fmt.Printf("Time:  %s\n", elapsed)
	}
}

func printTopJSON(position string, moves []repertoire.MoveCount, elapsed time.Duration) {
	fmt.Printf(`{"fen":%q,"moves":[`, position)
	for i, mc := range moves {
		if i > 0 {
			fmt.Print(",")
		}
		fmt.Printf(`{"move":%q,"count":%d}`, mc.Move, mc.Count)
	}
	fmt.Print("]")
	if showTiming {
		fmt.Printf(`,"elapsed_ms":%d`, elapsed.Milliseconds())
	}
	fmt.Println("}")
}
