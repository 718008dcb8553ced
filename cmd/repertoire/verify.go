package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/repertoire/internal/index"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the internal consistency of a snapshot",
	Long: `Load a snapshot and check that its counters are consistent.

This command checks, for every position:
- The per-move counts sum to the position total
- The destination-square counts sum to the position total
- Player and opponent counts never exceed the total
- Each role's per-color counts sum to the role count`,
	RunE: runVerify,
}

var verifyName string

func init() {
	verifyCmd.Flags().StringVar(&verifyName, "name", "", "snapshot name to verify (required)")
	verifyCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if err := requireData(); err != nil {
		return err
	}

	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Load(context.Background(), verifyName); err != nil {
		return err
	}

	positions := client.Positions()
	fmt.Printf("Verifying %d positions...\n", len(positions))

	var errCount int
	for i, position := range positions {
		if verbose {
			fmt.Printf("  [%d/%d] %s\n", i+1, len(positions), position)
		}
		bucket := client.Bucket(position)
		if bucket == nil {
			fmt.Printf("  ERROR: %s: listed but missing\n", position)
			errCount++
			continue
		}
		for _, problem := range checkBucket(bucket) {
			fmt.Printf("  ERROR: %s: %s\n", position, problem)
			errCount++
		}
	}

	if errCount > 0 {
		return fmt.Errorf("%d consistency errors found", errCount)
	}
	fmt.Println("Snapshot verified successfully.")
	return nil
}

func checkBucket(b *index.Bucket) []string {
	var problems []string

	if sum := b.Moves.Sum(); sum != b.Total {
		problems = append(problems, fmt.Sprintf("move counts sum to %d, total is %d", sum, b.Total))
	}
	if sum := b.To.Sum(); sum != b.Total {
		problems = append(problems, fmt.Sprintf("destination counts sum to %d, total is %d", sum, b.Total))
	}
	if sum := b.From.Sum(); sum != b.Total {
		problems = append(problems, fmt.Sprintf("source counts sum to %d, total is %d", sum, b.Total))
	}
	if b.User.Total+b.Opp.Total > b.Total {
		problems = append(problems, fmt.Sprintf("role counts %d+%d exceed total %d", b.User.Total, b.Opp.Total, b.Total))
	}

	roles := []struct {
		name         string
		whole        index.RoleCounts
		white, black index.RoleCounts
	}{
		{"player", b.User, b.UserWhite, b.UserBlack},
		{"opponent", b.Opp, b.OppWhite, b.OppBlack},
	}
	for _, r := range roles {
		if r.white.Total+r.black.Total != r.whole.Total {
			problems = append(problems, fmt.Sprintf("%s color counts %d+%d do not sum to %d",
				r.name, r.white.Total, r.black.Total, r.whole.Total))
		}
		if sum := r.whole.Moves.Sum(); sum != r.whole.Total {
			problems = append(problems, fmt.Sprintf("%s move counts sum to %d, role total is %d", r.name, sum, r.whole.Total))
		}
	}

	if b.Results.Total() > b.Total {
		problems = append(problems, fmt.Sprintf("outcome count %d exceeds move total %d", b.Results.Total(), b.Total))
	}

	return problems
}
