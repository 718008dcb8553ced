package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List the snapshots in the data directory",
	Long: `List the names of all snapshots saved in the data directory.
These are the names 'top', 'stats' and 'verify' accept via --name.`,
	RunE: runSnapshots,
}

func init() {
	rootCmd.AddCommand(snapshotsCmd)
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	if err := requireData(); err != nil {
		return err
	}

	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	names, err := client.Snapshots(context.Background())
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("No snapshots found in data directory.")
		fmt.Println("Run 'repertoire build' or 'repertoire ingest' to create one.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
