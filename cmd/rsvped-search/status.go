package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store health and catalog size",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	report := a.health.Check(cmd.Context())
	cmd.Printf("Status:     %s\n", report.Status)
	for name, res := range report.Checks {
		cmd.Printf("  %-9s %s\n", name, res)
	}

	n, err := a.counter.CountCandidates(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Candidates: %d\n", n)

	if a.meta != nil {
		at, err := a.meta.LastImport(cmd.Context())
		if err != nil {
			return err
		}
		if at.IsZero() {
			cmd.Println("Last import: never")
		} else {
			cmd.Printf("Last import: %s\n", at.Format("2006-01-02 15:04:05 MST"))
		}
	}
	return nil
}
