package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain"
	domcat "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/catalog"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/entity"
	cataloguc "github.com/SrivastavaSrijan/rsvped-sub000/internal/usecase/catalog"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import <catalog.yaml>",
	Short: "Load events and communities into the Redis candidate store",
	Long: `Reads a YAML catalog with top-level "communities" and "events" lists,
validates every record and writes the valid ones. Invalid records are reported
and skipped. With --replace the namespace is wiped first.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "delete existing catalog data before importing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(filepath.Clean(args[0]))
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	doc, err := cataloguc.Parse(f)
	if err != nil {
		return err
	}

	a, err := buildApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	if a.catalog == nil {
		return fmt.Errorf("%w: driver %q", domain.ErrImportNotSupported, cfg.Database.Driver)
	}

	summary, err := a.catalog.Import(cmd.Context(), doc, cataloguc.Options{Replace: importReplace})
	if err != nil {
		return err
	}

	printSummary(cmd, summary)
	if len(summary.Rejected()) > 0 {
		return errors.New("some records were rejected")
	}
	return nil
}

func printSummary(cmd *cobra.Command, s domcat.Summary) {
	if s.Removed > 0 {
		cmd.Printf("Removed %d existing keys\n", s.Removed)
	}
	for _, kind := range []entity.Kind{entity.Community, entity.Event} {
		cmd.Printf("%-10s imported=%d rejected=%d\n", kind,
			s.Count(kind, domcat.StatusImported), s.Count(kind, domcat.StatusRejected))
	}
	for _, o := range s.Rejected() {
		id := o.ID()
		if id == "" {
			id = "(no id)"
		}
		cmd.Printf("  %s #%d %s: %v\n", o.Kind(), o.Index(), id, o.Err())
	}
}
