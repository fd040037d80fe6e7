package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domcomm "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	domevent "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/entity"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/request"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/result"
)

var (
	queryPage     int
	querySize     int
	queryLocation string
	queryJSON     bool
	queryExplain  bool
)

var queryCmd = &cobra.Command{
	Use:   "query <events|communities|suggest> <text...>",
	Short: "Run a one-off ranked search against the configured store",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryPage, "page", "p", 1, "page number")
	queryCmd.Flags().IntVarP(&querySize, "size", "n", request.DefaultPageSize, "page size (suggestion limit for suggest)")
	queryCmd.Flags().StringVar(&queryLocation, "location", "", "caller location ID for proximity boost")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	queryCmd.Flags().BoolVar(&queryExplain, "explain", false, "print match evidence under each hit")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	text := strings.Join(args[1:], " ")

	a, err := buildApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	if args[0] == "suggest" {
		q, err := request.NewAutocomplete(text, querySize)
		if err != nil {
			return err
		}
		suggestions, err := a.search.Autocomplete(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("autocomplete failed: %w", err)
		}
		if queryJSON {
			return outputJSON(cmd, suggestions)
		}
		for i, s := range suggestions {
			cmd.Printf("  [%d] %-9s %s (%.0f)\n", i+1, s.Type, s.Title, s.Score)
		}
		return nil
	}

	kind, ok := entity.Parse(args[0])
	if !ok {
		return fmt.Errorf("unknown entity %q: want events, communities or suggest", args[0])
	}
	q, err := request.NewSearchWithMax(text, queryPage, querySize, queryLocation, cfg.Search.MaxPageSize)
	if err != nil {
		return err
	}

	switch kind {
	case entity.Event:
		page, err := a.search.SearchEvents(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if queryJSON {
			return outputJSON(cmd, page)
		}
		printPage(cmd, page, func(e domevent.Event) string {
			return fmt.Sprintf("%s  %s", e.StartDate().Format("2006-01-02"), e.Title())
		})
	case entity.Community:
		page, err := a.search.SearchCommunities(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if queryJSON {
			return outputJSON(cmd, page)
		}
		printPage(cmd, page, func(c domcomm.Community) string {
			return fmt.Sprintf("%s  (%d members)", c.Name(), c.MemberCount())
		})
	}
	return nil
}

func printPage[T any](cmd *cobra.Command, page result.Page[T], label func(T) string) {
	if len(page.Data) == 0 {
		cmd.Println("No results found.")
		return
	}
	for i, r := range page.Data {
		cmd.Printf("  [%d] %s (%.1f)\n", i+1, label(r.Item), r.Score)
		if queryExplain {
			printMatches(cmd, r.Matches)
		}
	}
	p := page.Pagination
	cmd.Printf("\nPage %d of %d, %d relevant in sample\n", p.Page, p.TotalPages, p.Total)
}

func printMatches(cmd *cobra.Command, matches []match.Info) {
	for _, m := range matches {
		kind := "text"
		if !m.Type.Textual() {
			kind = "boost"
		}
		cmd.Printf("        %-5s %-16s %-8s %6.1f  %s\n", kind, m.Field, m.Type, m.Score, m.Reason)
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
