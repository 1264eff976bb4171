package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/seo-optimizer/geochecker/analyzer"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze one page and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.newAnalyzer().Analyze(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("analyze %s: %w", args[0], err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			renderReport(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON result")
	return cmd
}

func writeJSON(w io.Writer, result *analyzer.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// renderReport prints the scores, both issue lists and the priority
// matrix as tables.
func renderReport(w io.Writer, r *analyzer.Result) {
	scores := newTable(w, "Scores")
	scores.AppendHeader(table.Row{"Check", "Score"})
	scores.AppendRows([]table.Row{
		{"SEO", r.Score},
		{"GEO", r.GeoScore},
	})
	scores.Render()

	signals := newTable(w, "Page")
	signals.AppendHeader(table.Row{"Signal", "Value"})
	signals.AppendRows([]table.Row{
		{"Title", fmt.Sprintf("%s (%d)", r.Title, r.TitleLength)},
		{"Description length", r.DescriptionLength},
		{"H1 / H2", fmt.Sprintf("%d / %d", r.H1Count, r.H2Count)},
		{"Images without alt", fmt.Sprintf("%d of %d", r.ImagesWithoutAlt, r.TotalImages)},
		{"Readability", r.GeoMetrics.ReadabilityScore},
		{"Content-to-code ratio", r.GeoMetrics.ContentToCodeRatio},
		{"Schemas", fmt.Sprint(r.GeoMetrics.StructuredData.Schemas)},
	})
	signals.Render()

	renderIssues(w, "SEO issues", r.Issues)
	renderIssues(w, "GEO issues", r.GeoIssues)

	if len(r.Priorities) == 0 {
		return
	}
	matrix := newTable(w, "Priorities")
	matrix.AppendHeader(table.Row{"Quadrant", "Source", "Issue"})
	for _, g := range r.Priorities {
		for _, i := range g.Issues {
			matrix.AppendRow(table.Row{g.Quadrant, i.Source, i.Title})
		}
	}
	matrix.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: true}})
	matrix.Render()
}

func renderIssues(w io.Writer, title string, issues []analyzer.Issue) {
	if len(issues) == 0 {
		return
	}
	t := newTable(w, title)
	t.AppendHeader(table.Row{"Issue", "Impact", "Effort"})
	for _, i := range issues {
		t.AppendRow(table.Row{i.Title, i.Impact, i.Effort})
	}
	t.Render()
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.Style().Title.Align = text.AlignCenter
	return t
}
