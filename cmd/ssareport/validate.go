package main

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/sourcegraph/conc/pool"
	"github.com/urfave/cli/v2"

	"ssareport/internal/analyzer"
	"ssareport/internal/loader"
	"ssareport/internal/output"
	"ssareport/internal/progress"
	"ssareport/pkg/models"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Data-quality checks over one or more export files",
		ArgsUsage: "<export-file>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "details",
				Usage: "List every issue instead of per-file summaries",
			},
		},
		Action: runValidate,
	}
}

type fileReport struct {
	report *models.QualityReport
	err    error
}

func runValidate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := setupLogger(c, cfg)

	if c.Args().Len() < 1 {
		return fmt.Errorf("missing export file arguments")
	}
	paths := c.Args().Slice()

	tracker := progress.NewTracker("Validating exports...", len(paths))

	// One loader and analyzer pair per file: each worker gets its own
	// snapshot, nothing is shared.
	p := pool.NewWithResults[fileReport]().WithMaxGoroutines(runtime.NumCPU())
	for _, path := range paths {
		path := path
		p.Go(func() fileReport {
			defer tracker.Tick()

			l := loader.New(cfg, loader.WithLogger(log))
			orders, err := l.Load(path)
			if err != nil {
				return fileReport{err: fmt.Errorf("%s: %w", path, err)}
			}

			quality := analyzer.NewQualityAnalyzer(newWeekAnalyzer(cfg, log))
			report := quality.Check(orders)
			report.File = path
			return fileReport{report: report}
		})
	}
	results := p.Wait()
	tracker.Finish()

	var reports []*models.QualityReport
	var failures []error
	for _, r := range results {
		if r.err != nil {
			failures = append(failures, r.err)
			continue
		}
		reports = append(reports, r.report)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].File < reports[j].File
	})

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := outputReports(formatter, reports, c.Bool("details")); err != nil {
		return err
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d files failed to load (first: %v)", len(failures), len(paths), failures[0])
	}
	return nil
}

func outputReports(formatter *output.Formatter, reports []*models.QualityReport, details bool) error {
	if details {
		var rows [][]string
		for _, report := range reports {
			for _, issue := range report.Issues {
				rows = append(rows, []string{
					report.File,
					itoa(issue.Row),
					issue.Number,
					issue.Field,
					issue.Kind,
					issue.Detail,
				})
			}
		}
		table := output.NewTable(
			"Data-Quality Issues",
			[]string{"File", "Row", "Order", "Field", "Kind", "Detail"},
			rows,
			[]string{fmt.Sprintf("Issues: %d", len(rows))},
			reports,
		)
		return formatter.Output(table)
	}

	var rows [][]string
	totalIssues := 0
	for _, report := range reports {
		totalIssues += len(report.Issues)
		rows = append(rows, []string{
			report.File,
			itoa(report.TotalRecords),
			itoa(len(report.Issues)),
			itoa(len(report.Duplicates)),
			percentStr(report.ErrorRate),
		})
	}
	table := output.NewTable(
		"Data-Quality Summary",
		[]string{"File", "Orders", "Issues", "Duplicate Groups", "Rows w/ Issues"},
		rows,
		[]string{fmt.Sprintf("Files: %d  Issues: %d", len(reports), totalIssues)},
		reports,
	)
	return formatter.Output(table)
}
