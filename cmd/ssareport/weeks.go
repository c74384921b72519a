package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"ssareport/internal/analyzer"
	"ssareport/internal/output"
)

func weeksCmd() *cli.Command {
	return &cli.Command{
		Name:      "weeks",
		Aliases:   []string{"w"},
		Usage:     "Aggregate orders per ISO week, broken down by priority",
		ArgsUsage: "<export-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "field",
				Value: "planned",
				Usage: "Week field to group by: planned or registration",
			},
		},
		Action: runWeeks,
	}
}

func runWeeks(c *cli.Context) error {
	orders, cfg, log, err := loadOrders(c)
	if err != nil {
		return err
	}

	weeks := newWeekAnalyzer(cfg, log)
	field := analyzer.ParseWeekField(c.String("field"))
	analysis := weeks.AggregateByWeek(orders, field)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(analysis.Buckets) == 0 && formatter.Format() == output.FormatText {
		color.Yellow("No valid week data available (%d orders, %d without a parsable %s week)",
			analysis.TotalRecords, analysis.Unparsed, field)
		return nil
	}

	priorities := analysis.Priorities()
	headers := append([]string{"Year-Week"}, priorities...)
	headers = append(headers, "Total")

	var rows [][]string
	for _, bucket := range analysis.Buckets {
		row := []string{bucket.YearWeek}
		for _, p := range priorities {
			row = append(row, itoa(bucket.ByPriority[p]))
		}
		row = append(row, itoa(bucket.Total))
		rows = append(rows, row)
	}

	title := "Orders per Planned Week"
	if field == analyzer.WeekFieldRegistration {
		title = "Orders per Registration Week"
	}

	table := output.NewTable(
		title,
		headers,
		rows,
		[]string{
			fmt.Sprintf("Orders: %d", analysis.TotalRecords),
			fmt.Sprintf("Assigned: %d", analysis.AssignedTotal()),
			fmt.Sprintf("Unparsed: %d", analysis.Unparsed),
			fmt.Sprintf("Current week: %s", analysis.CurrentWeek),
		},
		analysis,
	)
	return formatter.Output(table)
}

func distributionCmd() *cli.Command {
	return &cli.Command{
		Name:      "distribution",
		Aliases:   []string{"dist"},
		Usage:     "Cumulative weekly distribution with data-quality indicator",
		ArgsUsage: "<export-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "field",
				Value: "planned",
				Usage: "Week field to group by: planned or registration",
			},
		},
		Action: runDistribution,
	}
}

func runDistribution(c *cli.Context) error {
	orders, cfg, log, err := loadOrders(c)
	if err != nil {
		return err
	}

	weeks := newWeekAnalyzer(cfg, log)
	field := analyzer.ParseWeekField(c.String("field"))
	dist := weeks.DistributionSummary(weeks.AggregateByWeek(orders, field))

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(dist.Entries) == 0 && formatter.Format() == output.FormatText {
		color.Yellow("No valid week data available (%d orders, none assignable to a week)", dist.TotalRecords)
		return nil
	}

	var rows [][]string
	for _, entry := range dist.Entries {
		rows = append(rows, []string{
			entry.YearWeek,
			itoa(entry.Count),
			percentStr(entry.CumulativePercent),
		})
	}

	table := output.NewTable(
		"Weekly Distribution",
		[]string{"Year-Week", "Orders", "Cumulative"},
		rows,
		[]string{
			fmt.Sprintf("Orders: %d", dist.TotalRecords),
			fmt.Sprintf("Unassigned: %d (%s)", dist.Unassigned.Count, percentStr(dist.Unassigned.Percent)),
		},
		dist,
	)
	return formatter.Output(table)
}

func ageCmd() *cli.Command {
	return &cli.Command{
		Name:      "age",
		Usage:     "Weeks-in-state ages since registration",
		ArgsUsage: "<export-file>",
		Action:    runAge,
	}
}

func runAge(c *cli.Context) error {
	orders, cfg, log, err := loadOrders(c)
	if err != nil {
		return err
	}

	weeks := newWeekAnalyzer(cfg, log)
	summary := weeks.AgeSummary(orders)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if summary.Valid == 0 && formatter.Format() == output.FormatText {
		color.Yellow("No valid week data available (%d orders without a parsable registration week)", summary.Invalid)
		return nil
	}

	var rows [][]string
	for _, bucket := range summary.Histogram {
		rows = append(rows, []string{bucket.Label, itoa(bucket.Count)})
	}

	table := output.NewTable(
		"Order Age (Weeks in State)",
		[]string{"Age", "Orders"},
		rows,
		[]string{
			fmt.Sprintf("Valid: %d  Invalid: %d", summary.Valid, summary.Invalid),
			fmt.Sprintf("Mean: %.1f  Median: %.0f  P90: %.0f  Max: %d",
				summary.MeanWeeks, summary.MedianWeeks, summary.P90Weeks, summary.MaxWeeks),
			fmt.Sprintf("Current week: %s", weeks.CurrentWeek()),
		},
		summary,
	)
	return formatter.Output(table)
}
