package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"ssareport/internal/output"
)

func kpiCmd() *cli.Command {
	return &cli.Command{
		Name:      "kpi",
		Usage:     "Headline KPIs: health score, scheduling rate, critical load",
		ArgsUsage: "<export-file>",
		Action:    runKPI,
	}
}

func runKPI(c *cli.Context) error {
	orders, cfg, log, err := loadOrders(c)
	if err != nil {
		return err
	}

	kpi := newKPIAnalyzer(cfg, newWeekAnalyzer(cfg, log))
	summary := kpi.Summary(orders)
	metrics := kpi.Efficiency(orders)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rows := [][]string{
		{"Total orders", itoa(summary.TotalOrders)},
		{"Health score", fmt.Sprintf("%.2f", summary.HealthScore)},
		{"Scheduling rate", percentStr(summary.SchedulingRate)},
		{"Simple execution rate", percentStr(summary.SimpleExecutionRate)},
		{"Critical orders", itoa(summary.CriticalOrders)},
	}
	if summary.CriticalResponseWeeks != nil {
		rows = append(rows, []string{
			"Critical response time",
			fmt.Sprintf("%.1f weeks", *summary.CriticalResponseWeeks),
		})
	}

	priorities := make([]string, 0, len(metrics.PriorityShare))
	for p := range metrics.PriorityShare {
		priorities = append(priorities, p)
	}
	sort.Strings(priorities)

	summaryLines := make([]string, 0, len(priorities))
	for _, p := range priorities {
		summaryLines = append(summaryLines,
			fmt.Sprintf("Priority %s: %s", p, percentStr(metrics.PriorityShare[p]*100)))
	}

	table := output.NewTable(
		"Key Performance Indicators",
		[]string{"Metric", "Value"},
		rows,
		summaryLines,
		summary,
	)
	return formatter.Output(table)
}

func sectorsCmd() *cli.Command {
	return &cli.Command{
		Name:      "sectors",
		Usage:     "Per-executor-sector performance",
		ArgsUsage: "<export-file>",
		Action:    runSectors,
	}
}

func runSectors(c *cli.Context) error {
	orders, cfg, log, err := loadOrders(c)
	if err != nil {
		return err
	}

	kpi := newKPIAnalyzer(cfg, newWeekAnalyzer(cfg, log))
	sectors := kpi.SectorPerformance(orders)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, s := range sectors {
		rows = append(rows, []string{
			s.Sector,
			itoa(s.Total),
			itoa(s.Scheduled),
			percentStr(s.SchedulingRate * 100),
			itoa(s.Critical),
			percentStr(s.CriticalPercent),
		})
	}

	table := output.NewTable(
		"Sector Performance",
		[]string{"Sector", "Orders", "Scheduled", "Sched. Rate", "Critical", "Critical %"},
		rows,
		[]string{fmt.Sprintf("Sectors: %d", len(sectors))},
		sectors,
	)
	return formatter.Output(table)
}

func trendsCmd() *cli.Command {
	return &cli.Command{
		Name:      "trends",
		Usage:     "Weekly registration trends",
		ArgsUsage: "<export-file>",
		Action:    runTrends,
	}
}

func runTrends(c *cli.Context) error {
	orders, cfg, log, err := loadOrders(c)
	if err != nil {
		return err
	}

	kpi := newKPIAnalyzer(cfg, newWeekAnalyzer(cfg, log))
	trends := kpi.WeeklyTrends(orders)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, t := range trends {
		rows = append(rows, []string{
			t.YearWeek,
			itoa(t.Total),
			itoa(t.Scheduled),
			itoa(t.Critical),
			percentStr(t.SchedulingRate * 100),
		})
	}

	table := output.NewTable(
		"Weekly Registration Trends",
		[]string{"Year-Week", "Orders", "Scheduled", "Critical", "Sched. Rate"},
		rows,
		[]string{fmt.Sprintf("Weeks: %d", len(trends))},
		trends,
	)
	return formatter.Output(table)
}
