package main

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"ssareport/internal/analyzer"
	"ssareport/internal/cache"
	"ssareport/internal/loader"
	"ssareport/internal/logging"
	"ssareport/internal/output"
	"ssareport/pkg/config"
	"ssareport/pkg/models"
)

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}

func setupLogger(c *cli.Context, cfg *config.Config) zerolog.Logger {
	return logging.Setup(c.Bool("verbose") || cfg.Output.Verbose)
}

// loadOrders resolves config, logger, and the export file argument, then
// loads the record set (through the cache unless disabled).
func loadOrders(c *cli.Context) ([]models.ServiceOrder, *config.Config, zerolog.Logger, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}
	log := setupLogger(c, cfg)

	if c.Args().Len() < 1 {
		return nil, nil, log, fmt.Errorf("missing export file argument (see 'ssareport %s --help')", c.Command.Name)
	}
	path := c.Args().First()

	l := loader.New(cfg, loader.WithLogger(log))

	if c.Bool("no-cache") || !cfg.Cache.Enabled {
		orders, err := l.Load(path)
		return orders, cfg, log, err
	}

	store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
	if err != nil {
		log.Warn().Err(err).Msg("cache unavailable, loading directly")
		orders, err := l.Load(path)
		return orders, cfg, log, err
	}
	orders, err := l.LoadCached(path, store)
	return orders, cfg, log, err
}

func newWeekAnalyzer(cfg *config.Config, log zerolog.Logger) *analyzer.WeekAnalyzer {
	return analyzer.NewWeekAnalyzer(
		analyzer.WithYearBounds(cfg.Weeks.MinYear, cfg.Weeks.MaxYearOffset),
		analyzer.WithWeekLogger(log),
	)
}

func newKPIAnalyzer(cfg *config.Config, weeks *analyzer.WeekAnalyzer) *analyzer.KPIAnalyzer {
	return analyzer.NewKPIAnalyzer(weeks,
		analyzer.WithCriticalPriority(cfg.Data.CriticalPriority),
		analyzer.WithSimpleExecutionValue(cfg.Data.SimpleExecution),
	)
}

func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := cfg.Output.Format
	if c.IsSet("format") || format == "" {
		format = c.String("format")
	}
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), cfg.Output.Color)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func percentStr(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
