package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "ssareport",
		Usage:   "Weekly analysis of exported SSA maintenance-order reports",
		Version: version,
		Description: `ssareport loads an exported SSA report (.xlsx or .csv) and computes
ISO-week aggregations, order ages, KPIs, and data-quality checks.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"SSAREPORT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable the parsed-export cache",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose diagnostics",
			},
		},
		Commands: []*cli.Command{
			weeksCmd(),
			distributionCmd(),
			ageCmd(),
			kpiCmd(),
			sectorsCmd(),
			trendsCmd(),
			validateCmd(),
			initCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
