package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/RacoonMediaServer/rms-covers/internal/config"
	"github.com/RacoonMediaServer/rms-covers/internal/db"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/urfave/cli/v2"
	"go-micro.dev/v4/logger"
)

const timeLayout = "2006-01-02 15:04:05"

func main() {
	var configFile string
	var limit int64

	app := &cli.App{
		Name:  "rms-covers.history",
		Usage: "print recent verification runs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "configuration file",
				Value:       "rms-covers.json",
				Destination: &configFile,
			},
			&cli.Int64Flag{
				Name:        "limit",
				Usage:       "number of runs",
				Value:       10,
				Destination: &limit,
			},
		},
		Action: func(c *cli.Context) error {
			if err := config.Load(configFile); err != nil {
				return fmt.Errorf("load configuration failed: %w", err)
			}
			cfg := config.Config()
			if cfg.Database == "" {
				return fmt.Errorf("database is not configured")
			}

			database, err := db.Connect(cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close()

			runs, err := database.RecentRuns(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("load runs failed: %w", err)
			}
			for _, r := range runs {
				fmt.Print(formatRun(r))
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func formatRun(r *model.Run) string {
	b := strings.Builder{}
	verdict := "PASSED"
	if !r.Passed {
		verdict = "FAILED"
	}
	fmt.Fprintf(&b, "%s  %s  %s  catalog: %d, collection: %d\n",
		r.StartedAt.UTC().Format(timeLayout), verdict, r.Catalog, r.CatalogTitles, r.CollectionTitles)

	categories := make([]string, 0, len(r.Progress))
	for c := range r.Progress {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintf(&b, "    %-10s %5.1f%%\n", c, r.Progress[c])
	}

	for _, s := range r.Sections {
		if s.Status != model.StatusPassed.String() {
			fmt.Fprintf(&b, "    %s: %s (%d)\n", s.Name, s.Status, s.Findings)
		}
	}
	return b.String()
}
