package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RacoonMediaServer/rms-covers/internal/config"
	"github.com/RacoonMediaServer/rms-covers/internal/db"
	"github.com/RacoonMediaServer/rms-covers/internal/migration"
	"github.com/RacoonMediaServer/rms-covers/internal/report"
	"github.com/RacoonMediaServer/rms-covers/internal/storage"
	"github.com/RacoonMediaServer/rms-covers/internal/verification"
	"github.com/urfave/cli/v2"
	"go-micro.dev/v4/logger"
)

var Version = "v0.0.0"

const appName = "rms-covers"

const (
	exitPassed = 0
	exitFailed = 1
	exitFatal  = 2
)

const defaultConfigFile = appName + ".json"

type options struct {
	configFile string
	dat        string
	report     string
	root       string
	output     string
	markdown   bool
	verbose    bool
}

func main() {
	opts := options{}
	code := exitFatal

	app := &cli.App{
		Name:    appName,
		Usage:   "verify the artwork collection against the catalog",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "configuration file",
				Destination: &opts.configFile,
			},
			&cli.StringFlag{
				Name:        "dat",
				Usage:       "catalog DAT file",
				Destination: &opts.dat,
			},
			&cli.StringFlag{
				Name:        "report",
				Usage:       "exclusion report of the catalog filter",
				Destination: &opts.report,
			},
			&cli.StringFlag{
				Name:        "root",
				Usage:       "collection root directory",
				Destination: &opts.root,
			},
			&cli.StringFlag{
				Name:        "output",
				Usage:       "write report to the file",
				Destination: &opts.output,
			},
			&cli.BoolFlag{
				Name:        "markdown",
				Usage:       "write report as a completion page",
				Destination: &opts.markdown,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"debug"},
				Usage:       "debug log level",
				Value:       false,
				Destination: &opts.verbose,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 0 {
				return fmt.Errorf("unexpected arguments: %v", c.Args().Slice())
			}
			code = run(opts)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("Invalid invocation: %s", err)
		os.Exit(exitFatal)
	}
	os.Exit(code)
}

func loadConfig(opts options) (config.Configuration, error) {
	configFile := opts.configFile
	if configFile == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			configFile = defaultConfigFile
		}
	}
	if configFile != "" {
		if err := config.Load(configFile); err != nil {
			return config.Configuration{}, fmt.Errorf("load configuration '%s' failed: %w", configFile, err)
		}
	}

	cfg := config.Default()
	if configFile != "" {
		cfg = config.Config()
	}
	if opts.dat != "" {
		cfg.Catalog = opts.dat
	}
	if opts.report != "" {
		cfg.ExclusionReport = opts.report
	}
	if opts.root != "" {
		cfg.Root = opts.root
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.markdown {
		cfg.Markdown = true
	}
	config.Set(cfg)
	return cfg, nil
}

func run(opts options) int {
	if opts.verbose {
		_ = logger.Init(logger.WithLevel(logger.DebugLevel))
	}
	logger.Infof("%s %s", appName, Version)

	cfg, err := loadConfig(opts)
	if err != nil {
		logger.Error(err)
		return exitFatal
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return verify(ctx, cfg, os.Stdout)
}

// verify runs verification, prints the report to out and returns the exit code
func verify(ctx context.Context, cfg config.Configuration, out io.Writer) int {
	v, err := verification.New(cfg)
	if err != nil {
		logger.Errorf("Cannot start verification: %s", err)
		return exitFatal
	}

	result, err := v.Run(ctx)
	if err != nil {
		if errors.Is(err, verification.ErrInterrupted) {
			logger.Warnf("Verification interrupted, report is not written")
		} else {
			logger.Errorf("Verification failed: %s", err)
		}
		return exitFatal
	}

	text := report.Render(result)
	if _, err = io.WriteString(out, text); err != nil {
		logger.Errorf("Print report failed: %s", err)
		return exitFatal
	}

	if cfg.Output != "" {
		if err = writeReport(ctx, cfg, text, result.StartedAt); err != nil {
			logger.Errorf("Write report failed: %s", err)
			return exitFatal
		}
		logger.Infof("Report written to '%s'", cfg.Output)
	}

	if cfg.Database != "" {
		// история не влияет на результат проверки
		if err = saveHistory(ctx, cfg, result); err != nil {
			logger.Warnf("Store run history failed: %s", err)
		}
	}

	return exitCode(result)
}

func writeReport(ctx context.Context, cfg config.Configuration, text string, updated time.Time) error {
	content := text
	if cfg.Markdown {
		content = report.Markdown(text, cfg.Description, updated)
	}
	return storage.WriteFile(ctx, cfg.Output, []byte(content))
}

func exitCode(result *verification.Result) int {
	if !result.Passed() {
		return exitFailed
	}
	return exitPassed
}

func saveHistory(ctx context.Context, cfg config.Configuration, result *verification.Result) error {
	database, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	m := migration.Migrator{
		CurrentVersion: Version,
		Database:       database,
	}
	if err = m.Run(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	run := result.Summary()
	if err = database.SaveRun(ctx, &run); err != nil {
		return fmt.Errorf("save run failed: %w", err)
	}
	logger.Debugf("Run %s stored", run.ID)

	if cfg.HistoryDays > 0 {
		before := result.StartedAt.Add(-time.Duration(cfg.HistoryDays) * 24 * time.Hour)
		removed, err := database.RemoveRunsBefore(ctx, before)
		if err != nil {
			return fmt.Errorf("remove old runs failed: %w", err)
		}
		if removed != 0 {
			logger.Infof("%d old runs removed", removed)
		}
	}
	return nil
}
