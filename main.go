package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"

	"github.com/oahshtsua/lab/bstlab/internal/logger"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    "bstlab",
		Usage:   "binary search tree menu, tree service and pattern search",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity level (eg: warn, info, debug)",
				Value:   "info",
				EnvVars: []string{"BSTLAB_LOG_LEVEL", "LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "journal",
				Usage:   "append tree mutations to this JSON lines file",
				EnvVars: []string{"BSTLAB_JOURNAL"},
			},
		},
		Before: func(cctx *cli.Context) error {
			return configureLogging(cctx.String("log-level"))
		},
		Action: runMenu,
	}
	app.Commands = []*cli.Command{
		cmdMenu,
		cmdStates,
		cmdSearch,
		cmdShape,
		cmdJournal,
		cmdServe,
		cmdListen,
	}
	return app.Run(args)
}

func configureLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(log)
	return nil
}

// openJournal returns the journal named by --journal, or logger.Discard when
// journaling is off.
func openJournal(cctx *cli.Context) (logger.TransactionLogger, error) {
	filename := cctx.String("journal")
	if filename == "" {
		return logger.Discard, nil
	}
	slog.Info("initializing transaction log", "path", filename)
	tlog, err := logger.OpenFileTransactionLogger(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction log: %w", err)
	}
	return tlog, nil
}
