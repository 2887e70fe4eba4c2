// Command datescan reports the numeric dates found in text files.
//
// Usage:
//
//	datescan [flags] [path ...]
//
// Each path is a file or a directory walked recursively for files with the
// configured extension. With no paths, standard input is scanned.
//
// Flags:
//
//	-config   path to a YAML config file (ENV and defaults otherwise)
//	-format   text, json or yaml
//	-last     report only the last date of each file
//	-sort     order each file's dates, undecided and invalid entries last
//	-workers  number of files scanned concurrently
//	-no-color disable coloured text output
//
// Exit codes: 0 = success, 1 = a file could not be read, 2 = usage or config error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"

	"github.com/sqlagentgilmore/rfdate/internal/config"
	"github.com/sqlagentgilmore/rfdate/internal/logger"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without process globals so tests can drive it.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("datescan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFlag := fs.String("config", "", "path to YAML config file")
	formatFlag := fs.String("format", "", "report format: text, json or yaml")
	lastFlag := fs.Bool("last", false, "report only the last date of each file")
	sortFlag := fs.Bool("sort", false, "sort dates within each file")
	workersFlag := fs.Int("workers", 0, "files scanned concurrently")
	noColorFlag := fs.Bool("no-color", false, "disable coloured output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(stderr, "datescan: %v\n", err)
		return exitUsage
	}

	// CLI flags override config.
	if *formatFlag != "" {
		cfg.Output.Format = *formatFlag
	}
	if *workersFlag > 0 {
		cfg.Scan.Workers = *workersFlag
	}
	cfg.Output.Last = cfg.Output.Last || *lastFlag
	cfg.Output.Sort = cfg.Output.Sort || *sortFlag
	cfg.Output.NoColor = cfg.Output.NoColor || *noColorFlag
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "datescan: %v\n", err)
		return exitUsage
	}

	runID := uuid.NewString()
	log := logger.New(cfg.Log, stderr).With(slog.String("run_id", runID))

	s := &scanner{cfg: cfg, log: log, stats: newStats(runID)}

	var reports []fileReport
	if fs.NArg() == 0 {
		reports = []fileReport{s.scanReader("<stdin>", stdin)}
	} else {
		files, err := collectFiles(fs.Args(), cfg.Scan.Extension)
		if err != nil {
			log.Error("collect files", slog.String("error", err.Error()))
			return exitFailed
		}
		log.Info("scan started", slog.Int("files", len(files)), slog.Int("workers", cfg.Scan.Workers))
		reports, err = s.scanFiles(ctx, files)
		if err != nil {
			log.Error("scan aborted", slog.String("error", err.Error()))
			return exitFailed
		}
	}

	if err := writeReport(stdout, cfg.Output, reports, s.stats); err != nil {
		log.Error("write report", slog.String("error", err.Error()))
		return exitFailed
	}

	log.Info("scan finished",
		slog.Int("files", s.stats.Files),
		slog.Int("dates", s.stats.Dates),
		slog.Int("undecided", s.stats.Undecided),
		slog.Int("invalid", s.stats.Invalid),
		slog.Int("failed_files", s.stats.FailedFiles),
	)

	if s.stats.FailedFiles > 0 {
		return exitFailed
	}
	return exitOK
}
