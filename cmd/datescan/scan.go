package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sqlagentgilmore/rfdate/internal/config"
	"github.com/sqlagentgilmore/rfdate/partdate"
)

// errFileTooLarge is reported for files over the configured byte limit.
var errFileTooLarge = errors.New("file exceeds size limit")

// Stats is shared by all workers of one run.
type Stats struct {
	mu          sync.Mutex
	RunID       string `json:"run_id"       yaml:"run_id"`
	Files       int    `json:"files"        yaml:"files"`
	FailedFiles int    `json:"failed_files" yaml:"failed_files"`
	Bytes       int64  `json:"bytes"        yaml:"bytes"`
	Dates       int    `json:"dates"        yaml:"dates"`
	Undecided   int    `json:"undecided"    yaml:"undecided"`
	Invalid     int    `json:"invalid"      yaml:"invalid"`
	Missing     int    `json:"missing"      yaml:"missing"`
}

func newStats(runID string) *Stats {
	return &Stats{RunID: runID}
}

// add folds one file's outcome into the totals.
func (st *Stats) add(r fileReport, size int64) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.Files++
	st.Bytes += size
	if r.Error != "" {
		st.FailedFiles++
		return
	}
	for _, e := range r.Dates {
		switch {
		case e.Date != nil:
			st.Dates++
		case errors.Is(e.err, partdate.ErrUndecidedDate):
			st.Undecided++
		case errors.Is(e.err, partdate.ErrInvalidDateFormat):
			st.Invalid++
		case errors.Is(e.err, partdate.ErrNoDatesFound):
			st.Missing++
		}
	}
}

// dateEntry is one reported candidate.
type dateEntry struct {
	Text  string         `json:"text,omitempty"  yaml:"text,omitempty"`
	Start int            `json:"start"           yaml:"start"`
	End   int            `json:"end"             yaml:"end"`
	Date  *partdate.Date `json:"date,omitempty"  yaml:"date,omitempty"`
	Error string         `json:"error,omitempty" yaml:"error,omitempty"`
	err   error
}

// fileReport is the outcome for one input.
type fileReport struct {
	Path  string      `json:"path"            yaml:"path"`
	Dates []dateEntry `json:"dates"           yaml:"dates"`
	Error string      `json:"error,omitempty" yaml:"error,omitempty"`
}

type scanner struct {
	cfg   *config.Config
	log   *slog.Logger
	stats *Stats
}

// collectFiles expands directories into the files below them that carry
// ext. Explicit file arguments are always kept. The result is sorted.
func collectFiles(paths []string, ext string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || (ext != "" && filepath.Ext(d.Name()) != ext) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// scanFiles processes files with at most cfg.Scan.Workers in flight.
// Reports come back in the order of files. Read failures are recorded in
// the report; only cancellation aborts the run.
func (s *scanner) scanFiles(ctx context.Context, files []string) ([]fileReport, error) {
	reports := make([]fileReport, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Scan.Workers)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = s.scanFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *scanner) scanFile(path string) fileReport {
	start := time.Now()

	data, err := readLimited(path, s.cfg.Scan.MaxFileBytes)
	if err != nil {
		s.log.Warn("read file", slog.String("path", path), slog.String("error", err.Error()))
		r := fileReport{Path: path, Error: err.Error()}
		s.stats.add(r, 0)
		return r
	}

	r := s.extract(path, string(data))
	s.stats.add(r, int64(len(data)))
	s.log.Debug("file scanned",
		slog.String("path", path),
		slog.Int("entries", len(r.Dates)),
		slog.Duration("took", time.Since(start)),
	)
	return r
}

// scanReader processes a single stream such as stdin.
func (s *scanner) scanReader(name string, rd io.Reader) fileReport {
	data, err := io.ReadAll(io.LimitReader(rd, s.cfg.Scan.MaxFileBytes+1))
	if err == nil && int64(len(data)) > s.cfg.Scan.MaxFileBytes {
		err = errFileTooLarge
	}
	if err != nil {
		r := fileReport{Path: name, Error: err.Error()}
		s.stats.add(r, 0)
		return r
	}
	r := s.extract(name, string(data))
	s.stats.add(r, int64(len(data)))
	return r
}

func readLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%s: %w (%d > %d bytes)", path, errFileTooLarge, info.Size(), limit)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// extract runs the date finder over text according to the output options.
func (s *scanner) extract(name, text string) fileReport {
	r := fileReport{Path: name}

	if s.cfg.Output.Last {
		d, err := partdate.FindLastDate(text)
		e := dateEntry{err: err}
		if err != nil {
			e.Error = err.Error()
		} else {
			e.Date = &d
		}
		r.Dates = []dateEntry{e}
		return r
	}

	results := partdate.FindDates(text)
	r.Dates = make([]dateEntry, 0, len(results))
	for _, res := range results {
		e := dateEntry{Text: res.Text, Start: res.Start, End: res.End, err: res.Err}
		if res.Err != nil {
			e.Error = res.Err.Error()
		} else {
			d := res.Date
			e.Date = &d
		}
		r.Dates = append(r.Dates, e)
	}

	if s.cfg.Output.Sort {
		slices.SortStableFunc(r.Dates, compareEntries)
	}
	return r
}

// compareEntries orders dated entries by partdate.Compare and puts failed
// ones after them in their original order.
func compareEntries(a, b dateEntry) int {
	switch {
	case a.Date == nil && b.Date == nil:
		return 0
	case a.Date == nil:
		return 1
	case b.Date == nil:
		return -1
	}
	return partdate.Compare(*a.Date, *b.Date)
}
