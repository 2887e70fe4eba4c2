package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/sqlagentgilmore/rfdate/internal/config"
	"github.com/sqlagentgilmore/rfdate/partdate"
)

// report is the document written in the json and yaml formats.
type report struct {
	Stats *Stats       `json:"stats" yaml:"stats"`
	Files []fileReport `json:"files" yaml:"files"`
}

func writeReport(w io.Writer, out config.OutputConfig, files []fileReport, stats *Stats) error {
	doc := report{Stats: stats, Files: files}

	switch out.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return writeText(w, out.NoColor, doc)
	}
}

func writeText(w io.Writer, noColor bool, doc report) error {
	pathColor := color.New(color.Bold)
	dateColor := color.New(color.FgGreen)
	undecidedColor := color.New(color.FgYellow)
	errorColor := color.New(color.FgRed)
	if noColor {
		for _, c := range []*color.Color{pathColor, dateColor, undecidedColor, errorColor} {
			c.DisableColor()
		}
	}

	bw := &errWriter{w: w}
	for _, f := range doc.Files {
		bw.printf("%s\n", pathColor.Sprint(f.Path))
		if f.Error != "" {
			bw.printf("  %s\n", errorColor.Sprint(f.Error))
			continue
		}
		if len(f.Dates) == 0 {
			bw.printf("  (no dates)\n")
			continue
		}
		for _, e := range f.Dates {
			loc := ""
			if e.Text != "" {
				loc = fmt.Sprintf("%q [%d:%d] ", e.Text, e.Start, e.End)
			}
			switch {
			case e.Date != nil:
				bw.printf("  %s%s\n", loc, dateColor.Sprint(e.Date.String()))
			case e.Error != "" && isUndecided(e.err):
				bw.printf("  %s%s\n", loc, undecidedColor.Sprint(e.Error))
			default:
				bw.printf("  %s%s\n", loc, errorColor.Sprint(e.Error))
			}
		}
	}

	st := doc.Stats
	bw.printf("\n%d files (%d failed), %d bytes: %d dates, %d undecided, %d invalid, %d without dates\n",
		st.Files, st.FailedFiles, st.Bytes, st.Dates, st.Undecided, st.Invalid, st.Missing)
	return bw.err
}

func isUndecided(err error) bool {
	return errors.Is(err, partdate.ErrUndecidedDate)
}

// errWriter keeps the first write error so the report loop stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
