package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/alnah/go-serialpub"
)

// ErrCheckFailed is returned when check finds at least one problem.
var ErrCheckFailed = errors.New("site check failed")

// checkOutput is the JSON shape printed by check --json.
type checkOutput struct {
	Status string                 `json:"status"` // "ok", "warnings", "errors"
	Root   string                 `json:"root"`
	Report *serialpub.CheckReport `json:"report"`
}

// runCheckCmd inspects the site and reports inconsistencies.
// Leftover temp files are warnings; missing pages, orphan pages and broken
// templates are errors.
func runCheckCmd(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	pub, cfg, _, err := newPublisher(flags.common, env)
	if err != nil {
		return err
	}

	report, err := pub.Check(ctx)
	if err != nil {
		return err
	}

	out := checkOutput{Status: checkStatus(report), Root: cfg.Paths.Root, Report: report}
	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	} else if !flags.common.quiet || !report.OK() {
		printCheckReport(env.Stdout, &out)
	}

	if !report.OK() {
		return ErrCheckFailed
	}
	return nil
}

func checkStatus(r *serialpub.CheckReport) string {
	switch {
	case !r.OK():
		return "errors"
	case len(r.TempFiles) > 0:
		return "warnings"
	default:
		return "ok"
	}
}

// printCheckReport outputs a human-readable report.
func printCheckReport(w io.Writer, out *checkOutput) {
	r := out.Report
	fmt.Fprintln(w, "serialpub check")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Archive")
	fmt.Fprintf(w, "  [OK] %d chapters recorded\n", r.Chapters)
	if len(r.MissingPages) == 0 {
		fmt.Fprintln(w, "  [OK] Every chapter has a page")
	}
	for _, p := range r.MissingPages {
		fmt.Fprintf(w, "  [ERROR] Missing page: %s\n", displayPath(out.Root, p))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Pages")
	if len(r.OrphanPages) == 0 && len(r.TempFiles) == 0 {
		fmt.Fprintln(w, "  [OK] No stray files")
	}
	for _, p := range r.OrphanPages {
		fmt.Fprintf(w, "  [ERROR] Not in archive: %s\n", displayPath(out.Root, p))
	}
	for _, p := range r.TempFiles {
		fmt.Fprintf(w, "  [WARN] Leftover temp file: %s\n", displayPath(out.Root, p))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Templates")
	for _, t := range r.Templates {
		if t.Error != "" {
			fmt.Fprintf(w, "  [ERROR] %s (%s): %s\n", t.Name, t.Source, t.Error)
			continue
		}
		fmt.Fprintf(w, "  [OK] %s (%s)\n", t.Name, t.Source)
	}
	fmt.Fprintln(w)

	switch out.Status {
	case "ok":
		fmt.Fprintln(w, "Status: Consistent")
	case "warnings":
		fmt.Fprintln(w, "Status: Consistent with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Inconsistent (see errors above)")
	}
}
