package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: serialpub <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  publish     Publish one chapter and regenerate the archive and feed")
	fmt.Fprintln(w, "  rebuild     Regenerate the archive and feed from the archive JSON")
	fmt.Fprintln(w, "  check       Report pages and archive records that disagree")
	fmt.Fprintln(w, "  watch       Republish chapters as their manuscripts change")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'serialpub help <command>' for details on a specific command.")
}

// printCommonFlags prints flags shared by every site command.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: serialpub)")
	fmt.Fprintln(w, "  -r, --root <dir>          Site root directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

func printPlanFlags(w io.Writer) {
	fmt.Fprintln(w, "Planning:")
	fmt.Fprintln(w, "  -n, --dry-run             Show what would change without writing")
	fmt.Fprintln(w, "      --diff                Print unified diffs (with --dry-run)")
	fmt.Fprintln(w)
}

// printPublishUsage prints usage for the publish command.
func printPublishUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: serialpub publish <chapter|today> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one chapter to HTML, then regenerate the archive JSON,")
	fmt.Fprintln(w, "archive page and RSS feed. Publishing again replaces the chapter.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  chapter    Chapter number (1-based), or \"today\" for the chapter")
	fmt.Fprintln(w, "             scheduled on the current date")
	fmt.Fprintln(w)
	printPlanFlags(w)
	printCommonFlags(w)
}

// printRebuildUsage prints usage for the rebuild command.
func printRebuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: serialpub rebuild [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Regenerate the archive JSON, archive page and feed from the")
	fmt.Fprintln(w, "archive JSON. Chapter pages are not touched.")
	fmt.Fprintln(w)
	printPlanFlags(w)
	printCommonFlags(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: serialpub check [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report archive records without a page, pages without a record,")
	fmt.Fprintln(w, "leftover temp files, and templates that fail to load.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status is 1 when any error is reported.")
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: serialpub watch [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch the manuscript directory and republish a chapter whenever")
	fmt.Fprintln(w, "its file is created or saved. Stop with Ctrl+C.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --debounce <d>        Wait for writes to settle (default 300ms)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for a specific command and returns an exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "publish":
		printPublishUsage(env.Stdout)
	case "rebuild":
		printRebuildUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: serialpub version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: serialpub help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
