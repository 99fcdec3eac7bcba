package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-serialpub"
)

// runRebuildCmd regenerates the archive and feed from the archive JSON.
func runRebuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseRebuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	pub, cfg, _, err := newPublisher(flags.common, env)
	if err != nil {
		return err
	}

	res, err := pub.Rebuild(ctx, serialpub.PublishOptions{DryRun: flags.plan.dryRun})
	if err != nil {
		return err
	}

	if flags.common.quiet {
		return nil
	}

	verb := "rebuilt"
	if res.DryRun {
		verb = "would rebuild"
	}
	fmt.Fprintf(env.Stdout, "%s indexes for %d chapters\n", verb, res.Chapters)
	printChanges(env.Stdout, cfg.Paths.Root, res.Changes, flags.plan.diff)
	if res.DryRun {
		fmt.Fprintln(env.Stdout, "dry run: nothing written")
	}
	return nil
}
