package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-serialpub"
)

// runPublishCmd publishes one chapter: serialpub publish <N|today>.
func runPublishCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePublishFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		printPublishUsage(env.Stderr)
		return fmt.Errorf("%w: publish takes exactly one chapter selector (a number or \"today\")", ErrUsage)
	}

	sel, err := serialpub.ParseSelector(positional[0])
	if err != nil {
		return err
	}

	pub, cfg, _, err := newPublisher(flags.common, env)
	if err != nil {
		return err
	}

	res, err := pub.Publish(ctx, sel, serialpub.PublishOptions{DryRun: flags.plan.dryRun})
	if err != nil {
		return err
	}

	if flags.common.quiet {
		return nil
	}

	verb := "published"
	if res.DryRun {
		verb = "would publish"
	}
	fmt.Fprintf(env.Stdout, "%s chapter %d: %q (%s)\n", verb, res.Chapter.Number, res.Chapter.Title, res.Chapter.Date)
	if flags.common.verbose || res.DryRun {
		fmt.Fprintf(env.Stdout, "  source    %s\n", displayPath(cfg.Paths.Root, res.Source))
	}
	printChanges(env.Stdout, cfg.Paths.Root, res.Changes, flags.plan.diff)
	if res.DryRun {
		fmt.Fprintln(env.Stdout, "dry run: nothing written")
	}
	return nil
}
