package serialpub_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-serialpub"
)

// Example publishes the first chapter of a new site.
func Example() {
	root, err := os.MkdirTemp("", "serialpub-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(root)

	_ = os.MkdirAll(filepath.Join(root, "manuscript"), 0o755)
	_ = os.WriteFile(filepath.Join(root, "manuscript", "001.md"),
		[]byte("---\ntitle: \"The Lighthouse\"\n---\n\nThe keeper counted the ships.\n"), 0o644)

	cfg := serialpub.DefaultConfig()
	cfg.Paths.Root = root

	pub, err := serialpub.NewPublisher(cfg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := pub.Publish(context.Background(), serialpub.Number(1), serialpub.PublishOptions{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(res.Chapter.Title, res.Chapter.Date, res.Chapter.URL)
	for _, c := range res.Changes {
		rel, _ := filepath.Rel(root, c.Path)
		fmt.Println(c.Action, filepath.ToSlash(rel))
	}
	// Output:
	// The Lighthouse 2026-01-01 chapters/001.html
	// create chapters/001.html
	// create chapters.json
	// create chapters.html
	// create rss.xml
}

// Example_dryRun previews today's chapter without writing anything.
func Example_dryRun() {
	root, err := os.MkdirTemp("", "serialpub-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(root)

	_ = os.MkdirAll(filepath.Join(root, "manuscript"), 0o755)
	_ = os.WriteFile(filepath.Join(root, "manuscript", "2026-02-14.md"), []byte("# Valentines\n"), 0o644)

	cfg := serialpub.DefaultConfig()
	cfg.Paths.Root = root

	pub, err := serialpub.NewPublisher(cfg, serialpub.WithClock(func() time.Time {
		return time.Date(2026, 2, 14, 7, 0, 0, 0, time.UTC)
	}))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := pub.Publish(context.Background(), serialpub.Today(), serialpub.PublishOptions{DryRun: true})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_, statErr := os.Stat(filepath.Join(root, "chapters.json"))
	fmt.Println(res.Chapter.Number, res.Chapter.Title, os.IsNotExist(statErr))
	// Output: 45 Valentines true
}

// ExampleParseSelector shows the accepted selector forms.
func ExampleParseSelector() {
	for _, s := range []string{"today", "12", "twelve"} {
		sel, err := serialpub.ParseSelector(s)
		if err != nil {
			fmt.Println("invalid:", s)
			continue
		}
		fmt.Println(sel)
	}
	// Output:
	// today
	// 12
	// invalid: twelve
}
