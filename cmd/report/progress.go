package main

import (
	"context"
	"io"
	"time"

	"loadtest-report/internal/ingestors"

	"github.com/schollz/progressbar/v3"
)

const progressPollInterval = 200 * time.Millisecond

type progressSource interface {
	Progress() ingestors.Progress
}

// runWithProgress runs fn while a bar tracks finished user directories.
func runWithProgress(ctx context.Context, w io.Writer, source progressSource, fn func() error) error {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("directories"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan error, 1)
	go func() { done <- fn() }()

	ticker := time.NewTicker(progressPollInterval)
	defer ticker.Stop()

	var total int64
	for {
		select {
		case err := <-done:
			_ = bar.Finish()
			return err
		case <-ticker.C:
			p := source.Progress()
			if p.DirectoriesTotal != total && p.DirectoriesTotal > 0 {
				total = p.DirectoriesTotal
				bar.ChangeMax64(total)
			}
			_ = bar.Set64(p.DirectoriesFinished)
		case <-ctx.Done():
			// fn observes the same context; wait for it to unwind.
			return <-done
		}
	}
}
