package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"SignalSentinel/internal/model"
)

// Reporter delivers the signals produced by one cycle.
type Reporter interface {
	Report(ctx context.Context, events []model.SignalEvent) error
}

// ConsoleReporter prints one line per event.
type ConsoleReporter struct {
	Out io.Writer
}

// NewConsoleReporter writes to stdout.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{Out: os.Stdout}
}

func (c *ConsoleReporter) Report(_ context.Context, events []model.SignalEvent) error {
	for _, e := range events {
		if _, err := fmt.Fprintln(c.Out, FormatSignalLine(e)); err != nil {
			return fmt.Errorf("write signal line: %w", err)
		}
	}
	return nil
}

// MultiReporter fans a batch out to every reporter. All reporters run even
// when one fails.
type MultiReporter []Reporter

func (m MultiReporter) Report(ctx context.Context, events []model.SignalEvent) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
