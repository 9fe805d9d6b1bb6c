// Package runner drives one scan through the backend: create, start, poll
// until terminal, then report.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/minion/minion-scan/internal/output"
	"github.com/minion/minion-scan/pkg/types"
)

// DefaultInterval is the fixed delay between polls.
const DefaultInterval = time.Second

// ErrPollFailed wraps any failure to fetch the scan while waiting for it.
var ErrPollFailed = errors.New("poll failed")

// Backend is the subset of the backend API a run needs.
type Backend interface {
	BaseURL() string
	CreateScan(ctx context.Context, req types.ScanRequest) (*types.Scan, error)
	StartScan(ctx context.Context, id string) error
	GetScan(ctx context.Context, id string) (*types.Scan, error)
}

// Observer is called with every polled snapshot, terminal or not.
type Observer func(scan *types.Scan)

// Runner executes scan runs against a backend.
type Runner struct {
	api       Backend
	formatter output.Formatter
	out       io.Writer
	progress  io.Writer
	interval  time.Duration
	logger    *slog.Logger
	observer  Observer
}

// Option configures a Runner.
type Option func(*Runner)

// WithInterval sets the delay between polls.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithObserver registers a callback for every polled snapshot.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observer = o }
}

// WithProgress sends banner and progress lines to w instead of the report writer.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) { r.progress = w }
}

// New creates a runner that renders the final report with formatter to out.
func New(api Backend, formatter output.Formatter, out io.Writer, opts ...Option) *Runner {
	r := &Runner{
		api:       api,
		formatter: formatter,
		out:       out,
		progress:  out,
		interval:  DefaultInterval,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run creates and starts a scan for req, waits for it to reach a terminal
// state and renders it. Each phase runs only after the previous one
// succeeded; on error nothing is rendered.
func (r *Runner) Run(ctx context.Context, req types.ScanRequest) (*types.Scan, error) {
	fmt.Fprintf(r.progress, "Scanning %s with plan %s on %s\n", req.Target, req.Plan, r.api.BaseURL())

	created, err := r.api.CreateScan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating scan: %w", err)
	}
	id := created.ID
	r.logger.Debug("scan created", "scan_id", id, "state", created.State, "user", req.User)

	if err := r.api.StartScan(ctx, id); err != nil {
		return nil, fmt.Errorf("starting scan %s: %w", id, err)
	}
	r.logger.Debug("scan started", "scan_id", id)

	final, err := r.AwaitTerminal(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.formatter.Format(r.out, final); err != nil {
		return final, fmt.Errorf("rendering scan %s: %w", id, err)
	}
	return final, nil
}
