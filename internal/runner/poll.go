package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/minion/minion-scan/internal/backend"
	"github.com/minion/minion-scan/internal/output"
	"github.com/minion/minion-scan/pkg/types"
)

// AwaitTerminal polls the scan at a fixed interval until its state is
// terminal and returns that snapshot. Any failed poll ends the wait.
// There is no overall deadline; cancel ctx to give up early.
func (r *Runner) AwaitTerminal(ctx context.Context, id string) (*types.Scan, error) {
	for poll := 1; ; poll++ {
		scan, err := r.api.GetScan(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: scan %s, poll %d: %w", ErrPollFailed, id, poll, err)
		}
		if scan.ID != id {
			return nil, fmt.Errorf("%w: scan %s, poll %d: %w: got scan %q", ErrPollFailed, id, poll, backend.ErrMalformedResponse, scan.ID)
		}

		r.observe(scan)

		if scan.State.IsTerminal() {
			r.logger.Debug("scan reached terminal state", "scan_id", id, "state", scan.State, "polls", poll)
			return scan, nil
		}
		if !scan.State.IsKnown() {
			r.logger.Warn("unrecognized scan state, still polling", "scan_id", id, "state", scan.State)
		}

		if err := r.wait(ctx); err != nil {
			return nil, err
		}
	}
}

func (r *Runner) observe(scan *types.Scan) {
	fmt.Fprintf(r.progress, "Scan %s is %s\n", scan.ID, output.ColorState(scan.State))
	if r.observer != nil {
		r.observer(scan)
	}
}

func (r *Runner) wait(ctx context.Context) error {
	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
