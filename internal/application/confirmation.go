package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/ports"
)

// RetryPolicy bounds how long a write waits for its receipt. The first check
// runs immediately, so the total wait is at most (MaxAttempts-1)*Interval.
type RetryPolicy struct {
	Interval     time.Duration
	MaxAttempts  int
	TargetStatus domain.TxStatus
}

var (
	ChatPolicy = RetryPolicy{
		Interval:     5 * time.Second,
		MaxAttempts:  120,
		TargetStatus: domain.TxStatusAccepted,
	}
	UpdatePolicy = RetryPolicy{
		Interval:     2 * time.Second,
		MaxAttempts:  50,
		TargetStatus: domain.TxStatusAccepted,
	}
)

func (p RetryPolicy) Validate() error {
	if p.Interval <= 0 {
		return errors.New("retry interval must be positive")
	}
	if p.MaxAttempts < 1 {
		return errors.New("retry attempts must be at least 1")
	}
	if p.TargetStatus == "" {
		return errors.New("retry target status is required")
	}

	return nil
}

// Ceiling is the longest time Poll may spend waiting between checks.
func (p RetryPolicy) Ceiling() time.Duration {
	if p.MaxAttempts < 1 {
		return 0
	}

	return time.Duration(p.MaxAttempts-1) * p.Interval
}

type waitFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CheckFunc reports whether polling is done. A non-nil error stops polling.
type CheckFunc func(ctx context.Context, attempt int) (bool, error)

// Poll runs check until it is done, fails, or policy.MaxAttempts checks have
// run. Running out of attempts yields domain.ErrConfirmationTimeout.
func Poll(ctx context.Context, policy RetryPolicy, check CheckFunc) (int, error) {
	return poll(ctx, policy, sleepContext, check)
}

func poll(ctx context.Context, policy RetryPolicy, wait waitFunc, check CheckFunc) (int, error) {
	if err := policy.Validate(); err != nil {
		return 0, err
	}

	for attempt := 1; ; attempt++ {
		done, err := check(ctx, attempt)
		if err != nil {
			return attempt, err
		}
		if done {
			return attempt, nil
		}
		if attempt >= policy.MaxAttempts {
			return attempt, fmt.Errorf("%w after %d attempts", domain.ErrConfirmationTimeout, attempt)
		}
		if err := wait(ctx, policy.Interval); err != nil {
			return attempt, err
		}
	}
}

// AwaitConfirmation polls the ledger until txID reaches policy.TargetStatus.
// A receipt the ledger does not know yet counts as pending. The returned int
// is the number of receipt fetches made.
func AwaitConfirmation(ctx context.Context, client ports.LedgerClient, txID domain.TxID, policy RetryPolicy) (domain.Receipt, int, error) {
	return awaitConfirmation(ctx, client, txID, policy, sleepContext)
}

func awaitConfirmation(ctx context.Context, client ports.LedgerClient, txID domain.TxID, policy RetryPolicy, wait waitFunc) (domain.Receipt, int, error) {
	var receipt domain.Receipt
	attempts, err := poll(ctx, policy, wait, func(ctx context.Context, _ int) (bool, error) {
		current, err := client.GetReceipt(ctx, txID)
		if err != nil {
			if errors.Is(err, domain.ErrTransactionNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("get receipt %s: %w", txID, err)
		}
		if current.Status.Failed() {
			return false, fmt.Errorf("%w: %s is %s", domain.ErrTransactionRejected, txID, current.Status)
		}
		if !current.Status.Reaches(policy.TargetStatus) {
			return false, nil
		}

		receipt = current
		return true, nil
	})
	if err != nil {
		return domain.Receipt{}, attempts, err
	}

	return receipt, attempts, nil
}
