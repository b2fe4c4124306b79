package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

// virtualWait records requested waits instead of sleeping.
type virtualWait struct {
	calls int
	total time.Duration
}

func (w *virtualWait) wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.calls++
	w.total += d
	return nil
}
