package util

import (
	"time"

	"golang.org/x/sync/errgroup"
)

// WaitGroupWithTimeout waits for g and reports whether it finished before
// the timeout. The group's error is returned when it did.
func WaitGroupWithTimeout(g *errgroup.Group, timeout time.Duration) (bool, error) {
	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		return true, err
	case <-time.After(timeout):
		return false, nil
	}
}
