// SPDX-License-Identifier: AGPL-3.0-or-later

package git

import (
	"context"
	"sync"
)

// lazy holds a value resolved on first use and kept for the owner's lifetime.
// Failures are remembered too, except when the context was cancelled.
type lazy[T any] struct {
	mu   sync.Mutex
	done bool
	val  T
	err  error
}

func (l *lazy[T]) get(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done {
		return l.val, l.err
	}

	val, err := fetch(ctx)
	if err != nil && ctx.Err() != nil {
		return val, err
	}
	l.val, l.err, l.done = val, err, true
	return val, err
}
