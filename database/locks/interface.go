package locks

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrLockTimeout is returned when a lock could not be taken before the wait expired.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker grants exclusive access to a key until release is called.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// ScheduleDateKey is the lock key guarding one professional's day.
func ScheduleDateKey(professionalID, date string) string {
	return fmt.Sprintf("schedule:%s:%s", professionalID, date)
}

// AcquireAll takes every key in sorted order so concurrent callers with
// overlapping key sets cannot deadlock. On failure nothing stays held.
func AcquireAll(ctx context.Context, l Locker, keys []string) (func(), error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	releases := make([]func(), 0, len(sorted))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for i, key := range sorted {
		if i > 0 && key == sorted[i-1] {
			continue
		}
		release, err := l.Acquire(ctx, key)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}
