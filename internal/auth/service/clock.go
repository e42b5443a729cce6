package service

import "time"

// nowOr returns fn() in UTC, falling back to the wall clock.
func nowOr(fn func() time.Time) time.Time {
	if fn == nil {
		return time.Now().UTC()
	}
	return fn().UTC()
}
