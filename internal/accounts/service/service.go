// Package service implements the account-management use cases. Every
// operation runs inside a single store transaction: session resolution,
// authorization, validation against current state and all derived writes
// (session fan-out included) commit or roll back together.
package service

import "time"

// nowOrDefault resolves an optional clock override. Services expose a Now
// field so tests can pin time; production wiring leaves it nil.
func nowOrDefault(f func() time.Time) time.Time {
	if f != nil {
		return f()
	}
	return time.Now().UTC()
}
