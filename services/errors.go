package services

import "errors"

// User-facing entitlement and lifecycle conditions. These are recoverable
// request rejections, distinct from persistence faults.
var (
	ErrNoActiveSubscription  = errors.New("no active subscription found")
	ErrBadSubscriptionConfig = errors.New("invalid subscription configuration")
	ErrNoAttemptsLeft        = errors.New("no remaining attempts for this exam")
	ErrSessionNotFound       = errors.New("student exam not found")
	ErrExamNotFound          = errors.New("associated exam not found")
	ErrExamNotStartedYet     = errors.New("exam has not started yet")
	ErrExamEnded             = errors.New("exam has ended")
)
