package domain

import "time"

const (
	AuthOutcomeSuccess = "success"
	AuthOutcomeFailure = "failure"
)

// AuthEvent records the outcome of a single authentication attempt for the
// audit trail. Reason is empty on success and a short failure tag otherwise.
type AuthEvent struct {
	Username  string
	Outcome   string
	Reason    string
	RemoteIP  string
	Bypass    bool
	Timestamp time.Time
}
