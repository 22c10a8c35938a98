package models

// AuditLog records one charge/use attempt, accepted or rejected. It is
// operational telemetry, separate from the committed PointHistory ledger.
type AuditLog struct {
	ID            string `json:"id"`
	UserID        int64  `json:"user_id"`
	Action        string `json:"action"`  // charge | use
	Amount        int64  `json:"amount"`
	Outcome       string `json:"outcome"` // accepted | rejected
	Detail        string `json:"detail,omitempty"`
	CreatedMillis int64  `json:"created_at_ms"`
}
