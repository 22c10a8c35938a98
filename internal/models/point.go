package models

type TransactionType string

const (
	TxnCharge TransactionType = "CHARGE"
	TxnUse    TransactionType = "USE"
)

// UserPoint is a user's current point balance. A user with no prior
// activity reads as a zero-balance record; it is never deleted.
type UserPoint struct {
	ID           int64 `json:"id"`
	Point        int64 `json:"point"`
	UpdateMillis int64 `json:"update_millis"`
}

// PointHistory is one committed mutation. Amount is always the positive
// magnitude; the direction is carried by Type.
type PointHistory struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	Amount       int64           `json:"amount"`
	Type         TransactionType `json:"type"`
	UpdateMillis int64           `json:"update_millis"`
}
