package services

import (
	"errors"
	"fmt"
)

// Rejection kinds surfaced to callers. Handlers match with errors.Is.
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrPointOverflow      = errors.New("point balance overflow")
)

func validateCharge(amount, maxCharge int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: charge amount must be positive, got %d", ErrInvalidAmount, amount)
	}
	if amount > maxCharge {
		return fmt.Errorf("%w: charge amount %d exceeds per-transaction limit %d", ErrInvalidAmount, amount, maxCharge)
	}
	return nil
}

func validateUse(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: use amount must be positive, got %d", ErrInvalidAmount, amount)
	}
	return nil
}

// computeNewBalance returns current+delta, rejecting int64 wraparound
// before the sign check so an overflow is never reported as an
// insufficient balance.
func computeNewBalance(current, delta int64) (int64, error) {
	sum := current + delta
	if (delta > 0 && sum < current) || (delta < 0 && sum > current) {
		return 0, fmt.Errorf("%w: balance %d cannot absorb delta %d", ErrPointOverflow, current, delta)
	}
	if sum < 0 {
		return 0, fmt.Errorf("%w: balance %d is short of %d", ErrInsufficientPoints, current, -delta)
	}
	return sum, nil
}
