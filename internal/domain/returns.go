package domain

import (
	"time"

	"github.com/google/uuid"
)

// Return request statuses. pending -> (approved | rejected); approved -> refunded.
// No other transitions are permitted.
const (
	ReturnStatusPending  = "pending"
	ReturnStatusApproved = "approved"
	ReturnStatusRejected = "rejected"
	ReturnStatusRefunded = "refunded"
)

// Return-related domain errors.
var (
	ErrReturnNotFound      = &Error{Code: ENOTFOUND, Message: "Return request not found"}
	ErrReturnNotPending    = &Error{Code: ECONFLICT, Message: "Return request is not pending"}
	ErrReturnNotApproved   = &Error{Code: ECONFLICT, Message: "Only approved returns can be refunded"}
	ErrInvalidReturnAmount = &Error{Code: EINVALID, Message: "Return amount must be positive and not exceed the order total"}
)

// ReturnRequest is a customer request to return all or part of an order.
// It references the order, it does not own it.
type ReturnRequest struct {
	ID      uuid.UUID
	OrderID uuid.UUID
	Reason  string
	Details string
	Amount  float64
	Status  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionReturn reports whether a return request may move from one
// status to another.
func CanTransitionReturn(from, to string) bool {
	switch from {
	case ReturnStatusPending:
		return to == ReturnStatusApproved || to == ReturnStatusRejected
	case ReturnStatusApproved:
		return to == ReturnStatusRefunded
	}
	return false
}
