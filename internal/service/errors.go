package service

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrAuthRequired     = errors.New("authentication required")
	ErrNotOrderOwner    = errors.New("not authorized for this order")
	ErrOrderNotPending  = errors.New("order is not pending payment")
	ErrNoPaymentSession = errors.New("no payment session for this order")
	ErrRuleNotFound     = errors.New("commission rule not found")
	ErrInvalidRule      = errors.New("invalid commission rule")
)
