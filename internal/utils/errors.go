package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken        = errors.New("INVALID_TOKEN")
	ErrSessionNotFound     = errors.New("SESSION_NOT_FOUND")
	ErrRoleMismatch        = errors.New("ROLE_MISMATCH")
	ErrEmptyCart           = errors.New("EMPTY_CART")
	ErrUnavailableItems    = errors.New("UNAVAILABLE_ITEMS")
	ErrSubscriptionOnly    = errors.New("SUBSCRIPTION_ONLY_ITEMS")
	ErrNoActivePlan        = errors.New("NO_ACTIVE_PLAN")
	ErrInvalidPayment      = errors.New("INVALID_PAYMENT_DETAILS")
	ErrInvalidConfirmToken = errors.New("INVALID_CONFIRM_TOKEN")
	ErrInvalidFeatureList  = errors.New("INVALID_FEATURE_LIST")
	ErrAuthUserMissing     = errors.New("AUTH_USER_MISSING")
)
