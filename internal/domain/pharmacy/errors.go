package pharmacy

import "errors"

var (
	ErrItemNotFound         = errors.New("inventory item not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrInvalidTransition    = errors.New("invalid prescription status transition")
)
