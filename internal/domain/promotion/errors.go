package promotion

import "errors"

var (
	ErrPromotionNotFound  = errors.New("promotion not found")
	ErrAssignmentNotFound = errors.New("promotion assignment not found")
	ErrUnknownType        = errors.New("unknown promotion type")
	ErrMissingThreshold   = errors.New("promotion params missing threshold")
	ErrMissingAmount      = errors.New("promotion params missing amount")
	ErrMissingTiers       = errors.New("promotion params missing tiers")
	ErrInvalidUnitSize    = errors.New("tier unit size must be positive")
)
