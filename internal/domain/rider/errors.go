package rider

import "errors"

var (
	ErrRiderNotFound   = errors.New("rider not found")
	ErrLicenseIDExists = errors.New("license id already registered")
	ErrBranchNotFound  = errors.New("branch not found")
)
