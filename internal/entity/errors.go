package entity

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnauthorized  = errors.New("unauthorized")
)

var (
	ErrBadVectorDim  = errors.New("face vector has wrong dimensionality")
	ErrNoTemplate    = errors.New("employee has no enrolled template")
	ErrNoFace        = errors.New("no face detected in image")
	ErrMultipleFaces = errors.New("multiple faces detected in image")
	ErrExtraction    = errors.New("embedding extraction failed")
)

var (
	ErrPinFormat         = errors.New("pin must be 4 to 8 digits")
	ErrInvalidAccessType = errors.New("invalid access type")
	ErrInvalidStatus     = errors.New("invalid employee status")
	ErrInvalidRole       = errors.New("invalid employee role")
	ErrInvalidLevel      = errors.New("access level must be between 1 and 4")
)
