package model

import "github.com/Laisky/errors/v2"

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate indicates a unique field already has this value.
var ErrDuplicate = errors.New("already exists")

// ErrInvalid indicates the caller supplied a bad argument.
var ErrInvalid = errors.New("invalid argument")

// ErrForbidden indicates the caller may not touch this document.
var ErrForbidden = errors.New("forbidden")
