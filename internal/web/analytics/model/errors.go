package model

import "github.com/Laisky/errors/v2"

// ErrInvalid indicates the caller supplied a bad event payload.
var ErrInvalid = errors.New("invalid argument")
