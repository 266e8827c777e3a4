package model

import "github.com/Laisky/errors/v2"

var (
	// ErrNotFound document does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate unique field already taken
	ErrDuplicate = errors.New("already exists")
	// ErrInvalid caller supplied a bad argument
	ErrInvalid = errors.New("invalid argument")
	// ErrInUse category still referenced by posts or subcategories
	ErrInUse = errors.New("category in use")
)
