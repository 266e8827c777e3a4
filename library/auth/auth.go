// Package auth wraps the gin-middlewares auth instance.
package auth

import (
	ginMw "github.com/Laisky/gin-middlewares/v7"
)

var Instance *ginMw.Auth

// Initialize creates the shared auth instance with the HS256 secret.
func Initialize(secret []byte) (err error) {
	Instance, err = ginMw.NewAuth(secret)
	return err
}
