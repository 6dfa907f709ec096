package cli

import (
	"crypto/subtle"

	"github.com/roach88/innkeep/internal/config"
)

// checkLogin compares the supplied user and password with the configured
// credential in constant time.
func checkLogin(want config.Credentials, user, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(want.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(want.Password)) == 1
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}
