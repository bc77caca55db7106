package service

import (
	"github.com/akashm011/Auth/pkg/cryptox"
)

// CredentialIssuer mints one-time credentials and hashes passwords.
// Generated passwords are handed back to the caller once and must never be
// logged or stored in the clear.
type CredentialIssuer struct {
	Hasher *cryptox.Hasher
}

// GenerateUsername returns "user_" followed by 8 lowercase hex characters.
func (c *CredentialIssuer) GenerateUsername() (string, error) {
	suffix, err := cryptox.RandomHex(4)
	if err != nil {
		return "", err
	}
	return "user_" + suffix, nil
}

// GeneratePassword returns 128 random bits as 32 hex characters.
func (c *CredentialIssuer) GeneratePassword() (string, error) {
	return cryptox.RandomHex(16)
}

func (c *CredentialIssuer) Hash(password string) (string, error) {
	return c.Hasher.Hash(password)
}

// Verify reports whether password matches hash. A malformed hash never
// verifies.
func (c *CredentialIssuer) Verify(password, hash string) bool {
	return c.Hasher.Verify(password, hash) == nil
}
