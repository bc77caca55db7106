package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/akashm011/Auth/pkg/cryptox"
	"github.com/akashm011/Auth/pkg/jwtx"
)

// LoadSigner reads the Ed25519 session signing key at path, generating and
// persisting one on first start. Deleting the file invalidates every
// outstanding session token.
func LoadSigner(path string, logger *slog.Logger) (*jwtx.EdDSASigner, error) {
	path = filepath.Clean(path)

	pemBytes, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		pemBytes, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("create key directory: %w", err)
		}
		if err := os.WriteFile(path, pemBytes, 0600); err != nil {
			return nil, fmt.Errorf("write signing key: %w", err)
		}
		logger.Warn("generated new session signing key", "path", path)
	case err != nil:
		return nil, fmt.Errorf("read signing key: %w", err)
	}

	key, err := cryptox.ParseEd25519Key(pemBytes)
	if err != nil {
		return nil, err
	}

	signer, err := jwtx.NewSignerEdDSA(key)
	if err != nil {
		return nil, err
	}
	logger.Info("session signing key loaded", "alg", signer.Alg(), "kid", signer.KID())
	return signer, nil
}
