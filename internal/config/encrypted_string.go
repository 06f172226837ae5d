package config

import (
	"bytes"
	"encoding"
	"fmt"

	"dario.lol/ddns/internal/crypt"
)

// EncryptedString is stored age-encrypted in the config file and held in
// plaintext in memory. Plain values are accepted on read so env overrides
// work.
type EncryptedString string

func (s *EncryptedString) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ""
		return nil
	}
	if !crypt.IsEncrypted(text) {
		*s = EncryptedString(text)
		return nil
	}

	identity, err := crypt.Identity()
	if err != nil {
		return fmt.Errorf("could not get identity from keyring: %w", err)
	}
	plain, err := crypt.Decrypt(text, identity)
	if err != nil {
		return fmt.Errorf("failed to decrypt field: %w", err)
	}
	*s = EncryptedString(bytes.TrimSpace(plain))
	return nil
}

func (s EncryptedString) MarshalText() ([]byte, error) {
	if len(s) == 0 {
		return nil, nil
	}
	identity, err := crypt.Identity()
	if err != nil {
		return nil, fmt.Errorf("could not get identity from keyring for encryption: %w", err)
	}

	encrypted, err := crypt.Encrypt([]byte(s), identity.Recipient())
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt field for saving: %w", err)
	}
	return encrypted, nil
}

// String never reveals the plaintext.
func (s EncryptedString) String() string {
	if s == "" {
		return ""
	}
	return "(encrypted)"
}

var _ encoding.TextUnmarshaler = (*EncryptedString)(nil)
var _ encoding.TextMarshaler = (*EncryptedString)(nil)
