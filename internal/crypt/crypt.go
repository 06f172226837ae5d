package crypt

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"dario.lol/ddns/internal/constants"
	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/zalando/go-keyring"
)

const identityUser = "identity"

// IsEncrypted reports whether data looks like age output, armored or not.
func IsEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, []byte("age-encryption.org/")) ||
		bytes.HasPrefix(data, []byte(armor.Header))
}

// Encrypt returns data encrypted to recipients in ASCII armor, so the result
// can live in a YAML string.
func Encrypt(data []byte, recipients ...age.Recipient) ([]byte, error) {
	var encrypted bytes.Buffer
	aw := armor.NewWriter(&encrypted)
	w, err := age.Encrypt(aw, recipients...)
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write to encrypted writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close encrypted writer: %w", err)
	}
	if err := aw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close armor writer: %w", err)
	}
	return encrypted.Bytes(), nil
}

func Decrypt(encrypted []byte, identities ...age.Identity) ([]byte, error) {
	var src io.Reader = bytes.NewReader(encrypted)
	if bytes.HasPrefix(encrypted, []byte(armor.Header)) {
		src = armor.NewReader(src)
	}

	r, err := age.Decrypt(src, identities...)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data: %w", err)
	}
	decrypted, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read decrypted data: %w", err)
	}
	return decrypted, nil
}

// Identity loads the X25519 identity from the OS keyring, creating and
// storing one on first use.
func Identity() (*age.X25519Identity, error) {
	encoded, err := keyring.Get(constants.ServiceName, identityUser)
	if err == nil {
		return age.ParseX25519Identity(encoded)
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("failed to get identity from keyring: %w", err)
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("failed to generate identity: %w", err)
	}
	if err := keyring.Set(constants.ServiceName, identityUser, identity.String()); err != nil {
		return nil, fmt.Errorf("failed to set identity in keyring: %w", err)
	}
	return identity, nil
}

// Forget removes the identity, making previously saved secrets unreadable.
func Forget() error {
	err := keyring.Delete(constants.ServiceName, identityUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete identity from keyring: %w", err)
	}
	return nil
}
