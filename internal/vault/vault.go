// Package vault seals credentials at rest with a per-install secret.
package vault

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	sealVersion   = 1
	sealAlgorithm = "xchacha20-poly1305"
	sealKDF       = "argon2id"
	secretSize    = 32
)

// ErrSecretMismatch is returned when a sealed value cannot be opened with the given secret.
var ErrSecretMismatch = errors.New("vault: secret does not open sealed value")

// Sealed is the stored form of an encrypted value.
type Sealed struct {
	Version    int       `json:"version"`
	Algorithm  string    `json:"algorithm"`
	KDF        string    `json:"kdf"`
	KDFParams  KDFParams `json:"kdf_params"`
	Nonce      string    `json:"nonce"`
	Ciphertext string    `json:"ciphertext"`
}

// KDFParams holds Argon2id parameters.
type KDFParams struct {
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"`
	Threads uint8  `json:"threads"`
	Salt    string `json:"salt"` // base64-encoded
}

// DefaultKDFParams returns Argon2id parameters sized for opening on every launch.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:    1,
		Memory:  19 * 1024,
		Threads: 1,
	}
}

// Seal encrypts plaintext under a key derived from secret.
func Seal(plaintext, secret []byte) (*Sealed, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	params := DefaultKDFParams()
	params.Salt = base64.StdEncoding.EncodeToString(salt)

	aead, err := chacha20poly1305.NewX(deriveKey(secret, salt, params))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return &Sealed{
		Version:    sealVersion,
		Algorithm:  sealAlgorithm,
		KDF:        sealKDF,
		KDFParams:  params,
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(aead.Seal(nil, nonce, plaintext, nil)),
	}, nil
}

// Open decrypts a sealed value.
func Open(sealed *Sealed, secret []byte) ([]byte, error) {
	if sealed == nil {
		return nil, errors.New("vault: nil sealed value")
	}
	if sealed.Version != sealVersion {
		return nil, fmt.Errorf("unsupported sealed version: %d", sealed.Version)
	}
	if sealed.Algorithm != sealAlgorithm {
		return nil, fmt.Errorf("unsupported algorithm: %s", sealed.Algorithm)
	}
	if sealed.KDF != sealKDF {
		return nil, fmt.Errorf("unsupported KDF: %s", sealed.KDF)
	}

	salt, err := base64.StdEncoding.DecodeString(sealed.KDFParams.Salt)
	if err != nil {
		return nil, fmt.Errorf("decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(sealed.Nonce)
	if err != nil {
		return nil, fmt.Errorf("decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(sealed.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decode ciphertext: %w", err)
	}

	aead, err := chacha20poly1305.NewX(deriveKey(secret, salt, sealed.KDFParams))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrSecretMismatch
	}
	return plaintext, nil
}

// SealString seals s and returns the JSON encoding, ready for a text column.
func SealString(s string, secret []byte) (string, error) {
	sealed, err := Seal([]byte(s), secret)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(sealed)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// OpenString reverses SealString.
func OpenString(encoded string, secret []byte) (string, error) {
	var sealed Sealed
	if err := json.Unmarshal([]byte(encoded), &sealed); err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}
	plaintext, err := Open(&sealed, secret)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// LoadOrCreateSecret reads the install secret at path, creating it on first use.
func LoadOrCreateSecret(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) != secretSize {
			return nil, fmt.Errorf("secret file %s is corrupt (%d bytes)", path, len(data))
		}
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	secret := make([]byte, secretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, err
	}
	return secret, nil
}

func deriveKey(secret, salt []byte, params KDFParams) []byte {
	return argon2.IDKey(secret, salt, params.Time, params.Memory, params.Threads, chacha20poly1305.KeySize)
}
