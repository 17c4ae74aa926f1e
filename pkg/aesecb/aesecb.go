// Package aesecb implements the envelope cipher used by the gaming provider
// protocol: AES-256 in ECB mode, PKCS#7 padding, standard base64 text.
//
// ECB has no IV and leaks equal plaintext blocks. It is kept because the
// upstream provider decrypts with exactly this construction; switching to
// CBC or GCM here breaks every tenant integration. Do not "upgrade" it.
package aesecb

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// Encrypt seals plaintext under key and returns base64 ciphertext.
func Encrypt(plaintext, key []byte) (string, error) {
	block, err := newCipher(key)
	if err != nil {
		return "", err
	}

	bs := block.BlockSize()
	padded := pkcs7Pad(plaintext, bs)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += bs {
		block.Encrypt(out[i:i+bs], padded[i:i+bs])
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt opens base64 ciphertext produced by Encrypt. Every returned error
// wraps ErrDecrypt and one of ErrMalformedBase64, ErrBlockSize, ErrPadding
// or ErrKeySize.
func Decrypt(ciphertext string, key []byte) ([]byte, error) {
	block, err := newCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, ErrMalformedBase64)
	}

	bs := block.BlockSize()
	if len(raw) == 0 || len(raw)%bs != 0 {
		return nil, fmt.Errorf("%w: %w: length %d", ErrDecrypt, ErrBlockSize, len(raw))
	}

	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i += bs {
		block.Decrypt(out[i:i+bs], raw[i:i+bs])
	}

	plain, err := pkcs7Unpad(out, bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	return plain, nil
}

// ParseKey accepts a secret as 32 raw characters, 64 hex characters or
// standard base64 of 32 bytes, in that order of preference.
func ParseKey(secret string) ([]byte, error) {
	if len(secret) == KeySize {
		return []byte(secret), nil
	}
	if len(secret) == hex.EncodedLen(KeySize) {
		if k, err := hex.DecodeString(secret); err == nil {
			return k, nil
		}
	}
	if k, err := base64.StdEncoding.DecodeString(secret); err == nil && len(k) == KeySize {
		return k, nil
	}
	return nil, fmt.Errorf("%w: got %d characters", ErrKeySize, len(secret))
}

// GenerateKey returns a random key encoded as 32 alphanumeric characters,
// the form providers usually hand out.
func GenerateKey() (string, error) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	buf := make([]byte, KeySize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}

func newCipher(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrKeySize, len(key))
	}
	return aes.NewCipher(key)
}
