package aesecb

import "errors"

var (
	// ErrDecrypt is wrapped by every error Decrypt returns.
	ErrDecrypt = errors.New("aesecb: decryption failed")

	// ErrMalformedBase64 means the ciphertext is not valid standard base64.
	ErrMalformedBase64 = errors.New("aesecb: malformed base64")

	// ErrBlockSize means the decoded ciphertext is empty or not a multiple of the AES block size.
	ErrBlockSize = errors.New("aesecb: ciphertext is not a multiple of the block size")

	// ErrPadding means PKCS#7 padding validation failed after decryption.
	ErrPadding = errors.New("aesecb: invalid PKCS#7 padding")

	// ErrKeySize means the key is not 32 bytes.
	ErrKeySize = errors.New("aesecb: key must be 32 bytes")
)
