package aesecb

import (
	"bytes"
	"fmt"
)

// pkcs7Pad always appends at least one byte, so a block-aligned input gains a full block.
func pkcs7Pad(src []byte, blockSize int) []byte {
	padding := blockSize - (len(src) % blockSize)
	out := make([]byte, len(src), len(src)+padding)
	copy(out, src)
	return append(out, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(src []byte, blockSize int) ([]byte, error) {
	length := len(src)
	if length == 0 || length%blockSize != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrBlockSize, length)
	}

	padding := int(src[length-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("%w: pad byte %d", ErrPadding, padding)
	}
	for i := length - padding; i < length; i++ {
		if src[i] != byte(padding) {
			return nil, fmt.Errorf("%w: mismatch at byte %d", ErrPadding, i)
		}
	}
	return src[:length-padding], nil
}
