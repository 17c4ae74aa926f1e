// Package envelope seals and opens protocol payloads with tenant credentials.
package envelope

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"provider-bridge/internal/core/domain"
	"provider-bridge/pkg/aesecb"
)

// ErrNoKeyMatched is returned by Open when every key failed.
var ErrNoKeyMatched = errors.New("envelope: no key opened the payload")

// SealPayload marshals v and encrypts it under key.
func SealPayload(v any, key []byte) (string, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	ct, err := aesecb.Encrypt(plain, key)
	if err != nil {
		return "", fmt.Errorf("encrypt payload: %w", err)
	}
	return ct, nil
}

// Seal wraps v into a full envelope addressed from cred's tenant.
func Seal(v any, cred domain.Credential, now time.Time) (*domain.Envelope, error) {
	payload, err := SealPayload(v, cred.Secret)
	if err != nil {
		return nil, err
	}
	return &domain.Envelope{
		TenantID:  cred.TenantID,
		Timestamp: domain.NowMillis(now),
		Payload:   payload,
	}, nil
}

// Open tries keys in order and returns the first credential whose key both
// decrypts payload and yields valid JSON. A wrong key can occasionally produce
// valid PKCS#7 padding, so the JSON check is what makes a match.
func Open(payload string, keys []domain.Credential) (domain.Credential, []byte, error) {
	var lastErr error
	for _, cred := range keys {
		plain, err := aesecb.Decrypt(payload, cred.Secret)
		if err != nil {
			lastErr = err
			continue
		}
		if !json.Valid(plain) {
			lastErr = fmt.Errorf("key %d: plaintext is not JSON", cred.Index)
			continue
		}
		return cred, plain, nil
	}
	if lastErr == nil {
		return domain.Credential{}, nil, ErrNoKeyMatched
	}
	return domain.Credential{}, nil, fmt.Errorf("%w: %w", ErrNoKeyMatched, lastErr)
}
