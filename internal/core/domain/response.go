package domain

const (
	CodeSuccess = 0
	CodeFailure = 1
)

// ProviderResponse is the body of every provider protocol answer.
// Payload is an *Envelope, a base64 string, raw JSON passed through from the
// ledger, or a plain object on the unencrypted GET callback.
type ProviderResponse struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Payload any    `json:"payload,omitempty"`
}
