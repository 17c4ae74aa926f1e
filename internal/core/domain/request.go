package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"provider-bridge/pkg/money"
)

// Operation names one of the provider protocol calls.
type Operation string

const (
	OperationCallback        Operation = "callback"
	OperationLaunch          Operation = "launch"
	OperationTransfer        Operation = "transfer"
	OperationTransactionList Operation = "transaction_list"
)

// DecryptedRequest is the typed plaintext of an envelope. Each operation has
// its own variant; business code switches on the concrete type.
type DecryptedRequest interface {
	Operation() Operation
	// PayloadTenantID is the tenant named inside the plaintext, if any.
	PayloadTenantID() string
	Validate() error
}

// FieldError reports missing or malformed fields inside a decrypted payload.
type FieldError struct {
	Missing []string
	Invalid string
	Reason  string
}

func (e *FieldError) Error() string {
	if len(e.Missing) > 0 {
		return "Missing required parameters: " + strings.Join(e.Missing, ", ")
	}
	return fmt.Sprintf("Invalid parameter %s: %s", e.Invalid, e.Reason)
}

func missing(pairs ...string) error {
	var names []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			names = append(names, pairs[i])
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &FieldError{Missing: names}
}

// CallbackRequest is the canonical balance adjustment pushed by the provider.
type CallbackRequest struct {
	TenantID      string
	MemberAccount string
	GameUID       string
	Amount        string
	Timestamp     string
}

func (r *CallbackRequest) UnmarshalJSON(b []byte) error {
	var aux struct {
		TenantID      string     `json:"tenant_id"`
		AgencyUID     string     `json:"agency_uid"`
		MemberAccount string     `json:"member_account"`
		GameUID       FlexString `json:"game_uid"`
		Amount        FlexString `json:"amount"`
		CreditAmount  FlexString `json:"credit_amount"`
		Timestamp     FlexString `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = CallbackRequest{
		TenantID:      firstNonEmpty(aux.TenantID, aux.AgencyUID),
		MemberAccount: aux.MemberAccount,
		GameUID:       aux.GameUID.String(),
		Amount:        firstNonEmpty(aux.Amount.String(), aux.CreditAmount.String()),
		Timestamp:     aux.Timestamp.String(),
	}
	return nil
}

func (r *CallbackRequest) Operation() Operation   { return OperationCallback }
func (r *CallbackRequest) PayloadTenantID() string { return r.TenantID }

func (r *CallbackRequest) Validate() error {
	if err := missing("member_account", r.MemberAccount, "amount", r.Amount); err != nil {
		return err
	}
	if _, err := money.Parse(r.Amount); err != nil {
		return &FieldError{Invalid: "amount", Reason: err.Error()}
	}
	return nil
}

// LaunchRequest asks for a seamless game session URL.
type LaunchRequest struct {
	TenantID      string
	MemberAccount string
	GameUID       string
	Timestamp     string
	CreditAmount  string
	CurrencyCode  string
	Language      string
	HomeURL       string
	Platform      string
	CallbackURL   string
}

func (r *LaunchRequest) UnmarshalJSON(b []byte) error {
	var aux struct {
		TenantID      string     `json:"tenant_id"`
		AgencyUID     string     `json:"agency_uid"`
		MemberAccount string     `json:"member_account"`
		GameUID       FlexString `json:"game_uid"`
		Timestamp     FlexString `json:"timestamp"`
		CreditAmount  FlexString `json:"credit_amount"`
		CurrencyCode  string     `json:"currency_code"`
		Language      string     `json:"language"`
		HomeURL       string     `json:"home_url"`
		Platform      FlexString `json:"platform"`
		CallbackURL   string     `json:"callback_url"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = LaunchRequest{
		TenantID:      firstNonEmpty(aux.TenantID, aux.AgencyUID),
		MemberAccount: aux.MemberAccount,
		GameUID:       aux.GameUID.String(),
		Timestamp:     aux.Timestamp.String(),
		CreditAmount:  aux.CreditAmount.String(),
		CurrencyCode:  aux.CurrencyCode,
		Language:      aux.Language,
		HomeURL:       aux.HomeURL,
		Platform:      aux.Platform.String(),
		CallbackURL:   aux.CallbackURL,
	}
	return nil
}

// MarshalJSON writes the wire form sent to the ledger and upstream providers.
func (r LaunchRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AgencyUID     string `json:"agency_uid"`
		MemberAccount string `json:"member_account"`
		GameUID       string `json:"game_uid"`
		Timestamp     string `json:"timestamp"`
		CreditAmount  string `json:"credit_amount,omitempty"`
		CurrencyCode  string `json:"currency_code,omitempty"`
		Language      string `json:"language,omitempty"`
		HomeURL       string `json:"home_url,omitempty"`
		Platform      string `json:"platform,omitempty"`
		CallbackURL   string `json:"callback_url,omitempty"`
	}{
		AgencyUID:     r.TenantID,
		MemberAccount: r.MemberAccount,
		GameUID:       r.GameUID,
		Timestamp:     r.Timestamp,
		CreditAmount:  r.CreditAmount,
		CurrencyCode:  r.CurrencyCode,
		Language:      r.Language,
		HomeURL:       r.HomeURL,
		Platform:      r.Platform,
		CallbackURL:   r.CallbackURL,
	})
}

func (r *LaunchRequest) Operation() Operation   { return OperationLaunch }
func (r *LaunchRequest) PayloadTenantID() string { return r.TenantID }

func (r *LaunchRequest) Validate() error {
	return missing("member_account", r.MemberAccount, "game_uid", r.GameUID)
}

// TransferRequest moves money by the sign of CreditAmount: positive deposits,
// negative withdraws, zero only reads the balance.
type TransferRequest struct {
	TenantID      string
	MemberAccount string
	GameUID       string
	Timestamp     string
	CreditAmount  string
	CurrencyCode  string
	Language      string
	HomeURL       string
	Platform      string
	TransferID    string
}

func (r *TransferRequest) UnmarshalJSON(b []byte) error {
	var aux struct {
		TenantID      string     `json:"tenant_id"`
		AgencyUID     string     `json:"agency_uid"`
		MemberAccount string     `json:"member_account"`
		GameUID       FlexString `json:"game_uid"`
		Timestamp     FlexString `json:"timestamp"`
		CreditAmount  FlexString `json:"credit_amount"`
		CurrencyCode  string     `json:"currency_code"`
		Language      string     `json:"language"`
		HomeURL       string     `json:"home_url"`
		Platform      FlexString `json:"platform"`
		TransferID    FlexString `json:"transfer_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = TransferRequest{
		TenantID:      firstNonEmpty(aux.TenantID, aux.AgencyUID),
		MemberAccount: aux.MemberAccount,
		GameUID:       aux.GameUID.String(),
		Timestamp:     aux.Timestamp.String(),
		CreditAmount:  aux.CreditAmount.String(),
		CurrencyCode:  aux.CurrencyCode,
		Language:      aux.Language,
		HomeURL:       aux.HomeURL,
		Platform:      aux.Platform.String(),
		TransferID:    aux.TransferID.String(),
	}
	return nil
}

func (r *TransferRequest) Operation() Operation   { return OperationTransfer }
func (r *TransferRequest) PayloadTenantID() string { return r.TenantID }

func (r *TransferRequest) Validate() error {
	if err := missing("member_account", r.MemberAccount, "credit_amount", r.CreditAmount); err != nil {
		return err
	}
	amount, err := money.Parse(r.CreditAmount)
	if err != nil {
		return &FieldError{Invalid: "credit_amount", Reason: err.Error()}
	}
	if amount != 0 && strings.TrimSpace(r.TransferID) == "" {
		return &FieldError{Missing: []string{"transfer_id"}}
	}
	return nil
}

// Amount returns CreditAmount in minor units. Call Validate first.
func (r *TransferRequest) Amount() int64 {
	v, _ := money.Parse(r.CreditAmount)
	return v
}

// TransactionListQuery pages through a tenant's game transactions.
type TransactionListQuery struct {
	TenantID  string
	Timestamp string
	FromDate  string
	ToDate    string
	PageNo    string
	PageSize  string
}

func (q *TransactionListQuery) UnmarshalJSON(b []byte) error {
	var aux struct {
		TenantID  string     `json:"tenant_id"`
		AgencyUID string     `json:"agency_uid"`
		Timestamp FlexString `json:"timestamp"`
		FromDate  FlexString `json:"from_date"`
		ToDate    FlexString `json:"to_date"`
		PageNo    FlexString `json:"page_no"`
		PageSize  FlexString `json:"page_size"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*q = TransactionListQuery{
		TenantID:  firstNonEmpty(aux.TenantID, aux.AgencyUID),
		Timestamp: aux.Timestamp.String(),
		FromDate:  aux.FromDate.String(),
		ToDate:    aux.ToDate.String(),
		PageNo:    aux.PageNo.String(),
		PageSize:  aux.PageSize.String(),
	}
	return nil
}

func (q *TransactionListQuery) Operation() Operation   { return OperationTransactionList }
func (q *TransactionListQuery) PayloadTenantID() string { return q.TenantID }

func (q *TransactionListQuery) Validate() error {
	if err := missing("from_date", q.FromDate, "to_date", q.ToDate); err != nil {
		return err
	}
	if _, err := strconv.ParseInt(q.FromDate, 10, 64); err != nil {
		return &FieldError{Invalid: "from_date", Reason: "must be epoch milliseconds"}
	}
	if _, err := strconv.ParseInt(q.ToDate, 10, 64); err != nil {
		return &FieldError{Invalid: "to_date", Reason: "must be epoch milliseconds"}
	}
	for _, f := range [][2]string{{"page_no", q.PageNo}, {"page_size", q.PageSize}} {
		if f[1] == "" {
			continue
		}
		if _, err := strconv.Atoi(f[1]); err != nil {
			return &FieldError{Invalid: f[0], Reason: "must be an integer"}
		}
	}
	return nil
}

// ParseRequest decodes plaintext into the variant for op.
func ParseRequest(op Operation, plaintext []byte) (DecryptedRequest, error) {
	var req DecryptedRequest
	switch op {
	case OperationCallback:
		req = &CallbackRequest{}
	case OperationLaunch:
		req = &LaunchRequest{}
	case OperationTransfer:
		req = &TransferRequest{}
	case OperationTransactionList:
		req = &TransactionListQuery{}
	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	if err := json.Unmarshal(plaintext, req); err != nil {
		return nil, &FieldError{Invalid: "payload", Reason: err.Error()}
	}
	return req, nil
}
