package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// Envelope is the outer wire structure of every encrypted provider call.
// agency_uid is accepted as an alias of tenant_id on input.
type Envelope struct {
	TenantID  string `json:"tenant_id"`
	Timestamp string `json:"timestamp"`
	Payload   string `json:"payload"`
}

// UnmarshalJSON accepts both tenant_id and agency_uid, and timestamps sent as numbers.
func (e *Envelope) UnmarshalJSON(b []byte) error {
	var aux struct {
		TenantID  string     `json:"tenant_id"`
		AgencyUID string     `json:"agency_uid"`
		Timestamp FlexString `json:"timestamp"`
		Payload   string     `json:"payload"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.TenantID = firstNonEmpty(aux.TenantID, aux.AgencyUID)
	e.Timestamp = string(aux.Timestamp)
	e.Payload = aux.Payload
	return nil
}

// MissingFields lists the absent top-level envelope fields.
func (e Envelope) MissingFields() []string {
	var missing []string
	if e.TenantID == "" {
		missing = append(missing, "tenant_id")
	}
	if e.Timestamp == "" {
		missing = append(missing, "timestamp")
	}
	if e.Payload == "" {
		missing = append(missing, "payload")
	}
	return missing
}

// NowMillis formats t as epoch milliseconds, the protocol's timestamp format.
func NowMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
