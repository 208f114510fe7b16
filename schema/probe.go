package schema

import (
	"encoding/json"
)

// ProbeRecord is one entry of the per-oracle verification audit trail kept
// in the local KV store. The oracle record itself only carries the latest
// verified flag; the trail keeps the history.
type ProbeRecord struct {
	OracleId  string          `json:"oracleId"`
	Ok        bool            `json:"ok"`
	ErrMsg    string          `json:"errMsg,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"` // unix seconds
}
