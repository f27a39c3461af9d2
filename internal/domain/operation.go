package domain

import "time"

// KeyNotApplicable is stored instead of a key for keyless algorithms.
const KeyNotApplicable = "N/A"

// ProcessRequest carries the inputs of one transformation.
type ProcessRequest struct {
	Text      string
	Key       string
	Algorithm Algorithm
	Direction Direction
}

// ProcessResult is the output of a successful transformation.
type ProcessResult struct {
	Result string
	Record OperationRecord
}

// OperationRecord is an immutable snapshot of one successful transformation.
type OperationRecord struct {
	ID        string    `json:"id"`
	Result    string    `json:"result"`
	Algorithm string    `json:"algorithm"`
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
	Timestamp time.Time `json:"timestamp"`
}

// HasKey reports whether the record carries a real key.
func (r OperationRecord) HasKey() bool {
	return r.Key != "" && r.Key != KeyNotApplicable
}
