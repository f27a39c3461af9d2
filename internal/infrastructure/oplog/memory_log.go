// Package oplog holds the bounded, newest-first log of successful operations.
package oplog

import (
	"sync"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// MemoryLog keeps records in a slice, newest first.
type MemoryLog struct {
	mu       sync.Mutex
	capacity int
	records  []domain.OperationRecord
}

// NewMemoryLog creates an empty log; non-positive capacity uses domain.DefaultLogCapacity.
func NewMemoryLog(capacity int) *MemoryLog {
	if capacity <= 0 {
		capacity = domain.DefaultLogCapacity
	}
	return &MemoryLog{capacity: capacity}
}

// Record prepends rec and drops whatever falls past the capacity.
func (l *MemoryLog) Record(rec domain.OperationRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]domain.OperationRecord, 0, min(len(l.records)+1, l.capacity))
	next = append(next, rec)
	for _, old := range l.records {
		if len(next) == l.capacity {
			break
		}
		next = append(next, old)
	}
	l.records = next
	return nil
}

// Records returns a copy so callers cannot mutate the log.
func (l *MemoryLog) Records() ([]domain.OperationRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.OperationRecord, len(l.records))
	copy(out, l.records)
	return out, nil
}

func (l *MemoryLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Clear empties the log.
func (l *MemoryLog) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	return nil
}

// Capacity returns the maximum number of records kept.
func (l *MemoryLog) Capacity() int {
	return l.capacity
}

var _ ports.OperationLog = (*MemoryLog)(nil)
