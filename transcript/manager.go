package transcript

import "time"

// Manager is the interface for saved transcript operations
type Manager interface {
	Save(rec *Record) error

	Load(id string) (*Record, error)
	LoadMetadata(id string) (*Meta, error)
	List(filter ListFilter) ([]Meta, error)

	Delete(id string) error
}

// ListFilter filters transcript listing
type ListFilter struct {
	SessionID string
	Reason    EndReason
	After     time.Time
	Before    time.Time
	Limit     int
}

func (f ListFilter) matches(m *Meta) bool {
	if f.SessionID != "" && m.SessionID != f.SessionID {
		return false
	}
	if f.Reason != "" && m.Reason != f.Reason {
		return false
	}
	if !f.After.IsZero() && m.StartedAt.Before(f.After) {
		return false
	}
	if !f.Before.IsZero() && m.StartedAt.After(f.Before) {
		return false
	}
	return true
}
