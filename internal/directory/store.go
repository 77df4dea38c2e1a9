// Package directory holds the employee directory engine: the record store,
// the derived views computed from it, the sort engine, and the controller
// that turns user events into state changes.
package directory

import (
	"errors"
	"fmt"

	"github.com/locvowork/employee_directory/internal/domain"
)

var (
	// ErrDuplicateID is returned when two seed records share an ID.
	ErrDuplicateID = errors.New("duplicate employee id")
	// ErrInvalidEmployee is returned for a seed record with a negative age or salary.
	ErrInvalidEmployee = errors.New("invalid employee")
	// ErrInvalidSortColumn is returned when a column outside the sortable set is activated.
	ErrInvalidSortColumn = errors.New("invalid sort column")
	// ErrInvalidViewMode is returned for a view mode other than table or cards.
	ErrInvalidViewMode = errors.New("invalid view mode")
)

// Store owns the current ordered sequence of employees.
// It has a single writer and is not safe for concurrent use.
type Store struct {
	records []domain.Employee
	version uint64
}

// NewStore copies seed into a new store after checking it.
func NewStore(seed []domain.Employee) (*Store, error) {
	seen := make(map[int]struct{}, len(seed))
	for _, e := range seed {
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.Age < 0 || e.Salary < 0 {
			return nil, fmt.Errorf("%w: id %d has negative age or salary", ErrInvalidEmployee, e.ID)
		}
	}
	return &Store{records: clone(seed)}, nil
}

// Records returns a copy of the current order.
func (s *Store) Records() []domain.Employee {
	return clone(s.records)
}

// Len is the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// Version changes every time the order is replaced.
func (s *Store) Version() uint64 {
	return s.version
}

// Reorder replaces the stored sequence.
func (s *Store) Reorder(seq []domain.Employee) {
	s.records = clone(seq)
	s.version++
}

// view exposes the backing slice to package-internal readers that promise
// not to modify it.
func (s *Store) view() []domain.Employee {
	return s.records
}

func clone(in []domain.Employee) []domain.Employee {
	out := make([]domain.Employee, len(in))
	copy(out, in)
	return out
}
