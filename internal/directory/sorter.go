package directory

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/locvowork/employee_directory/internal/domain"
)

// Transition applies a column activation to the sort state.
// Activating the active column flips the direction; any other sortable
// column becomes active in ascending order.
func Transition(state domain.SortState, column domain.SortColumn) (domain.SortState, error) {
	if _, ok := domain.ParseSortColumn(string(column)); !ok {
		return state, fmt.Errorf("%w: %q", ErrInvalidSortColumn, column)
	}
	if state.Column == column {
		return domain.SortState{Column: column, Direction: state.Direction.Opposite()}, nil
	}
	return domain.SortState{Column: column, Direction: domain.Ascending}, nil
}

// SortRecords returns a new slice ordered by state. The sort is stable.
// Empty strings count as missing and go last in either direction.
// An unset column returns an unchanged copy.
func SortRecords(records []domain.Employee, state domain.SortState) []domain.Employee {
	out := clone(records)
	less := comparator(state.Column)
	if less == nil {
		return out
	}
	sign := state.Direction.Sign()
	slices.SortStableFunc(out, func(a, b domain.Employee) int {
		return less(a, b, sign)
	})
	return out
}

type compareFunc func(a, b domain.Employee, sign int) int

func comparator(c domain.SortColumn) compareFunc {
	switch c {
	case domain.SortAge:
		return func(a, b domain.Employee, sign int) int {
			return sign * cmp.Compare(a.Age, b.Age)
		}
	case domain.SortSalary:
		return func(a, b domain.Employee, sign int) int {
			return sign * cmp.Compare(a.Salary, b.Salary)
		}
	case domain.SortLocation:
		return func(a, b domain.Employee, sign int) int {
			return compareText(a.Location, b.Location, sign)
		}
	case domain.SortDepartment:
		return func(a, b domain.Employee, sign int) int {
			return compareText(a.Department, b.Department, sign)
		}
	default:
		return nil
	}
}

func compareText(a, b string, sign int) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return sign * cmp.Compare(a, b)
}
