package domain

import (
	"fmt"
	"strings"
)

// ==================== EMPLOYEE DIRECTORY ====================

// AllDepartments is the filter value that lets every department through.
const AllDepartments = "all"

// DepartmentOptions returns the filter choices: AllDepartments first, then
// departments in order. A department literally named "all" is already
// covered by the first entry and is not repeated.
func DepartmentOptions(departments []string) []string {
	options := make([]string, 0, len(departments)+1)
	options = append(options, AllDepartments)
	for _, d := range departments {
		if d != AllDepartments {
			options = append(options, d)
		}
	}
	return options
}

// Employee is a single directory record.
type Employee struct {
	ID         int     `json:"id" yaml:"id" db:"id"`
	Name       string  `json:"name" yaml:"name" db:"name"`
	Age        int     `json:"age" yaml:"age" db:"age"`
	Location   string  `json:"location" yaml:"location" db:"location"`
	Salary     float64 `json:"salary" yaml:"salary" db:"salary"`
	Department string  `json:"department" yaml:"department" db:"department"`
	Image      string  `json:"image" yaml:"image" db:"image"`
}

// Statistics holds the aggregate figures shown above the directory.
type Statistics struct {
	TotalEmployees int   `json:"total_employees"`
	AverageSalary  int64 `json:"average_salary"`
	AverageAge     int64 `json:"average_age"`
	Locations      int   `json:"locations"`
}

// ==================== SORTING ====================

// SortColumn identifies a sortable attribute. The zero value means no sort
// has been requested yet.
type SortColumn string

const (
	SortUnset      SortColumn = ""
	SortAge        SortColumn = "age"
	SortLocation   SortColumn = "location"
	SortSalary     SortColumn = "salary"
	SortDepartment SortColumn = "department"
)

// SortableColumns lists the columns in header order.
var SortableColumns = []SortColumn{SortAge, SortLocation, SortSalary, SortDepartment}

// ParseSortColumn maps a column name onto a SortColumn.
func ParseSortColumn(s string) (SortColumn, bool) {
	c := SortColumn(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortableColumns {
		if c == known {
			return c, true
		}
	}
	return SortUnset, false
}

// Title returns the column header label.
func (c SortColumn) Title() string {
	if c == SortUnset {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// SortDirection is ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// Opposite flips the direction.
func (d SortDirection) Opposite() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Sign is the multiplier applied to a comparison result.
func (d SortDirection) Sign() int {
	if d == Descending {
		return -1
	}
	return 1
}

func (d SortDirection) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// MarshalText lets the direction appear as a word in JSON.
func (d SortDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts the words produced by MarshalText.
func (d *SortDirection) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "ascending", "asc":
		*d = Ascending
	case "descending", "desc":
		*d = Descending
	default:
		return fmt.Errorf("unknown sort direction %q", text)
	}
	return nil
}

// SortState is the active column together with its direction.
type SortState struct {
	Column    SortColumn    `json:"column"`
	Direction SortDirection `json:"direction"`
}

// ==================== VIEW STATE ====================

// ViewMode selects how the visible records are laid out.
type ViewMode string

const (
	ViewTable ViewMode = "table"
	ViewCards ViewMode = "cards"
)

// ParseViewMode validates a view mode name.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewTable:
		return ViewTable, nil
	case ViewCards:
		return ViewCards, nil
	default:
		return "", fmt.Errorf("unknown view mode %q", s)
	}
}

// Toggle returns the other view mode.
func (m ViewMode) Toggle() ViewMode {
	if m == ViewTable {
		return ViewCards
	}
	return ViewTable
}

// DirectoryView is everything a renderer needs to draw the page.
type DirectoryView struct {
	Statistics       Statistics `json:"statistics"`
	Departments      []string   `json:"departments"`
	Employees        []Employee `json:"employees"`
	SearchQuery      string     `json:"search_query"`
	FilterDepartment string     `json:"filter_department"`
	Sort             SortState  `json:"sort"`
	ViewMode         ViewMode   `json:"view_mode"`
}
