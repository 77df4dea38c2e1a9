package directory

import (
	"context"
	"fmt"
	"slices"

	"github.com/locvowork/employee_directory/internal/domain"
)

// Option configures a Controller.
type Option func(*Controller)

// WithViewMode sets the initial view mode.
func WithViewMode(m domain.ViewMode) Option {
	return func(c *Controller) {
		if m == domain.ViewTable || m == domain.ViewCards {
			c.viewMode = m
		}
	}
}

// Controller owns the view state and routes events to the store and the
// sort engine. Derived views are cached until one of their inputs changes.
type Controller struct {
	store *Store

	searchQuery      string
	filterDepartment string
	sort             domain.SortState
	viewMode         domain.ViewMode

	departments memo[uint64, []string]
	statistics  memo[uint64, domain.Statistics]
	visible     memo[visibleKey, []domain.Employee]
}

type visibleKey struct {
	version    uint64
	query      string
	department string
}

type memo[K comparable, V any] struct {
	valid bool
	key   K
	value V
}

func (m *memo[K, V]) get(key K, compute func() V) V {
	if m.valid && m.key == key {
		return m.value
	}
	m.value = compute()
	m.key = key
	m.valid = true
	return m.value
}

// NewController wraps store with default view state: empty search, all
// departments, no sort, cards view.
func NewController(store *Store, opts ...Option) *Controller {
	c := &Controller{
		store:            store,
		filterDepartment: domain.AllDepartments,
		viewMode:         domain.ViewCards,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Store returns the underlying record store.
func (c *Controller) Store() *Store {
	return c.store
}

// SetSearchQuery replaces the search text.
func (c *Controller) SetSearchQuery(text string) {
	c.searchQuery = text
}

// SetFilterDepartment selects a department or domain.AllDepartments.
// Values outside the department set are accepted and simply match nothing.
func (c *Controller) SetFilterDepartment(value string) {
	c.filterDepartment = value
}

// SetViewMode switches between table and cards.
func (c *Controller) SetViewMode(mode domain.ViewMode) error {
	if mode != domain.ViewTable && mode != domain.ViewCards {
		return fmt.Errorf("%w: %q", ErrInvalidViewMode, mode)
	}
	c.viewMode = mode
	return nil
}

// HandleSort activates column and reorders the store. An unknown column
// leaves both the sort state and the store untouched.
func (c *Controller) HandleSort(column string) error {
	col, ok := domain.ParseSortColumn(column)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSortColumn, column)
	}
	next, err := Transition(c.sort, col)
	if err != nil {
		return err
	}
	sorted := SortRecords(c.store.view(), next)
	c.sort = next
	c.store.Reorder(sorted)
	return nil
}

// SearchQuery is the current search text.
func (c *Controller) SearchQuery() string { return c.searchQuery }

// FilterDepartment is the selected department, domain.AllDepartments by default.
func (c *Controller) FilterDepartment() string { return c.filterDepartment }

// SortState is the active column and direction; unset until the first sort.
func (c *Controller) SortState() domain.SortState { return c.sort }

// ViewMode is the current presentation, table or cards.
func (c *Controller) ViewMode() domain.ViewMode { return c.viewMode }

// Departments is the memoized department list of the current store order.
func (c *Controller) Departments() []string {
	out := c.departments.get(c.store.Version(), func() []string {
		return Departments(c.store.view())
	})
	return slices.Clone(out)
}

// Statistics is the memoized aggregate over the whole store.
func (c *Controller) Statistics() domain.Statistics {
	return c.statistics.get(c.store.Version(), func() domain.Statistics {
		return ComputeStatistics(c.store.view())
	})
}

// VisibleRecords is the memoized filtered and searched subset.
func (c *Controller) VisibleRecords() []domain.Employee {
	key := visibleKey{
		version:    c.store.Version(),
		query:      c.searchQuery,
		department: c.filterDepartment,
	}
	out := c.visible.get(key, func() []domain.Employee {
		return VisibleRecords(c.store.view(), c.searchQuery, c.filterDepartment)
	})
	return clone(out)
}

// Snapshot bundles every output a renderer consumes.
func (c *Controller) Snapshot() domain.DirectoryView {
	return domain.DirectoryView{
		Statistics:       c.Statistics(),
		Departments:      c.Departments(),
		Employees:        c.VisibleRecords(),
		SearchQuery:      c.searchQuery,
		FilterDepartment: c.filterDepartment,
		Sort:             c.sort,
		ViewMode:         c.viewMode,
	}
}

// Load seeds a new store from src and returns a controller over it.
func Load(ctx context.Context, src domain.EmployeeSource, opts ...Option) (*Controller, error) {
	employees, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	store, err := NewStore(employees)
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}
	return NewController(store, opts...), nil
}
