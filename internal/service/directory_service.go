package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/locvowork/employee_directory/internal/directory"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
)

// DirectoryService serializes events from concurrent callers onto a single
// directory controller. Every event returns the snapshot it produced so
// callers never observe a half-applied state.
type DirectoryService struct {
	mu       sync.Mutex
	ctrl     *directory.Controller
	currency string
}

// NewDirectoryService wraps an existing controller.
func NewDirectoryService(ctrl *directory.Controller, currency string) *DirectoryService {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &DirectoryService{ctrl: ctrl, currency: currency}
}

// LoadDirectoryService seeds a new controller from src and wraps it.
func LoadDirectoryService(ctx context.Context, src domain.EmployeeSource, currency string, opts ...directory.Option) (*DirectoryService, error) {
	ctrl, err := directory.Load(ctx, src, opts...)
	if err != nil {
		return nil, err
	}
	logger.InfoLog(ctx, "Directory loaded with %d employees", ctrl.Store().Len())

	return NewDirectoryService(ctrl, currency), nil
}

// Currency is the ISO code used for salary display.
func (s *DirectoryService) Currency() string {
	return s.currency
}

// ==================== Outputs ====================

func (s *DirectoryService) Snapshot(ctx context.Context) domain.DirectoryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Snapshot()
}

func (s *DirectoryService) Statistics(ctx context.Context) domain.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Statistics()
}

func (s *DirectoryService) Departments(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Departments()
}

func (s *DirectoryService) VisibleRecords(ctx context.Context) []domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.VisibleRecords()
}

// ==================== Events ====================

// Search replaces the search query.
func (s *DirectoryService) Search(ctx context.Context, query string) domain.DirectoryView {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.DebugLog(ctx, "search query changed to %q", query)
	s.ctrl.SetSearchQuery(query)
	return s.ctrl.Snapshot()
}

// FilterDepartment selects a department, or domain.AllDepartments.
func (s *DirectoryService) FilterDepartment(ctx context.Context, department string) domain.DirectoryView {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.DebugLog(ctx, "department filter changed to %q", department)
	s.ctrl.SetFilterDepartment(department)
	return s.ctrl.Snapshot()
}

// Sort toggles the sort on column. Unknown columns leave the state untouched.
func (s *DirectoryService) Sort(ctx context.Context, column string) (domain.DirectoryView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.HandleSort(column); err != nil {
		logger.WarnLog(ctx, "sort rejected: %v", err)
		return domain.DirectoryView{}, err
	}
	state := s.ctrl.SortState()
	logger.DebugLog(ctx, "sorted by %s %s", state.Column, state.Direction)
	return s.ctrl.Snapshot(), nil
}

// SetViewMode switches between table and cards.
func (s *DirectoryService) SetViewMode(ctx context.Context, mode string) (domain.DirectoryView, error) {
	m, err := domain.ParseViewMode(mode)
	if err != nil {
		return domain.DirectoryView{}, fmt.Errorf("%w: %v", directory.ErrInvalidViewMode, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.SetViewMode(m); err != nil {
		return domain.DirectoryView{}, err
	}
	logger.DebugLog(ctx, "view mode changed to %s", m)
	return s.ctrl.Snapshot(), nil
}

// Events is a batch of view changes applied in a fixed order: search,
// department filter, then each sort toggle.
type Events struct {
	Search     string
	Department string
	Sorts      []string
}

// Apply runs every event in ev under one lock.
func (s *DirectoryService) Apply(ctx context.Context, ev Events) (domain.DirectoryView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctrl.SetSearchQuery(ev.Search)
	if ev.Department != "" {
		s.ctrl.SetFilterDepartment(ev.Department)
	}
	for _, col := range ev.Sorts {
		if err := s.ctrl.HandleSort(col); err != nil {
			return domain.DirectoryView{}, err
		}
	}
	logger.DebugLog(ctx, "applied %d sort events", len(ev.Sorts))
	return s.ctrl.Snapshot(), nil
}
