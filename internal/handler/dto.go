package handler

import "github.com/locvowork/employee_directory/internal/domain"

// EmployeeDTO is a directory record with its salary formatted for display.
type EmployeeDTO struct {
	domain.Employee
	SalaryDisplay string `json:"salary_display"`
}

// StatisticsDTO adds the formatted average salary to the raw figures.
type StatisticsDTO struct {
	domain.Statistics
	AverageSalaryDisplay string `json:"average_salary_display"`
}

// DirectoryResponse is the full snapshot returned by GET /directory and
// by every event endpoint.
type DirectoryResponse struct {
	Statistics       StatisticsDTO    `json:"statistics"`
	Departments      []string         `json:"departments"`
	Employees        []EmployeeDTO    `json:"employees"`
	SearchQuery      string           `json:"search_query"`
	FilterDepartment string           `json:"filter_department"`
	Sort             domain.SortState `json:"sort"`
	ViewMode         domain.ViewMode  `json:"view_mode"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type DepartmentRequest struct {
	Department string `json:"department"`
}

type ViewModeRequest struct {
	Mode string `json:"mode"`
}

func toEmployeeDTOs(employees []domain.Employee, currency string) []EmployeeDTO {
	out := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		out[i] = EmployeeDTO{Employee: e, SalaryDisplay: domain.FormatSalary(e.Salary, currency)}
	}
	return out
}

func toStatisticsDTO(s domain.Statistics, currency string) StatisticsDTO {
	return StatisticsDTO{Statistics: s, AverageSalaryDisplay: domain.FormatAverage(s.AverageSalary, currency)}
}

func toDirectoryResponse(v domain.DirectoryView, currency string) DirectoryResponse {
	return DirectoryResponse{
		Statistics:       toStatisticsDTO(v.Statistics, currency),
		Departments:      v.Departments,
		Employees:        toEmployeeDTOs(v.Employees, currency),
		SearchQuery:      v.SearchQuery,
		FilterDepartment: v.FilterDepartment,
		Sort:             v.Sort,
		ViewMode:         v.ViewMode,
	}
}
