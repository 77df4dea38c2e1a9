package directory

import (
	"strconv"
	"strings"

	"github.com/locvowork/employee_directory/internal/domain"
)

// Departments returns the distinct departments in first-seen order.
func Departments(records []domain.Employee) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, e := range records {
		if _, ok := seen[e.Department]; ok {
			continue
		}
		seen[e.Department] = struct{}{}
		out = append(out, e.Department)
	}
	return out
}

// ComputeStatistics aggregates records. An empty input gives zero values.
func ComputeStatistics(records []domain.Employee) domain.Statistics {
	stats := domain.Statistics{TotalEmployees: len(records)}
	if len(records) == 0 {
		return stats
	}

	var salaries float64
	var ages int64
	locations := make(map[string]struct{})
	for _, e := range records {
		salaries += e.Salary
		ages += int64(e.Age)
		locations[e.Location] = struct{}{}
	}

	n := float64(len(records))
	stats.AverageSalary = domain.RoundHalfUp(salaries / n)
	stats.AverageAge = domain.RoundHalfUp(float64(ages) / n)
	stats.Locations = len(locations)
	return stats
}

// VisibleRecords keeps the records that pass the department gate and then
// the search gate, in store order.
func VisibleRecords(records []domain.Employee, query, department string) []domain.Employee {
	needle := strings.ToLower(query)
	out := make([]domain.Employee, 0, len(records))
	for _, e := range records {
		if department != domain.AllDepartments && e.Department != department {
			continue
		}
		if !matchesLower(e, needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Matches reports whether any attribute of e contains query, ignoring case.
func Matches(e domain.Employee, query string) bool {
	return matchesLower(e, strings.ToLower(query))
}

func matchesLower(e domain.Employee, needle string) bool {
	if needle == "" {
		return true
	}
	for _, v := range fieldTexts(e) {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// fieldTexts is every attribute of e as text, identifiers and image
// included.
func fieldTexts(e domain.Employee) [7]string {
	return [7]string{
		strconv.Itoa(e.ID),
		e.Name,
		strconv.Itoa(e.Age),
		e.Location,
		strconv.FormatFloat(e.Salary, 'f', -1, 64),
		e.Department,
		e.Image,
	}
}
