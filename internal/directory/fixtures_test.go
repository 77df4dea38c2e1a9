package directory

import "github.com/locvowork/employee_directory/internal/domain"

func sampleEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: 1, Name: "Nathanael", Age: 18, Location: "Sealiyur", Salary: 1000, Department: "Engineering", Image: "https://img.example.com/u/nathanael.jpg"},
		{ID: 2, Name: "Jonathan", Age: 23, Location: "Bangalore", Salary: 2000, Department: "Design", Image: "https://img.example.com/u/jonathan.jpg"},
		{ID: 3, Name: "Jeyakumari", Age: 46, Location: "Ambattur", Salary: 3000, Department: "Marketing", Image: "https://img.example.com/u/jeyakumari.jpg"},
		{ID: 4, Name: "Cecil", Age: 47, Location: "Tambaram", Salary: 5000, Department: "Sales", Image: "https://img.example.com/u/cecil.jpg"},
	}
}

func ids(records []domain.Employee) []int {
	out := make([]int, len(records))
	for i, e := range records {
		out[i] = e.ID
	}
	return out
}

func salaries(records []domain.Employee) []float64 {
	out := make([]float64, len(records))
	for i, e := range records {
		out[i] = e.Salary
	}
	return out
}
