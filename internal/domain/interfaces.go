package domain

import "context"

// EmployeeSource produces the seed sequence a directory starts from.
type EmployeeSource interface {
	Load(ctx context.Context) ([]Employee, error)
}

// EmployeeSourceFunc adapts a plain function to EmployeeSource.
type EmployeeSourceFunc func(ctx context.Context) ([]Employee, error)

// Load calls f.
func (f EmployeeSourceFunc) Load(ctx context.Context) ([]Employee, error) {
	return f(ctx)
}
