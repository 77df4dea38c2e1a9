// Package seed loads the employee list a directory starts from.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/locvowork/employee_directory/internal/domain"
	"gopkg.in/yaml.v2"
)

//go:embed employees.yaml
var embeddedEmployees []byte

// Document is the YAML layout of a seed file.
type Document struct {
	Employees []domain.Employee `yaml:"employees"`
}

// Embedded returns the directory shipped with the binary.
func Embedded() domain.EmployeeSource {
	return domain.EmployeeSourceFunc(func(ctx context.Context) ([]domain.Employee, error) {
		return Parse(embeddedEmployees)
	})
}

// FileSource reads employees from a YAML file on disk.
type FileSource struct {
	Path string
}

// Load implements domain.EmployeeSource.
func (s FileSource) Load(ctx context.Context) ([]domain.Employee, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("seed file path is empty")
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a seed document from r.
func Decode(r io.Reader) ([]domain.Employee, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return []domain.Employee{}, nil
		}
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}
	if doc.Employees == nil {
		doc.Employees = []domain.Employee{}
	}
	return doc.Employees, nil
}

// Parse decodes an in-memory seed document.
func Parse(data []byte) ([]domain.Employee, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}
	if doc.Employees == nil {
		doc.Employees = []domain.Employee{}
	}
	return doc.Employees, nil
}

// Encode writes employees as a seed document.
func Encode(w io.Writer, employees []domain.Employee) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(Document{Employees: employees}); err != nil {
		return fmt.Errorf("encode seed yaml: %w", err)
	}
	return enc.Close()
}
