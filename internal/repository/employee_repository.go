package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/repository/builder"
)

var employeeColumns = []string{"id", "name", "age", "location", "salary", "department", "image"}

// Postgres caps one statement at 65535 bind parameters.
const maxBindParams = 65535

var upsertChunkRows = maxBindParams / len(employeeColumns)

// EmployeeRepository reads and writes directory records in PostgreSQL.
type EmployeeRepository struct {
	db    *sql.DB
	table string
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
// An empty table name defaults to "employees".
func NewEmployeeRepository(db *sql.DB, table string) *EmployeeRepository {
	if table == "" {
		table = "employees"
	}
	return &EmployeeRepository{db: db, table: table}
}

// Load implements domain.EmployeeSource.
func (r *EmployeeRepository) Load(ctx context.Context) ([]domain.Employee, error) {
	return r.List(ctx, 0, 0)
}

// List returns employees ordered by id. A zero limit means no limit.
func (r *EmployeeRepository) List(ctx context.Context, limit, offset int) ([]domain.Employee, error) {
	b := builder.NewSQLBuilder()
	b.Select(employeeColumns...).
		From(r.table).
		OrderBy("id ASC")

	if limit > 0 {
		b.Limit(limit)
	}
	if offset > 0 {
		b.Offset(offset)
	}

	query, args := b.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Age, &e.Location, &e.Salary, &e.Department, &e.Image); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}

// EnsureTable creates the employee table when it does not exist.
func (r *EmployeeRepository) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	age INTEGER NOT NULL CHECK (age >= 0),
	location TEXT NOT NULL,
	salary NUMERIC NOT NULL CHECK (salary >= 0),
	department TEXT NOT NULL,
	image TEXT NOT NULL
)`, r.table)
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", r.table, err)
	}
	return nil
}

// Upsert writes employees in one transaction, replacing rows with the same id.
// Large inputs are split into several INSERT statements inside that transaction.
func (r *EmployeeRepository) Upsert(ctx context.Context, employees []domain.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for chunk := range slices.Chunk(employees, upsertChunkRows) {
		b := builder.NewSQLBuilder().Insert(r.table, employeeColumns...)
		for _, e := range chunk {
			b.Values(e.ID, e.Name, e.Age, e.Location, e.Salary, e.Department, e.Image)
		}
		query, args := b.OnConflictUpdate("id", employeeColumns[1:]...).Build()

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert employees: %w", err)
		}
	}
	return tx.Commit()
}

// DeleteAll removes every employee row.
func (r *EmployeeRepository) DeleteAll(ctx context.Context) (int64, error) {
	query, args := builder.NewSQLBuilder().Delete(r.table).Build()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete employees: %w", err)
	}
	return res.RowsAffected()
}
