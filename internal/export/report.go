// Package export renders a directory view as an xlsx workbook.
package export

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"strconv"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/pkg/simpleexcel"
)

//go:embed report.yaml
var reportLayout string

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type metricRow struct {
	Metric string
	Value  string
}

// NewReport binds view onto the directory layout. Salaries are rendered
// in currency.
func NewReport(view domain.DirectoryView, currency string) (*simpleexcel.DataExporter, error) {
	exporter, err := simpleexcel.NewDataExporterFromYamlConfig(reportLayout)
	if err != nil {
		return nil, fmt.Errorf("parse report layout: %w", err)
	}

	exporter.RegisterFormatter("salary", func(v interface{}) interface{} {
		if amount, ok := v.(float64); ok {
			return domain.FormatSalary(amount, currency)
		}
		return v
	})

	stats := view.Statistics
	exporter.
		BindSectionData("statistics", []metricRow{
			{"Total employees", strconv.Itoa(stats.TotalEmployees)},
			{"Average salary", domain.FormatAverage(stats.AverageSalary, currency)},
			{"Average age", strconv.FormatInt(stats.AverageAge, 10)},
			{"Locations", strconv.Itoa(stats.Locations)},
			{"Search", view.SearchQuery},
			{"Department", view.FilterDepartment},
			{"Sort", sortLabel(view.Sort)},
		}).
		BindSectionData("employees", view.Employees)

	return exporter, nil
}

// Write renders view into w.
func Write(ctx context.Context, w io.Writer, view domain.DirectoryView, currency string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	exporter, err := NewReport(view, currency)
	if err != nil {
		return err
	}
	return exporter.ToWriter(w)
}

// Bytes renders view into memory.
func Bytes(view domain.DirectoryView, currency string) ([]byte, error) {
	exporter, err := NewReport(view, currency)
	if err != nil {
		return nil, err
	}
	return exporter.ToBytes()
}

func sortLabel(s domain.SortState) string {
	if s.Column == domain.SortUnset {
		return "none"
	}
	return s.Column.Title() + " " + s.Direction.String()
}
