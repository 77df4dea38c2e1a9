package simpleexcel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"
)

// =============================================================================
// Constants & Types
// =============================================================================

const (
	SectionDirectionHorizontal = "horizontal"
	SectionDirectionVertical   = "vertical"
)

// FormatterFunc transforms a cell value before it is written.
type FormatterFunc func(v interface{}) interface{}

// DataExporter is the main entry point for exporting data.
type DataExporter struct {
	template *ReportTemplate
	// data holds data bound to specific section IDs (for YAML flow)
	data map[string]interface{}
	// sheets holds manually added sheets (for programmatic flow)
	sheets     []*SheetBuilder
	formatters map[string]FormatterFunc
}

// ReportTemplate represents the YAML structure.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate represents a sheet in the YAML.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig defines a section of data in a sheet.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Data        interface{}    `yaml:"-"` // Data is bound at runtime
	Locked      bool           `yaml:"locked"`
	ShowHeader  bool           `yaml:"show_header"`
	Direction   string         `yaml:"direction"` // "horizontal" or "vertical"
	Position    string         `yaml:"position"`  // e.g., "A1"
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig defines a column in a section.
type ColumnConfig struct {
	FieldName     string        `yaml:"field_name"` // Struct field name or map key
	Header        string        `yaml:"header"`
	Width         float64       `yaml:"width"`
	FormatterName string        `yaml:"formatter"`
	Formatter     FormatterFunc `yaml:"-"`
}

// StyleTemplate defines basic styling.
type StyleTemplate struct {
	Font   *FontTemplate `yaml:"font"`
	Fill   *FillTemplate `yaml:"fill"`
	Locked *bool         `yaml:"locked"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // Hex color
}

type FillTemplate struct {
	Color string `yaml:"color"` // Hex color
}

// =============================================================================
// Constructors
// =============================================================================

func NewDataExporter() *DataExporter {
	return &DataExporter{
		data:       make(map[string]interface{}),
		sheets:     []*SheetBuilder{},
		formatters: make(map[string]FormatterFunc),
	}
}

// NewDataExporterFromYamlConfig builds an exporter from an inline YAML layout.
func NewDataExporterFromYamlConfig(config string) (*DataExporter, error) {
	var tmpl ReportTemplate
	if err := yaml.Unmarshal([]byte(config), &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	e := NewDataExporter()
	e.template = &tmpl
	return e, nil
}

// =============================================================================
// Fluent API
// =============================================================================

// AddSheet starts a new sheet builder.
func (e *DataExporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{
		exporter: e,
		name:     name,
		sections: []*SectionConfig{},
	}
	e.sheets = append(e.sheets, sb)
	return sb
}

// GetSheet returns the programmatic sheet with the given name, or nil.
func (e *DataExporter) GetSheet(name string) *SheetBuilder {
	for _, sb := range e.sheets {
		if sb.name == name {
			return sb
		}
	}
	return nil
}

// BindSectionData binds data to a section ID (for YAML-based export).
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

// RegisterFormatter makes fn available to columns by name.
func (e *DataExporter) RegisterFormatter(name string, fn FormatterFunc) *DataExporter {
	e.formatters[name] = fn
	return e
}

// BuildExcel creates an Excel file in memory and returns it.
// The caller owns the returned file and must close it.
func (e *DataExporter) BuildExcel() (*excelize.File, error) {
	f := excelize.NewFile()
	first := true

	addSheet := func(name string) error {
		if first {
			first = false
			return f.SetSheetName("Sheet1", name)
		}
		if idx, _ := f.GetSheetIndex(name); idx != -1 {
			return nil
		}
		_, err := f.NewSheet(name)
		return err
	}

	// 1. Process Programmatic Sheets
	for _, sb := range e.sheets {
		if err := addSheet(sb.name); err != nil {
			f.Close()
			return nil, err
		}
		if err := e.renderSections(f, sb.name, sb.sections); err != nil {
			f.Close()
			return nil, err
		}
	}

	// 2. Process YAML Template Sheets
	if e.template != nil {
		for _, sheetTmpl := range e.template.Sheets {
			if err := addSheet(sheetTmpl.Name); err != nil {
				f.Close()
				return nil, err
			}

			sections := make([]*SectionConfig, len(sheetTmpl.Sections))
			for j := range sheetTmpl.Sections {
				sec := sheetTmpl.Sections[j]
				if data, ok := e.data[sec.ID]; ok {
					sec.Data = data
				}
				sections[j] = &sec
			}

			if err := e.renderSections(f, sheetTmpl.Name, sections); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	return f, nil
}

// ExportToExcel generates the Excel file on disk.
func (e *DataExporter) ExportToExcel(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// ToBytes exports the Excel file to an in-memory byte slice.
func (e *DataExporter) ToBytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := e.ToWriter(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToWriter writes the Excel file to the provided io.Writer.
func (e *DataExporter) ToWriter(w io.Writer) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

// =============================================================================
// SheetBuilder
// =============================================================================

type SheetBuilder struct {
	exporter *DataExporter
	name     string
	sections []*SectionConfig
}

func (sb *SheetBuilder) AddSection(config *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, config)
	return sb
}

func (sb *SheetBuilder) Build() *DataExporter {
	return sb.exporter
}

// =============================================================================
// Rendering Logic
// =============================================================================

func (e *DataExporter) renderSections(f *excelize.File, sheet string, sections []*SectionConfig) error {
	maxRow := 1            // Next available row for vertical sections
	nextColHorizontal := 1 // Next available col for horizontal sections

	hasLockedSections := false

	for _, sec := range sections {
		if sec.Locked {
			hasLockedSections = true
		}

		startCol, startRow := 1, maxRow
		if sec.Direction == SectionDirectionHorizontal {
			startCol, startRow = nextColHorizontal, 1
		}
		if sec.Position != "" {
			c, r, err := excelize.CellNameToCoordinates(sec.Position)
			if err != nil {
				return fmt.Errorf("section %q position: %w", sec.ID, err)
			}
			startCol, startRow = c, r
		}

		currentRow := startRow

		// Locked=false only has an effect once the sheet is protected.
		effectiveStyle := func(base *StyleTemplate) (int, error) {
			s := StyleTemplate{}
			if base != nil {
				s = *base
			}
			locked := sec.Locked
			s.Locked = &locked
			return createStyle(f, &s)
		}

		if sec.Title != "" {
			cell, _ := excelize.CoordinatesToCellName(startCol, currentRow)
			if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
				return err
			}
			styleID, err := effectiveStyle(sec.TitleStyle)
			if err != nil {
				return err
			}

			endCell := cell
			if len(sec.Columns) > 1 {
				endCell, _ = excelize.CoordinatesToCellName(startCol+len(sec.Columns)-1, currentRow)
				if err := f.MergeCell(sheet, cell, endCell); err != nil {
					return err
				}
			}
			if err := f.SetCellStyle(sheet, cell, endCell, styleID); err != nil {
				return err
			}
			currentRow++
		}

		if sec.ShowHeader {
			styleID, err := effectiveStyle(sec.HeaderStyle)
			if err != nil {
				return err
			}
			for i, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(startCol+i, currentRow)
				if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
					return err
				}
				if col.Width > 0 {
					colName, _ := excelize.ColumnNumberToName(startCol + i)
					if err := f.SetColWidth(sheet, colName, colName, col.Width); err != nil {
						return err
					}
				}
			}
			currentRow++
		}

		dataStyleID, err := effectiveStyle(nil)
		if err != nil {
			return err
		}
		dataVal := reflect.ValueOf(sec.Data)
		if dataVal.Kind() == reflect.Slice {
			for i := 0; i < dataVal.Len(); i++ {
				item := dataVal.Index(i)
				for j, col := range sec.Columns {
					val := e.format(col, extractValue(item, col.FieldName))
					cell, _ := excelize.CoordinatesToCellName(startCol+j, currentRow)
					if err := f.SetCellValue(sheet, cell, val); err != nil {
						return err
					}
					if err := f.SetCellStyle(sheet, cell, cell, dataStyleID); err != nil {
						return err
					}
				}
				currentRow++
			}
		}

		// Leave one blank row between stacked sections.
		if currentRow+1 > maxRow {
			maxRow = currentRow + 1
		}
		nextColHorizontal = startCol + len(sec.Columns) + 1
	}

	if hasLockedSections {
		return f.ProtectSheet(sheet, &excelize.SheetProtectionOptions{
			SelectLockedCells:   true,
			SelectUnlockedCells: true,
		})
	}

	return nil
}

func (e *DataExporter) format(col ColumnConfig, v interface{}) interface{} {
	if col.Formatter != nil {
		return col.Formatter(v)
	}
	if col.FormatterName != "" {
		if fn, ok := e.formatters[col.FormatterName]; ok {
			return fn(v)
		}
	}
	return v
}

func extractValue(item reflect.Value, fieldName string) interface{} {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return ""
		}
		item = item.Elem()
	}

	switch item.Kind() {
	case reflect.Struct:
		f := item.FieldByName(fieldName)
		if f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	case reflect.Map:
		if item.Type().Key().Kind() == reflect.String {
			v := item.MapIndex(reflect.ValueOf(fieldName).Convert(item.Type().Key()))
			if v.IsValid() {
				return v.Interface()
			}
		}
	}
	return ""
}

func createStyle(f *excelize.File, tmpl *StyleTemplate) (int, error) {
	style := &excelize.Style{}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	if tmpl.Locked != nil {
		style.Protection = &excelize.Protection{
			Locked: *tmpl.Locked,
		}
	}
	return f.NewStyle(style)
}
