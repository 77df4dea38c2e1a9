package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/export"
	"github.com/locvowork/employee_directory/internal/seed"
	"github.com/locvowork/employee_directory/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newHandler(t *testing.T) *DirectoryHandler {
	t.Helper()
	svc, err := service.LoadDirectoryService(context.Background(), seed.Embedded(), "USD")
	require.NoError(t, err)
	return NewDirectoryHandler(svc)
}

func do(t *testing.T, h echo.HandlerFunc, method, body string, params ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/directory", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}

	require.NoError(t, h(c))

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func decodeDirectory(t *testing.T, env envelope) DirectoryResponse {
	t.Helper()
	var resp DirectoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp
}

func employeeIDs(resp DirectoryResponse) []int {
	out := make([]int, len(resp.Employees))
	for i, e := range resp.Employees {
		out[i] = e.ID
	}
	return out
}

func TestSnapshotHandler(t *testing.T) {
	h := newHandler(t)

	rec, env := do(t, h.SnapshotHandler, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeDirectory(t, env)
	assert.Equal(t, 4, resp.Statistics.TotalEmployees)
	assert.Equal(t, "$2,750.00", resp.Statistics.AverageSalaryDisplay)
	assert.Equal(t, []int{1, 2, 3, 4}, employeeIDs(resp))
	assert.Equal(t, "$1,000.00", resp.Employees[0].SalaryDisplay)
	assert.Equal(t, "all", resp.FilterDepartment)
	assert.Equal(t, "cards", string(resp.ViewMode))

	assert.Contains(t, rec.Body.String(), `"salary_display":"$1,000.00"`)
	assert.Contains(t, rec.Body.String(), `"sort":{"column":"","direction":"ascending"}`)
}

func TestStatisticsAndDepartmentsHandlers(t *testing.T) {
	h := newHandler(t)

	_, env := do(t, h.StatisticsHandler, http.MethodGet, "")
	var stats StatisticsDTO
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(2750), stats.AverageSalary)
	assert.Equal(t, int64(34), stats.AverageAge)
	assert.Equal(t, 4, stats.Locations)

	_, env = do(t, h.DepartmentsHandler, http.MethodGet, "")
	var departments []string
	require.NoError(t, json.Unmarshal(env.Data, &departments))
	assert.Equal(t, []string{"all", "Engineering", "Design", "Marketing", "Sales"}, departments)
}

func TestDepartmentsHandler_LiteralAll(t *testing.T) {
	src := domain.EmployeeSourceFunc(func(context.Context) ([]domain.Employee, error) {
		return []domain.Employee{
			{ID: 1, Name: "A", Department: "all"},
			{ID: 2, Name: "B", Department: "Design"},
		}, nil
	})
	svc, err := service.LoadDirectoryService(context.Background(), src, "USD")
	require.NoError(t, err)

	_, env := do(t, NewDirectoryHandler(svc).DepartmentsHandler, http.MethodGet, "")
	var departments []string
	require.NoError(t, json.Unmarshal(env.Data, &departments))
	assert.Equal(t, []string{"all", "Design"}, departments)
}

func TestSearchAndDepartmentHandlers(t *testing.T) {
	h := newHandler(t)

	_, env := do(t, h.SearchHandler, http.MethodPut, `{"query":"sea"}`)
	assert.Equal(t, []int{1}, employeeIDs(decodeDirectory(t, env)))

	do(t, h.SearchHandler, http.MethodPut, `{"query":""}`)
	_, env = do(t, h.DepartmentHandler, http.MethodPut, `{"department":"Design"}`)
	resp := decodeDirectory(t, env)
	assert.Equal(t, []int{2}, employeeIDs(resp))
	assert.Equal(t, "Design", resp.FilterDepartment)

	_, env = do(t, h.EmployeesHandler, http.MethodGet, "")
	var employees []EmployeeDTO
	require.NoError(t, json.Unmarshal(env.Data, &employees))
	require.Len(t, employees, 1)
	assert.Equal(t, "Jonathan", employees[0].Name)

	rec, env := do(t, h.DepartmentHandler, http.MethodPut, `{"department":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Department is required", env.Message)

	rec, _ = do(t, h.SearchHandler, http.MethodPut, `{"query":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSortHandler(t *testing.T) {
	h := newHandler(t)

	_, env := do(t, h.SortHandler, http.MethodPost, "", "column", "salary")
	resp := decodeDirectory(t, env)
	assert.Equal(t, []int{1, 2, 3, 4}, employeeIDs(resp))
	assert.Equal(t, "salary", string(resp.Sort.Column))

	_, env = do(t, h.SortHandler, http.MethodPost, "", "column", "salary")
	assert.Equal(t, []int{4, 3, 2, 1}, employeeIDs(decodeDirectory(t, env)))
	assert.Contains(t, string(env.Data), `"direction":"descending"`)

	rec, env := do(t, h.SortHandler, http.MethodPost, "", "column", "name")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "invalid sort column")

	_, env = do(t, h.SnapshotHandler, http.MethodGet, "")
	assert.Equal(t, []int{4, 3, 2, 1}, employeeIDs(decodeDirectory(t, env)))
}

func TestViewModeHandler(t *testing.T) {
	h := newHandler(t)

	rec, env := do(t, h.ViewModeHandler, http.MethodPut, `{"mode":"table"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "table", string(decodeDirectory(t, env).ViewMode))

	rec, _ = do(t, h.ViewModeHandler, http.MethodPut, `{"mode":"grid"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandler(t *testing.T) {
	h := newHandler(t)
	do(t, h.DepartmentHandler, http.MethodPut, `{"department":"Sales"}`)

	rec, _ := do(t, h.ExportHandler, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "employee_directory.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Directory", "B13")
	require.NoError(t, err)
	assert.Equal(t, "Cecil", name)
	next, err := f.GetCellValue("Directory", "B14")
	require.NoError(t, err)
	assert.Empty(t, next)
}

func TestHealthHandler(t *testing.T) {
	rec, env := do(t, HealthHandler, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", env.Message)
}
