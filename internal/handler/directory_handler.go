package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_directory/internal/directory"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/export"
	"github.com/locvowork/employee_directory/internal/service"
	"github.com/locvowork/employee_directory/internal/service/serviceutils"
)

type DirectoryHandler struct {
	svc *service.DirectoryService
}

func NewDirectoryHandler(svc *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

func (h *DirectoryHandler) SnapshotHandler(c echo.Context) error {
	view := h.svc.Snapshot(c.Request().Context())
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Directory retrieved successfully", toDirectoryResponse(view, h.svc.Currency()))
}

func (h *DirectoryHandler) StatisticsHandler(c echo.Context) error {
	stats := h.svc.Statistics(c.Request().Context())
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Statistics retrieved successfully", toStatisticsDTO(stats, h.svc.Currency()))
}

// DepartmentsHandler returns the filter options, "all" first.
func (h *DirectoryHandler) DepartmentsHandler(c echo.Context) error {
	options := domain.DepartmentOptions(h.svc.Departments(c.Request().Context()))
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Departments retrieved successfully", options)
}

func (h *DirectoryHandler) EmployeesHandler(c echo.Context) error {
	employees := h.svc.VisibleRecords(c.Request().Context())
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees listed successfully", toEmployeeDTOs(employees, h.svc.Currency()))
}

func (h *DirectoryHandler) SearchHandler(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	view := h.svc.Search(c.Request().Context(), req.Query)
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Search updated successfully", toDirectoryResponse(view, h.svc.Currency()))
}

func (h *DirectoryHandler) DepartmentHandler(c echo.Context) error {
	var req DepartmentRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if strings.TrimSpace(req.Department) == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Department is required", nil)
	}

	view := h.svc.FilterDepartment(c.Request().Context(), req.Department)
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Department filter updated successfully", toDirectoryResponse(view, h.svc.Currency()))
}

func (h *DirectoryHandler) SortHandler(c echo.Context) error {
	view, err := h.svc.Sort(c.Request().Context(), c.Param("column"))
	if err != nil {
		if errors.Is(err, directory.ErrInvalidSortColumn) {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid sort column", err)
		}
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to sort employees", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees sorted successfully", toDirectoryResponse(view, h.svc.Currency()))
}

func (h *DirectoryHandler) ViewModeHandler(c echo.Context) error {
	var req ViewModeRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	view, err := h.svc.SetViewMode(c.Request().Context(), req.Mode)
	if err != nil {
		if errors.Is(err, directory.ErrInvalidViewMode) {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid view mode", err)
		}
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to change view mode", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "View mode updated successfully", toDirectoryResponse(view, h.svc.Currency()))
}

// ExportHandler streams the visible records as an xlsx download.
func (h *DirectoryHandler) ExportHandler(c echo.Context) error {
	view := h.svc.Snapshot(c.Request().Context())

	data, err := export.Bytes(view, h.svc.Currency())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate Excel file", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, "employee_directory.xlsx"))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
	return c.Blob(http.StatusOK, export.ContentType, data)
}

func HealthHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "ok", nil)
}
