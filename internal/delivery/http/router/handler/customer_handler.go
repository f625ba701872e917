package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"novasalud/internal/delivery/http/response"
	"novasalud/internal/domain/entity"
	"novasalud/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CustomerHandlerParams holds dependencies for CustomerHandler, injected by Fx.
type CustomerHandlerParams struct {
	fx.In

	CustomerUC usecase.CustomerUsecase
	Logger     *slog.Logger
}

// CustomerHandler holds dependencies for customer handlers
type CustomerHandler struct {
	customerUC usecase.CustomerUsecase
	logger     *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler
func NewCustomerHandler(params CustomerHandlerParams) *CustomerHandler {
	return &CustomerHandler{
		customerUC: params.CustomerUC,
		logger:     params.Logger,
	}
}

// AddCustomer handles customer creation
func (h *CustomerHandler) AddCustomer(c echo.Context) error {
	var req usecase.CustomerInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	customer, err := h.customerUC.AddCustomer(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, customer, "Customer added successfully")
}

// ListCustomers handles listing every customer
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	customers, err := h.customerUC.ListCustomers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customers, "Customers retrieved successfully")
}

// GetCustomer handles retrieving a single customer
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	customer, err := h.customerUC.GetCustomerByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customer, "Customer retrieved successfully")
}

// UpdateCustomer handles partial customer updates
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	var patch entity.CustomerPatch
	if err := c.Bind(&patch); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}

	customer, err := h.customerUC.UpdateCustomer(c.Request().Context(), c.Param("id"), &patch)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customer, "Customer updated successfully")
}

// DeleteCustomer handles customer removal
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	if err := h.customerUC.DeleteCustomer(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Customer deleted successfully")
}

// ReconcilePurchases reports purchase total drifts; ?apply=true rewrites them
func (h *CustomerHandler) ReconcilePurchases(c echo.Context) error {
	apply := false
	if raw := c.QueryParam("apply"); raw != "" {
		var err error
		if apply, err = strconv.ParseBool(raw); err != nil {
			return response.BadRequest(c, "INVALID_QUERY", "apply must be a boolean")
		}
	}

	report, err := h.customerUC.ReconcilePurchases(c.Request().Context(), apply)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report, "Purchase totals reconciled")
}
