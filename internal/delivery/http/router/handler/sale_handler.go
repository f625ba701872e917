package handler

import (
	"log/slog"
	"net/http"

	"novasalud/internal/delivery/http/middleware"
	"novasalud/internal/delivery/http/response"
	"novasalud/internal/domain/entity"
	"novasalud/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SaleHandlerParams holds dependencies for SaleHandler, injected by Fx.
type SaleHandlerParams struct {
	fx.In

	SaleUC usecase.SaleUsecase
	Logger *slog.Logger
}

// SaleHandler holds dependencies for sale handlers
type SaleHandler struct {
	saleUC usecase.SaleUsecase
	logger *slog.Logger
}

// NewSaleHandler is the constructor for SaleHandler
func NewSaleHandler(params SaleHandlerParams) *SaleHandler {
	return &SaleHandler{
		saleUC: params.SaleUC,
		logger: params.Logger,
	}
}

// AddSale handles recording a sale
func (h *SaleHandler) AddSale(c echo.Context) error {
	var req usecase.SaleInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sale input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	ctx := c.Request().Context()
	sale, err := h.saleUC.AddSale(ctx, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.logger.InfoContext(ctx, "Sale recorded",
		slog.String("sale_id", sale.ID),
		slog.String("total", sale.Total.StringFixed(2)),
		operatorAttr(c),
	)

	return response.Success(c, http.StatusCreated, sale, "Sale recorded successfully")
}

// ListSales handles listing with optional status and customer filters
func (h *SaleHandler) ListSales(c echo.Context) error {
	filter := usecase.SaleFilter{
		Status:   entity.SaleStatus(c.QueryParam("status")),
		Customer: c.QueryParam("customer"),
	}

	sales, err := h.saleUC.ListSales(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, sales, "Sales retrieved successfully")
}

// GetSale returns the sale with customer and product names resolved
func (h *SaleHandler) GetSale(c echo.Context) error {
	detail, err := h.saleUC.GetSaleDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, detail, "Sale retrieved successfully")
}

// UpdateSale handles status, payment and date changes
func (h *SaleHandler) UpdateSale(c echo.Context) error {
	var patch entity.SalePatch
	if err := c.Bind(&patch); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sale input")
	}

	ctx := c.Request().Context()
	sale, err := h.saleUC.UpdateSale(ctx, c.Param("id"), &patch)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.logger.InfoContext(ctx, "Sale updated",
		slog.String("sale_id", sale.ID),
		slog.String("status", string(sale.Status)),
		operatorAttr(c),
	)

	return response.Success(c, http.StatusOK, sale, "Sale updated successfully")
}

// DeleteSale handles sale removal
func (h *SaleHandler) DeleteSale(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.saleUC.DeleteSale(ctx, c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	h.logger.InfoContext(ctx, "Sale deleted", slog.String("sale_id", c.Param("id")), operatorAttr(c))

	return response.Success(c, http.StatusOK, nil, "Sale deleted successfully")
}

// operatorAttr names the signed-in operator, or "anonymous" when auth is disabled.
func operatorAttr(c echo.Context) slog.Attr {
	operator, ok := middleware.GetOperator(c)
	if !ok {
		operator = "anonymous"
	}

	return slog.String("operator", operator)
}
