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

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for inventory handlers
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// ProductResponse is a product together with its stock classification
type ProductResponse struct {
	*entity.Product
	StockStatus entity.StockStatus `json:"stock_status"`
}

func newProductResponse(product *entity.Product) ProductResponse {
	return ProductResponse{Product: product, StockStatus: product.StockStatus()}
}

// AddProduct handles product creation
func (h *ProductHandler) AddProduct(c echo.Context) error {
	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.productUC.AddProduct(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newProductResponse(product), "Product added successfully")
}

// ListCategories returns the catalogue categories in display order
func (h *ProductHandler) ListCategories(c echo.Context) error {
	return response.Success(c, http.StatusOK, entity.Categories(), "Categories retrieved successfully")
}

// ListProducts handles listing with optional category, stock_level and requires_prescription filters
func (h *ProductHandler) ListProducts(c echo.Context) error {
	filter := usecase.ProductFilter{
		Category:   entity.Category(c.QueryParam("category")),
		StockLevel: entity.StockLevel(c.QueryParam("stock_level")),
	}
	if raw := c.QueryParam("requires_prescription"); raw != "" {
		requires, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_QUERY", "requires_prescription must be a boolean")
		}
		filter.RequiresPrescription = &requires
	}

	products, err := h.productUC.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	items := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		items = append(items, newProductResponse(product))
	}

	return response.Success(c, http.StatusOK, items, "Products retrieved successfully")
}

// GetProduct handles retrieving a single product
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUC.GetProductByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductResponse(product), "Product retrieved successfully")
}

// UpdateProduct handles partial product updates
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var patch entity.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.productUC.UpdateProduct(c.Request().Context(), c.Param("id"), &patch)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductResponse(product), "Product updated successfully")
}

// DeleteProduct handles product removal
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.productUC.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// GetProductLabel serves the product's QR label
func (h *ProductHandler) GetProductLabel(c echo.Context) error {
	png, err := h.productUC.GetProductLabel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
