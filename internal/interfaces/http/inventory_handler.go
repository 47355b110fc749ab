package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/application/inventory"
)

// InventoryHandler saldos agregados del libro de movimientos y cargas de stock (protegido).
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func stockQuery(c *fiber.Ctx) inventory.Query {
	return inventory.Query{
		SortBy:           c.Query("sortBy"),
		IncludeZeroStock: c.QueryBool("includeZeroStock", false),
	}
}

// ProductStock godoc
// @Summary      Saldo de un producto por bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id                path   string  true   "ID del producto"
// @Param        includeZeroStock  query  bool    false  "Incluir bodegas con saldo cero"
// @Param        sortBy            query  string  false  "quantity-asc | quantity-desc | name-asc | name-desc | code-asc | code-desc"
// @Success      200  {object}  dto.DataResponse{data=dto.StockResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *InventoryHandler) ProductStock(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ForProduct(c.UserContext(), id, stockQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// WarehouseStock godoc
// @Summary      Saldo de una bodega por producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id                path   string  true   "ID de la bodega"
// @Param        includeZeroStock  query  bool    false  "Incluir productos con saldo cero"
// @Param        sortBy            query  string  false  "quantity-asc | quantity-desc | name-asc | name-desc | code-asc | code-desc"
// @Success      200  {object}  dto.DataResponse{data=dto.StockResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock [get]
func (h *InventoryHandler) WarehouseStock(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ForWarehouse(c.UserContext(), id, stockQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// Import godoc
// @Summary      Cargar stock en una bodega
// @Description  Registra un movimiento positivo por producto (las líneas repetidas se suman).
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                  false  "Clave de idempotencia"
// @Param        body             body    dto.StockImportRequest  true   "Bodega e items"
// @Success      201  {object}  dto.DataResponse{data=dto.StockImportResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/imports [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	var in dto.StockImportRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Import(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Message: "stock cargado", Data: out})
}

// Movements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD o RFC3339)"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.DataResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c.Query("from"), false)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "from inválido")
	}
	to, err := parseTimeQuery(c.Query("to"), true)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "to inválido")
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros de paginación inválidos")
	}
	page.DefaultPage()
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Movements(c.UserContext(), id, from, to, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// parseTimeQuery acepta RFC3339 o una fecha; una fecha usada como "to" cubre el día completo.
func parseTimeQuery(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
