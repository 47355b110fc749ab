package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Documentos-api/internal/application/documents"
	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
)

// DocumentHandler expone cotizaciones, facturas, remisiones y traslados.
// Las rutas son las mismas para los cuatro tipos; el tipo se fija al registrar el grupo.
type DocumentHandler struct {
	uc *documents.UseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.UseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// CreateQuotation godoc
// @Summary      Crear cotización (borrador)
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                      false  "Clave de idempotencia"
// @Param        body             body    dto.CreateQuotationRequest  true   "Cotización"
// @Success      201  {object}  dto.DataResponse{data=dto.QuotationResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/quotations [post]
func (h *DocumentHandler) CreateQuotation(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateQuotation(c.UserContext(), GetSubject(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Message: "cotización creada", Data: out})
}

// CreateInvoice godoc
// @Summary      Crear factura
// @Description  Con quotation_id y sin items copia las líneas de la cotización aceptada.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                    false  "Clave de idempotencia"
// @Param        body             body    dto.CreateInvoiceRequest  true   "Factura"
// @Success      201  {object}  dto.DataResponse{data=dto.InvoiceResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *DocumentHandler) CreateInvoice(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateInvoice(c.UserContext(), GetSubject(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Message: "factura creada", Data: out})
}

// CreateDeliveryNote godoc
// @Summary      Crear remisión (pendiente)
// @Tags         delivery-notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                         false  "Clave de idempotencia"
// @Param        body             body    dto.CreateDeliveryNoteRequest  true   "Remisión"
// @Success      201  {object}  dto.DataResponse{data=dto.DeliveryNoteResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/delivery-notes [post]
func (h *DocumentHandler) CreateDeliveryNote(c *fiber.Ctx) error {
	var in dto.CreateDeliveryNoteRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateDeliveryNote(c.UserContext(), GetSubject(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Message: "remisión creada", Data: out})
}

// CreateTransfer godoc
// @Summary      Crear traslado entre bodegas (pendiente)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                     false  "Clave de idempotencia"
// @Param        body             body    dto.CreateTransferRequest  true   "Traslado"
// @Success      201  {object}  dto.DataResponse{data=dto.TransferResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *DocumentHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateTransfer(c.UserContext(), GetSubject(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Message: "traslado creado", Data: out})
}

// Create elige el handler de creación del tipo.
func (h *DocumentHandler) Create(t document.Type) fiber.Handler {
	switch t {
	case document.TypeQuotation:
		return h.CreateQuotation
	case document.TypeInvoice:
		return h.CreateInvoice
	case document.TypeDeliveryNote:
		return h.CreateDeliveryNote
	default:
		return h.CreateTransfer
	}
}

// List godoc
// @Summary      Listar documentos (más recientes primero)
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        type    path   string  true   "quotations | invoices | delivery-notes | transfers"
// @Param        limit   query  int     false  "Tamaño de página (máx. 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.DataResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/{type} [get]
func (h *DocumentHandler) List(t document.Type) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var page dto.PageRequest
		if err := c.QueryParser(&page); err != nil {
			return badRequest(c, "INVALID_QUERY", "parámetros de paginación inválidos")
		}
		page.DefaultPage()
		out, err := h.uc.List(c.UserContext(), t, page)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.DataResponse{Data: out})
	}
}

// Get godoc
// @Summary      Obtener documento por ID
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "quotations | invoices | delivery-notes | transfers"
// @Param        id    path  string  true  "ID del documento"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{type}/{id} [get]
func (h *DocumentHandler) Get(t document.Type) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		out, err := h.uc.Get(c.UserContext(), t, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.DataResponse{Data: out})
	}
}

// PreviewNumber godoc
// @Summary      Número que obtendría la próxima creación (no lo reserva)
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "quotations | invoices | delivery-notes | transfers"
// @Success      200  {object}  dto.DataResponse{data=dto.NumberResponse}
// @Router       /api/{type}/preview-number [get]
func (h *DocumentHandler) PreviewNumber(t document.Type) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.PreviewNumber(c.UserContext(), t)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.DataResponse{Data: out})
	}
}

// LatestNumber godoc
// @Summary      Igual que preview-number; se mantiene por compatibilidad de clientes
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "quotations | invoices | delivery-notes | transfers"
// @Success      200  {object}  dto.DataResponse{data=dto.NumberResponse}
// @Router       /api/{type}/latest-number [get]
func (h *DocumentHandler) LatestNumber(t document.Type) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.LatestNumber(c.UserContext(), t)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.DataResponse{Data: out})
	}
}

// Transition godoc
// @Summary      Cambiar el estado de un documento
// @Description  submit, approve, send, accept, reject, revise (cotizaciones); pay (facturas);
// @Description  deliver (remisiones, descuenta stock); complete (traslados, mueve stock).
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        type    path  string  true  "quotations | invoices | delivery-notes | transfers"
// @Param        id      path  string  true  "ID del documento"
// @Param        action  path  string  true  "Acción"
// @Success      200  {object}  dto.DataResponse{data=dto.StatusChangeResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/{type}/{id}/{action} [post]
func (h *DocumentHandler) Transition(t document.Type, action document.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		out, err := h.uc.Transition(c.UserContext(), GetSubject(c), t, id, action)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.DataResponse{Message: "estado actualizado", Data: out})
	}
}

// DeleteQuotation godoc
// @Summary      Eliminar cotización en borrador
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.DataResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [delete]
func (h *DocumentHandler) DeleteQuotation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteQuotation(c.UserContext(), GetSubject(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DataResponse{Message: "cotización eliminada", Data: fiber.Map{"id": id}})
}

// PDF godoc
// @Summary      Descargar PDF de cotización o factura
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        type  path  string  true  "quotations | invoices"
// @Param        id    path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{type}/{id}/pdf [get]
func (h *DocumentHandler) PDF(t document.Type) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respondError(c, err)
		}
		body, name, err := h.uc.RenderPDF(c.UserContext(), t, id)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`"`)
		return c.Send(body)
	}
}
