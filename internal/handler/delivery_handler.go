package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"entregas/internal/middleware"
	"entregas/internal/service"
)

// DeliveryHandler handles delivery CRUD endpoints.
type DeliveryHandler struct {
	deliveryService service.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(deliveryService service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// deliveryRequest is the JSON body of create and update requests.
type deliveryRequest struct {
	Name     string           `json:"nome"`
	Address  string           `json:"endereco"`
	Phone    string           `json:"telefone"`
	Product  string           `json:"produto"`
	Amount   *decimal.Decimal `json:"valor"`
	Date     string           `json:"data"`
	Tenant   string           `json:"empresa"`
	OnCredit bool             `json:"fiado"`
}

// parseDeliveryDate accepts a plain date or a full RFC 3339 timestamp.
func parseDeliveryDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid 'data': must be YYYY-MM-DD")
}

func (r *deliveryRequest) toInput() (service.DeliveryInput, error) {
	if r.Amount == nil {
		return service.DeliveryInput{}, errors.New("valor is required")
	}
	if strings.TrimSpace(r.Date) == "" {
		return service.DeliveryInput{}, errors.New("data is required")
	}
	date, err := parseDeliveryDate(r.Date)
	if err != nil {
		return service.DeliveryInput{}, err
	}
	return service.DeliveryInput{
		Name:     r.Name,
		Address:  r.Address,
		Phone:    r.Phone,
		Product:  r.Product,
		Amount:   *r.Amount,
		Date:     date,
		OnCredit: r.OnCredit,
	}, nil
}

// bindDelivery decodes and converts the request body, responding 400 on failure.
func bindDelivery(c *gin.Context) (*deliveryRequest, service.DeliveryInput, bool) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return nil, service.DeliveryInput{}, false
	}
	input, err := req.toInput()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return nil, service.DeliveryInput{}, false
	}
	return &req, input, true
}

// parseID reads the :id path parameter, responding 400 when it is not a positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid delivery ID")
		return 0, false
	}
	return id, true
}

// List handles GET /entrega
func (h *DeliveryHandler) List(c *gin.Context) {
	tenant, err := middleware.ResolveTenant(c, c.Query("empresa"))
	if err != nil {
		HandleError(c, err)
		return
	}

	deliveries, err := h.deliveryService.ListByTenant(c.Request.Context(), tenant)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, deliveries)
}

// GetByID handles GET /entrega/:id
func (h *DeliveryHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	tenant, err := middleware.ResolveTenant(c, c.Query("empresa"))
	if err != nil {
		HandleError(c, err)
		return
	}

	d, err := h.deliveryService.GetByID(c.Request.Context(), tenant, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, d)
}

// Create handles POST /entrega
func (h *DeliveryHandler) Create(c *gin.Context) {
	req, input, ok := bindDelivery(c)
	if !ok {
		return
	}
	tenant, err := middleware.ResolveTenant(c, req.Tenant)
	if err != nil {
		HandleError(c, err)
		return
	}

	d, err := h.deliveryService.Create(c.Request.Context(), service.CreateDeliveryInput{
		DeliveryInput: input,
		Tenant:        tenant,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondMessage(c, http.StatusCreated, "Entrega cadastrada com sucesso", d)
}

// Update handles PUT /entrega/:id
func (h *DeliveryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	_, input, ok := bindDelivery(c)
	if !ok {
		return
	}
	tenant, err := middleware.ResolveTenant(c, c.Query("empresa"))
	if err != nil {
		HandleError(c, err)
		return
	}

	d, err := h.deliveryService.Update(c.Request.Context(), tenant, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondMessage(c, http.StatusOK, "Entrega atualizada com sucesso", d)
}

// Delete handles DELETE /entrega/:id
func (h *DeliveryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	tenant, err := middleware.ResolveTenant(c, c.Query("empresa"))
	if err != nil {
		HandleError(c, err)
		return
	}

	if err := h.deliveryService.Delete(c.Request.Context(), tenant, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondMessage(c, http.StatusOK, "Entrega removida com sucesso", nil)
}
