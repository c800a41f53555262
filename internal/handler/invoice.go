package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"naklos/internal/domain"
	"naklos/internal/repository"
	"naklos/internal/service"
)

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// BuildInvoiceRequest is the HTTP request body for building an invoice.
type BuildInvoiceRequest struct {
	TripIDs []string `json:"trip_ids"`
}

// InvoiceResponse is the HTTP response for invoice operations.
type InvoiceResponse struct {
	ID         string   `json:"id"`
	ClientID   string   `json:"client_id"`
	ClientName string   `json:"client_name,omitempty"`
	TripIDs    []string `json:"trip_ids"`
	Amount     float64  `json:"amount"`
	Status     string   `json:"status"`
	IssueDate  string   `json:"issue_date"`
	DueDate    string   `json:"due_date"`
	PaidDate   string   `json:"paid_date,omitempty"`
}

func invoiceResponse(invoice *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:         invoice.ID,
		ClientID:   invoice.ClientID,
		ClientName: invoice.ClientName,
		TripIDs:    invoice.TripIDs,
		Amount:     invoice.Amount,
		Status:     string(invoice.Status),
		IssueDate:  formatTime(invoice.IssueDate),
		DueDate:    formatTime(invoice.DueDate),
		PaidDate:   formatTime(invoice.PaidDate),
	}
}

// Build handles POST /v1/invoices
func (h *InvoiceHandler) Build(c *gin.Context) {
	var req BuildInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	invoice, err := h.invoiceService.Build(c.Request.Context(), req.TripIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, invoiceResponse(invoice))
}

// Get handles GET /v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.invoiceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, invoiceResponse(invoice))
}

// List handles GET /v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter repository.InvoiceListFilter

	if v := c.Query("status"); v != "" {
		status := domain.InvoiceStatus(v)
		filter.Status = &status
	}
	if v := c.Query("client_id"); v != "" {
		filter.ClientID = &v
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		response = append(response, invoiceResponse(invoice))
	}

	respondJSON(c, http.StatusOK, response)
}
