package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"naklos/internal/service"
)

// WarningHandler handles HTTP requests for expiry warnings.
type WarningHandler struct {
	warningService *service.WarningService
}

// NewWarningHandler creates a new WarningHandler.
func NewWarningHandler(warningService *service.WarningService) *WarningHandler {
	return &WarningHandler{warningService: warningService}
}

// WarningResponse is one expiry warning in the dashboard feed.
type WarningResponse struct {
	Type          string `json:"type"`
	Message       string `json:"message"`
	Severity      string `json:"severity"`
	SubjectType   string `json:"subject_type"`
	SubjectID     string `json:"subject_id"`
	DaysRemaining int    `json:"days_remaining"`
}

// List handles GET /v1/warnings
func (h *WarningHandler) List(c *gin.Context) {
	warnings, err := h.warningService.Compute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]WarningResponse, 0, len(warnings))
	for _, w := range warnings {
		response = append(response, WarningResponse{
			Type:          string(w.Type),
			Message:       w.Message,
			Severity:      string(w.Severity),
			SubjectType:   string(w.SubjectType),
			SubjectID:     w.SubjectID,
			DaysRemaining: w.DaysRemaining,
		})
	}

	respondJSON(c, http.StatusOK, response)
}
