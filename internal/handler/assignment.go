package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"naklos/internal/domain"
	"naklos/internal/repository"
	"naklos/internal/service"
)

// AssignmentHandler handles HTTP requests for truck assignment requests.
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// CreateRequestRequest is the HTTP request body for requesting a truck.
type CreateRequestRequest struct {
	DriverID         string `json:"driver_id"`
	PreferredTruckID string `json:"preferred_truck_id"`
}

// ApproveRequestRequest is the HTTP request body for approving a request.
// AssignedTruckID is optional; empty means assign the preferred truck.
type ApproveRequestRequest struct {
	AssignedTruckID string `json:"assigned_truck_id,omitempty"`
	ReviewedBy      string `json:"reviewed_by"`
}

// RejectRequestRequest is the HTTP request body for rejecting a request.
type RejectRequestRequest struct {
	Note       string `json:"note"`
	ReviewedBy string `json:"reviewed_by"`
}

// RequestResponse is the HTTP response for assignment request operations.
type RequestResponse struct {
	ID                  string `json:"id"`
	DriverID            string `json:"driver_id"`
	DriverName          string `json:"driver_name,omitempty"`
	PreferredTruckID    string `json:"preferred_truck_id"`
	PreferredTruckPlate string `json:"preferred_truck_plate,omitempty"`
	AssignedTruckID     string `json:"assigned_truck_id,omitempty"`
	AssignedTruckPlate  string `json:"assigned_truck_plate,omitempty"`
	Status              string `json:"status"`
	RequestedAt         string `json:"requested_at"`
	ReviewedAt          string `json:"reviewed_at,omitempty"`
	ReviewedBy          string `json:"reviewed_by,omitempty"`
	RejectionNote       string `json:"rejection_note,omitempty"`
}

func requestResponse(req *domain.TruckAssignmentRequest) RequestResponse {
	return RequestResponse{
		ID:                  req.ID,
		DriverID:            req.DriverID,
		DriverName:          req.DriverName,
		PreferredTruckID:    req.PreferredTruckID,
		PreferredTruckPlate: req.PreferredTruckPlate,
		AssignedTruckID:     req.AssignedTruckID,
		AssignedTruckPlate:  req.AssignedTruckPlate,
		Status:              string(req.Status),
		RequestedAt:         formatTime(req.RequestedAt),
		ReviewedAt:          formatTime(req.ReviewedAt),
		ReviewedBy:          req.ReviewedBy,
		RejectionNote:       req.RejectionNote,
	}
}

// Create handles POST /v1/truck-requests
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	request, err := h.assignmentService.Request(c.Request.Context(), req.DriverID, req.PreferredTruckID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, requestResponse(request))
}

// Approve handles POST /v1/truck-requests/:id/approve
func (h *AssignmentHandler) Approve(c *gin.Context) {
	var req ApproveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	request, err := h.assignmentService.Approve(c.Request.Context(), c.Param("id"), req.AssignedTruckID, req.ReviewedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, requestResponse(request))
}

// Reject handles POST /v1/truck-requests/:id/reject
func (h *AssignmentHandler) Reject(c *gin.Context) {
	var req RejectRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	request, err := h.assignmentService.Reject(c.Request.Context(), c.Param("id"), req.Note, req.ReviewedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, requestResponse(request))
}

// Get handles GET /v1/truck-requests/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	request, err := h.assignmentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, requestResponse(request))
}

// List handles GET /v1/truck-requests
func (h *AssignmentHandler) List(c *gin.Context) {
	var filter repository.RequestListFilter

	if v := c.Query("status"); v != "" {
		status := domain.RequestStatus(v)
		filter.Status = &status
	}
	if v := c.Query("driver_id"); v != "" {
		filter.DriverID = &v
	}

	requests, err := h.assignmentService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RequestResponse, 0, len(requests))
	for _, request := range requests {
		response = append(response, requestResponse(request))
	}

	respondJSON(c, http.StatusOK, response)
}
