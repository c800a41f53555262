package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"naklos/internal/domain"
	"naklos/internal/repository"
	"naklos/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	Planned                  bool     `json:"planned"`
	ClientID                 string   `json:"client_id,omitempty"`
	TruckID                  string   `json:"truck_id,omitempty"`
	DriverID                 string   `json:"driver_id,omitempty"`
	OriginCity               string   `json:"origin_city,omitempty"`
	DestinationCity          string   `json:"destination_city,omitempty"`
	CargoDescription         string   `json:"cargo_description,omitempty"`
	Revenue                  float64  `json:"revenue,omitempty"`
	DriverEnteredDestination string   `json:"driver_entered_destination,omitempty"`
	DeliveryDocuments        []string `json:"delivery_documents,omitempty"`
}

// TakeTripRequest is the HTTP request body for taking a trip.
type TakeTripRequest struct {
	DriverID string `json:"driver_id"`
	TruckID  string `json:"truck_id"`
}

// UploadDocumentsRequest is the HTTP request body for uploading delivery
// documents.
type UploadDocumentsRequest struct {
	DeliveryDocuments []string `json:"delivery_documents"`
}

// ApproveTripRequest is the HTTP request body for approving a trip.
type ApproveTripRequest struct {
	ClientID   string        `json:"client_id,omitempty"`
	Revenue    float64       `json:"revenue,omitempty"`
	Expenses   *ExpensesInfo `json:"expenses,omitempty"`
	ReviewedBy string        `json:"reviewed_by"`
}

// ExpensesInfo is the expense breakdown in trip requests and responses.
type ExpensesInfo struct {
	Fuel        float64 `json:"fuel"`
	Tolls       float64 `json:"tolls"`
	Other       float64 `json:"other"`
	OtherReason string  `json:"other_reason,omitempty"`
	Total       float64 `json:"total"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	ID                       string        `json:"id"`
	ClientID                 string        `json:"client_id,omitempty"`
	ClientName               string        `json:"client_name,omitempty"`
	TruckID                  string        `json:"truck_id,omitempty"`
	TruckPlate               string        `json:"truck_plate,omitempty"`
	DriverID                 string        `json:"driver_id,omitempty"`
	DriverName               string        `json:"driver_name,omitempty"`
	OriginCity               string        `json:"origin_city,omitempty"`
	DestinationCity          string        `json:"destination_city,omitempty"`
	CargoDescription         string        `json:"cargo_description,omitempty"`
	Revenue                  float64       `json:"revenue"`
	Expenses                 *ExpensesInfo `json:"expenses,omitempty"`
	Status                   string        `json:"status"`
	IsPlanned                bool          `json:"is_planned"`
	DriverEnteredDestination string        `json:"driver_entered_destination,omitempty"`
	DeliveryDocuments        []string      `json:"delivery_documents,omitempty"`
	DocumentsConfirmed       bool          `json:"documents_confirmed"`
	ApprovedByManager        bool          `json:"approved_by_manager"`
	Invoiced                 bool          `json:"invoiced"`
	CreatedAt                string        `json:"created_at"`
	DeliveredAt              string        `json:"delivered_at,omitempty"`
	ApprovedAt               string        `json:"approved_at,omitempty"`
	CancelledAt              string        `json:"cancelled_at,omitempty"`
}

func tripResponse(trip *domain.Trip) TripResponse {
	resp := TripResponse{
		ID:                       trip.ID,
		ClientID:                 trip.ClientID,
		ClientName:               trip.ClientName,
		TruckID:                  trip.TruckID,
		TruckPlate:               trip.TruckPlate,
		DriverID:                 trip.DriverID,
		DriverName:               trip.DriverName,
		OriginCity:               trip.OriginCity,
		DestinationCity:          trip.DestinationCity,
		CargoDescription:         trip.CargoDescription,
		Revenue:                  trip.Revenue,
		Status:                   string(trip.Status),
		IsPlanned:                trip.IsPlanned,
		DriverEnteredDestination: trip.DriverEnteredDestination,
		DeliveryDocuments:        trip.DeliveryDocuments,
		DocumentsConfirmed:       trip.DocumentsConfirmed,
		ApprovedByManager:        trip.ApprovedByManager,
		Invoiced:                 trip.Invoiced,
		CreatedAt:                formatTime(trip.CreatedAt),
		DeliveredAt:              formatTime(trip.DeliveredAt),
		ApprovedAt:               formatTime(trip.ApprovedAt),
		CancelledAt:              formatTime(trip.CancelledAt),
	}

	if trip.Expenses != (domain.TripExpenses{}) {
		resp.Expenses = &ExpensesInfo{
			Fuel:        trip.Expenses.Fuel,
			Tolls:       trip.Expenses.Tolls,
			Other:       trip.Expenses.Other,
			OtherReason: trip.Expenses.OtherReason,
			Total:       trip.Expenses.Total(),
		}
	}

	return resp
}

// Create handles POST /v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), service.CreateTripRequest{
		Planned:                  req.Planned,
		ClientID:                 req.ClientID,
		TruckID:                  req.TruckID,
		DriverID:                 req.DriverID,
		OriginCity:               req.OriginCity,
		DestinationCity:          req.DestinationCity,
		CargoDescription:         req.CargoDescription,
		Revenue:                  req.Revenue,
		DriverEnteredDestination: req.DriverEnteredDestination,
		DeliveryDocuments:        req.DeliveryDocuments,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, tripResponse(trip))
}

// Take handles POST /v1/trips/:id/take
func (h *TripHandler) Take(c *gin.Context) {
	var req TakeTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.Take(c.Request.Context(), c.Param("id"), req.DriverID, req.TruckID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// UploadDocuments handles POST /v1/trips/:id/documents
func (h *TripHandler) UploadDocuments(c *gin.Context) {
	var req UploadDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.UploadDeliveryDocuments(c.Request.Context(), c.Param("id"), req.DeliveryDocuments)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// ConfirmDocuments handles POST /v1/trips/:id/confirm-documents
func (h *TripHandler) ConfirmDocuments(c *gin.Context) {
	trip, err := h.tripService.ConfirmDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// Approve handles POST /v1/trips/:id/approve
func (h *TripHandler) Approve(c *gin.Context) {
	var req ApproveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	svcReq := service.ApproveTripRequest{
		TripID:     c.Param("id"),
		ClientID:   req.ClientID,
		Revenue:    req.Revenue,
		ReviewedBy: req.ReviewedBy,
	}
	if req.Expenses != nil {
		svcReq.Expenses = &domain.TripExpenses{
			Fuel:        req.Expenses.Fuel,
			Tolls:       req.Expenses.Tolls,
			Other:       req.Expenses.Other,
			OtherReason: req.Expenses.OtherReason,
		}
	}

	trip, err := h.tripService.Approve(c.Request.Context(), svcReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// Cancel handles POST /v1/trips/:id/cancel
func (h *TripHandler) Cancel(c *gin.Context) {
	trip, err := h.tripService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// Get handles GET /v1/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	trip, err := h.tripService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// List handles GET /v1/trips
func (h *TripHandler) List(c *gin.Context) {
	var filter repository.TripListFilter

	if v := c.Query("status"); v != "" {
		status := domain.TripStatus(v)
		filter.Status = &status
	}
	if v := c.Query("client_id"); v != "" {
		filter.ClientID = &v
	}
	if v := c.Query("driver_id"); v != "" {
		filter.DriverID = &v
	}
	filter.Invoiceable = c.Query("invoiceable") == "true"

	trips, err := h.tripService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, tripResponse(trip))
	}

	respondJSON(c, http.StatusOK, response)
}
