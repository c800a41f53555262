package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"naklos/internal/domain"
	"naklos/internal/service"
)

// FleetHandler handles HTTP requests for fleet master data.
type FleetHandler struct {
	fleetService *service.FleetService
}

// NewFleetHandler creates a new FleetHandler.
func NewFleetHandler(fleetService *service.FleetService) *FleetHandler {
	return &FleetHandler{fleetService: fleetService}
}

// RegisterTruckRequest is the HTTP request body for registering a truck.
type RegisterTruckRequest struct {
	PlateNumber                  string `json:"plate_number"`
	Type                         string `json:"type"`
	CompulsoryInsuranceExpiry    string `json:"compulsory_insurance_expiry,omitempty"`
	ComprehensiveInsuranceExpiry string `json:"comprehensive_insurance_expiry,omitempty"`
	InspectionExpiry             string `json:"inspection_expiry,omitempty"`
}

// TruckResponse is the HTTP response for truck operations.
type TruckResponse struct {
	ID                           string `json:"id"`
	PlateNumber                  string `json:"plate_number"`
	Type                         string `json:"type"`
	Status                       string `json:"status"`
	AssignedDriverID             string `json:"assigned_driver_id,omitempty"`
	AssignedDriverName           string `json:"assigned_driver_name,omitempty"`
	CompulsoryInsuranceExpiry    string `json:"compulsory_insurance_expiry,omitempty"`
	ComprehensiveInsuranceExpiry string `json:"comprehensive_insurance_expiry,omitempty"`
	InspectionExpiry             string `json:"inspection_expiry,omitempty"`
	CreatedAt                    string `json:"created_at"`
}

func truckResponse(truck *domain.Truck) TruckResponse {
	return TruckResponse{
		ID:                           truck.ID,
		PlateNumber:                  truck.PlateNumber,
		Type:                         truck.Type,
		Status:                       string(truck.Status),
		AssignedDriverID:             truck.AssignedDriverID,
		AssignedDriverName:           truck.AssignedDriverName,
		CompulsoryInsuranceExpiry:    formatTime(truck.CompulsoryInsuranceExpiry),
		ComprehensiveInsuranceExpiry: formatTime(truck.ComprehensiveInsuranceExpiry),
		InspectionExpiry:             formatTime(truck.InspectionExpiry),
		CreatedAt:                    formatTime(truck.CreatedAt),
	}
}

// RegisterDriverRequest is the HTTP request body for registering a driver.
type RegisterDriverRequest struct {
	Name          string            `json:"name"`
	Phone         string            `json:"phone"`
	LicenseNumber string            `json:"license_number"`
	LicenseClass  string            `json:"license_class,omitempty"`
	LicenseExpiry string            `json:"license_expiry,omitempty"`
	Certificates  []CertificateInfo `json:"certificates,omitempty"`
}

// CertificateInfo is a professional certificate in driver requests and
// responses.
type CertificateInfo struct {
	Type       string `json:"type"`
	Number     string `json:"number,omitempty"`
	IssueDate  string `json:"issue_date,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
}

// DriverResponse is the HTTP response for driver operations.
type DriverResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Phone              string            `json:"phone"`
	LicenseNumber      string            `json:"license_number"`
	LicenseClass       string            `json:"license_class,omitempty"`
	LicenseExpiry      string            `json:"license_expiry,omitempty"`
	Status             string            `json:"status"`
	AssignedTruckID    string            `json:"assigned_truck_id,omitempty"`
	AssignedTruckPlate string            `json:"assigned_truck_plate,omitempty"`
	Certificates       []CertificateInfo `json:"certificates,omitempty"`
	CreatedAt          string            `json:"created_at"`
}

func driverResponse(driver *domain.Driver) DriverResponse {
	resp := DriverResponse{
		ID:                 driver.ID,
		Name:               driver.Name,
		Phone:              driver.Phone,
		LicenseNumber:      driver.LicenseNumber,
		LicenseClass:       driver.LicenseClass,
		LicenseExpiry:      formatTime(driver.LicenseExpiry),
		Status:             string(driver.Status),
		AssignedTruckID:    driver.AssignedTruckID,
		AssignedTruckPlate: driver.AssignedTruckPlate,
		CreatedAt:          formatTime(driver.CreatedAt),
	}
	for _, cert := range driver.Certificates {
		resp.Certificates = append(resp.Certificates, CertificateInfo{
			Type:       string(cert.Type),
			Number:     cert.Number,
			IssueDate:  formatTime(cert.IssueDate),
			ExpiryDate: formatTime(cert.ExpiryDate),
		})
	}
	return resp
}

// RegisterClientRequest is the HTTP request body for registering a client.
type RegisterClientRequest struct {
	CompanyName   string `json:"company_name"`
	TaxID         string `json:"tax_id"`
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	City          string `json:"city,omitempty"`
}

// ClientResponse is the HTTP response for client operations.
type ClientResponse struct {
	ID            string `json:"id"`
	CompanyName   string `json:"company_name"`
	TaxID         string `json:"tax_id"`
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	City          string `json:"city,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func clientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:            client.ID,
		CompanyName:   client.CompanyName,
		TaxID:         client.TaxID,
		ContactPerson: client.ContactPerson,
		Phone:         client.Phone,
		Email:         client.Email,
		City:          client.City,
		CreatedAt:     formatTime(client.CreatedAt),
	}
}

// RegisterTruck handles POST /v1/trucks
func (h *FleetHandler) RegisterTruck(c *gin.Context) {
	var req RegisterTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	compulsory, err := parseDate(req.CompulsoryInsuranceExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid compulsory_insurance_expiry"})
		return
	}
	comprehensive, err := parseDate(req.ComprehensiveInsuranceExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid comprehensive_insurance_expiry"})
		return
	}
	inspection, err := parseDate(req.InspectionExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid inspection_expiry"})
		return
	}

	truck, err := h.fleetService.RegisterTruck(c.Request.Context(), service.RegisterTruckRequest{
		PlateNumber:                  req.PlateNumber,
		Type:                         req.Type,
		CompulsoryInsuranceExpiry:    compulsory,
		ComprehensiveInsuranceExpiry: comprehensive,
		InspectionExpiry:             inspection,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, truckResponse(truck))
}

// GetTruck handles GET /v1/trucks/:id
func (h *FleetHandler) GetTruck(c *gin.Context) {
	truck, err := h.fleetService.GetTruck(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, truckResponse(truck))
}

// ListTrucks handles GET /v1/trucks
func (h *FleetHandler) ListTrucks(c *gin.Context) {
	trucks, err := h.fleetService.ListTrucks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TruckResponse, 0, len(trucks))
	for _, truck := range trucks {
		response = append(response, truckResponse(truck))
	}

	respondJSON(c, http.StatusOK, response)
}

// RegisterDriver handles POST /v1/drivers
func (h *FleetHandler) RegisterDriver(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	licenseExpiry, err := parseDate(req.LicenseExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid license_expiry"})
		return
	}

	var certs []domain.Certificate
	for _, cert := range req.Certificates {
		issue, err := parseDate(cert.IssueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid certificate issue_date"})
			return
		}
		expiry, err := parseDate(cert.ExpiryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid certificate expiry_date"})
			return
		}
		certs = append(certs, domain.Certificate{
			Type:       domain.CertificateType(cert.Type),
			Number:     cert.Number,
			IssueDate:  issue,
			ExpiryDate: expiry,
		})
	}

	driver, err := h.fleetService.RegisterDriver(c.Request.Context(), service.RegisterDriverRequest{
		Name:          req.Name,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		LicenseClass:  req.LicenseClass,
		LicenseExpiry: licenseExpiry,
		Certificates:  certs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, driverResponse(driver))
}

// GetDriver handles GET /v1/drivers/:id
func (h *FleetHandler) GetDriver(c *gin.Context) {
	driver, err := h.fleetService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, driverResponse(driver))
}

// ListDrivers handles GET /v1/drivers
func (h *FleetHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.fleetService.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, driver := range drivers {
		response = append(response, driverResponse(driver))
	}

	respondJSON(c, http.StatusOK, response)
}

// RegisterClient handles POST /v1/clients
func (h *FleetHandler) RegisterClient(c *gin.Context) {
	var req RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	client, err := h.fleetService.RegisterClient(c.Request.Context(), service.RegisterClientRequest{
		CompanyName:   req.CompanyName,
		TaxID:         req.TaxID,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		City:          req.City,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, clientResponse(client))
}

// GetClient handles GET /v1/clients/:id
func (h *FleetHandler) GetClient(c *gin.Context) {
	client, err := h.fleetService.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, clientResponse(client))
}

// ListClients handles GET /v1/clients
func (h *FleetHandler) ListClients(c *gin.Context) {
	clients, err := h.fleetService.ListClients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		response = append(response, clientResponse(client))
	}

	respondJSON(c, http.StatusOK, response)
}
