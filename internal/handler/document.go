package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"naklos/internal/domain"
	"naklos/internal/repository"
	"naklos/internal/service"
)

// DocumentHandler handles HTTP requests for document submissions.
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// SubmitDocumentRequest is the HTTP request body for submitting a document.
type SubmitDocumentRequest struct {
	Category        string `json:"category"`
	SubjectID       string `json:"subject_id"`
	SubmittedBy     string `json:"submitted_by"`
	ImageRef        string `json:"image_ref"`
	SuggestedExpiry string `json:"suggested_expiry_date"`
}

// ApproveDocumentRequest is the HTTP request body for approving a submission.
type ApproveDocumentRequest struct {
	ConfirmedExpiry string `json:"confirmed_expiry_date"`
	ReviewedBy      string `json:"reviewed_by"`
}

// RejectDocumentRequest is the HTTP request body for rejecting a submission.
type RejectDocumentRequest struct {
	Reason     string `json:"reason"`
	Note       string `json:"note,omitempty"`
	ReviewedBy string `json:"reviewed_by"`
}

// SubmissionResponse is the HTTP response for submission operations.
type SubmissionResponse struct {
	ID               string `json:"id"`
	Category         string `json:"category"`
	SubjectType      string `json:"subject_type"`
	SubjectID        string `json:"subject_id"`
	SubjectName      string `json:"subject_name,omitempty"`
	SubmittedBy      string `json:"submitted_by,omitempty"`
	ImageRef         string `json:"image_ref"`
	SuggestedExpiry  string `json:"suggested_expiry_date,omitempty"`
	ConfirmedExpiry  string `json:"confirmed_expiry_date,omitempty"`
	Status           string `json:"status"`
	SubmittedAt      string `json:"submitted_at"`
	ReviewedAt       string `json:"reviewed_at,omitempty"`
	ReviewedBy       string `json:"reviewed_by,omitempty"`
	RejectionReason  string `json:"rejection_reason,omitempty"`
	RejectionNote    string `json:"rejection_note,omitempty"`
	PreviousImageRef string `json:"previous_image_ref,omitempty"`
	PreviousExpiry   string `json:"previous_expiry_date,omitempty"`
}

func submissionResponse(sub *domain.DocumentSubmission) SubmissionResponse {
	return SubmissionResponse{
		ID:               sub.ID,
		Category:         string(sub.Category),
		SubjectType:      string(sub.SubjectType),
		SubjectID:        sub.SubjectID,
		SubjectName:      sub.SubjectName,
		SubmittedBy:      sub.SubmittedBy,
		ImageRef:         sub.ImageRef,
		SuggestedExpiry:  formatTime(sub.SuggestedExpiry),
		ConfirmedExpiry:  formatTime(sub.ConfirmedExpiry),
		Status:           string(sub.Status),
		SubmittedAt:      formatTime(sub.SubmittedAt),
		ReviewedAt:       formatTime(sub.ReviewedAt),
		ReviewedBy:       sub.ReviewedBy,
		RejectionReason:  string(sub.RejectionReason),
		RejectionNote:    sub.RejectionNote,
		PreviousImageRef: sub.PreviousImageRef,
		PreviousExpiry:   formatTime(sub.PreviousExpiry),
	}
}

// Submit handles POST /v1/documents
func (h *DocumentHandler) Submit(c *gin.Context) {
	var req SubmitDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	suggested, err := parseDate(req.SuggestedExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid suggested_expiry_date"})
		return
	}

	sub, err := h.documentService.Submit(c.Request.Context(), service.SubmitDocumentRequest{
		Category:        domain.DocumentCategory(req.Category),
		SubjectID:       req.SubjectID,
		SubmittedBy:     req.SubmittedBy,
		ImageRef:        req.ImageRef,
		SuggestedExpiry: suggested,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, submissionResponse(sub))
}

// Approve handles POST /v1/documents/:id/approve
func (h *DocumentHandler) Approve(c *gin.Context) {
	var req ApproveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	confirmed, err := parseDate(req.ConfirmedExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid confirmed_expiry_date"})
		return
	}

	sub, err := h.documentService.Approve(c.Request.Context(), c.Param("id"), confirmed, req.ReviewedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, submissionResponse(sub))
}

// Reject handles POST /v1/documents/:id/reject
func (h *DocumentHandler) Reject(c *gin.Context) {
	var req RejectDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	sub, err := h.documentService.Reject(c.Request.Context(), c.Param("id"),
		domain.RejectionReason(req.Reason), req.Note, req.ReviewedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, submissionResponse(sub))
}

// Get handles GET /v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	sub, err := h.documentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, submissionResponse(sub))
}

// List handles GET /v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	var filter repository.SubmissionListFilter

	if v := c.Query("status"); v != "" {
		status := domain.SubmissionStatus(v)
		filter.Status = &status
	}
	if v := c.Query("subject_type"); v != "" {
		subjectType := domain.SubjectType(v)
		filter.SubjectType = &subjectType
	}
	if v := c.Query("subject_id"); v != "" {
		filter.SubjectID = &v
	}

	subs, err := h.documentService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		response = append(response, submissionResponse(sub))
	}

	respondJSON(c, http.StatusOK, response)
}
