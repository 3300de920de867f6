package insights

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvtoaster-backend/internal/llm"
	"cvtoaster-backend/internal/resumes"
	"cvtoaster-backend/internal/shared/server/middleware"
	"cvtoaster-backend/internal/shared/server/respond"
)

const (
	actionRegenerate = "regenerate"
	actionSave       = "save"
)

// Handler wires HTTP handlers to the orchestrator and the resume store.
type Handler struct {
	Svc     *Service
	Resumes *resumes.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, resumeSvc *resumes.Service) *Handler {
	return &Handler{Svc: svc, Resumes: resumeSvc}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/roast/:id", h.roast)
	rg.GET("/roast/:id", h.cachedRoast)
	rg.POST("/feedback/:id", h.feedback)
	rg.GET("/feedback/:id", h.cachedFeedback)
	rg.POST("/improve_content", h.improveContent)
	rg.POST("/ats_analysis/:id", h.atsAnalysis)
	rg.POST("/generate_cover_letter", h.generateCoverLetter)
}

// tagRequest annotates the request context for the logging middleware.
func tagRequest(c *gin.Context, feature Feature, resumeID string) {
	c.Set("feature", string(feature))
	if resumeID != "" {
		c.Set("resumeId", resumeID)
	}
}

type roastRequest struct {
	Action        string `json:"action"`
	RoastResponse string `json:"roast_response"`
}

func (h *Handler) roast(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	tagRequest(c, FeatureRoast, c.Param("id"))

	var req roastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	switch req.Action {
	case actionSave:
		if err := h.Resumes.SaveRoast(c.Request.Context(), userID, c.Param("id"), req.RoastResponse); err != nil {
			h.writeError(c, err)
			return
		}
		respond.JSON(c, http.StatusOK, gin.H{"message": "roast saved"})
	case actionRegenerate:
		resume, err := h.Resumes.Get(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			h.writeError(c, err)
			return
		}
		out, err := h.Svc.Generate(c.Request.Context(), Request{
			Feature:       FeatureRoast,
			ResumeText:    resume.ExtractedText,
			CandidateName: resume.CandidateName,
		})
		if err != nil {
			h.writeError(c, err)
			return
		}
		respond.JSON(c, http.StatusOK, gin.H{"roast_response": out})
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "action must be regenerate or save", nil)
	}
}

func (h *Handler) cachedRoast(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resume, err := h.Resumes.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if resume.RoastResponse == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "no saved roast for this resume", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"roast_response": resume.RoastResponse})
}

type feedbackRequest struct {
	Action           string `json:"action"`
	FeedbackResponse string `json:"feedback_response"`
}

func (h *Handler) feedback(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	tagRequest(c, FeatureFeedback, c.Param("id"))

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	switch req.Action {
	case actionSave:
		if err := h.Resumes.SaveFeedback(c.Request.Context(), userID, c.Param("id"), req.FeedbackResponse); err != nil {
			h.writeError(c, err)
			return
		}
		respond.JSON(c, http.StatusOK, gin.H{"message": "feedback saved"})
	case actionRegenerate:
		resume, err := h.Resumes.Get(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			h.writeError(c, err)
			return
		}
		out, err := h.Svc.Generate(c.Request.Context(), Request{
			Feature:       FeatureFeedback,
			ResumeText:    resume.ExtractedText,
			CandidateName: resume.CandidateName,
		})
		if err != nil {
			h.writeError(c, err)
			return
		}
		respond.JSON(c, http.StatusOK, gin.H{"feedback_response": out})
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "action must be regenerate or save", nil)
	}
}

func (h *Handler) cachedFeedback(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resume, err := h.Resumes.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if resume.FeedbackResponse == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "no saved feedback for this resume", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"feedback_response": resume.FeedbackResponse})
}

type improveContentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) improveContent(c *gin.Context) {
	tagRequest(c, FeatureImprove, "")

	var req improveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	out, err := h.Svc.Generate(c.Request.Context(), Request{
		Feature: FeatureImprove,
		Content: req.Content,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"improved_content": out})
}

type atsRequest struct {
	JobDescription string `json:"job_description"`
}

func (h *Handler) atsAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	tagRequest(c, FeatureATS, c.Param("id"))

	var req atsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, err := h.Resumes.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	out, err := h.Svc.Generate(c.Request.Context(), Request{
		Feature:        FeatureATS,
		ResumeText:     resume.ExtractedText,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"analysis": out})
}

type coverLetterRequest struct {
	ResumeID       string `json:"resume_id"`
	JobDescription string `json:"job_description"`
	CompanyName    string `json:"company_name"`
	PositionName   string `json:"position_name"`
	RecipientName  string `json:"recipient_name"`
	PlatformName   string `json:"platform_name"`
}

func (h *Handler) generateCoverLetter(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req coverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ResumeID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume_id is required", nil)
		return
	}
	tagRequest(c, FeatureCoverLetter, req.ResumeID)

	resume, err := h.Resumes.Get(c.Request.Context(), userID, req.ResumeID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	out, err := h.Svc.Generate(c.Request.Context(), Request{
		Feature:        FeatureCoverLetter,
		ResumeText:     resume.ExtractedText,
		CandidateName:  resume.CandidateName,
		JobDescription: req.JobDescription,
		CompanyName:    req.CompanyName,
		PositionName:   req.PositionName,
		RecipientName:  req.RecipientName,
		PlatformName:   req.PlatformName,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"cover_letter": out})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrMissingInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrEmptyDocument):
		respond.Error(c, http.StatusUnprocessableEntity, "empty_document", err.Error(), nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "generation_unavailable", "generation model is not configured", nil)
	default:
		respond.Error(c, http.StatusBadGateway, "generation_failed", "failed to generate response", nil)
	}
}
