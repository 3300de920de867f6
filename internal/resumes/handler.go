package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvtoaster-backend/internal/shared/server/middleware"
	"cvtoaster-backend/internal/shared/server/respond"
	"cvtoaster-backend/internal/shared/util"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.replace)
	rg.DELETE("/resumes/:id", h.remove)
	rg.GET("/resumes/:id/file", h.file)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	candidateName, filename, data, ok := h.readUploadForm(c)
	if !ok {
		return
	}

	resume, err := h.Svc.Upload(c.Request.Context(), userID, candidateName, filename, data)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.Created(c, toResponse(resume))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	items, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to list resumes", nil)
		return
	}
	out := make([]resumeResponse, 0, len(items))
	for _, resume := range items {
		out = append(out, toResponse(resume))
	}
	respond.JSON(c, http.StatusOK, gin.H{"resumes": out})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resume, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toDetailResponse(resume))
}

func (h *Handler) replace(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	candidateName, filename, data, ok := h.readUploadForm(c)
	if !ok {
		return
	}

	resume, err := h.Svc.Replace(c.Request.Context(), userID, c.Param("id"), candidateName, filename, data)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(resume))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "resume deleted"})
}

func (h *Handler) file(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resume, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	disposition := "inline"
	if c.Query("download") == "1" {
		disposition = "attachment"
	}
	safeName, err := util.SanitizeFileName(resume.Filename)
	if err != nil {
		safeName = "resume"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+safeName+`"`)
	c.Data(http.StatusOK, resume.ContentType(), resume.Data)
}

func (h *Handler) readUploadForm(c *gin.Context) (candidateName, filename string, data []byte, ok bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	candidateName = c.PostForm("candidate_name")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return "", "", nil, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return "", "", nil, false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return "", "", nil, false
	}
	return candidateName, fileHeader.Filename, data, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrMissingName), errors.Is(err, ErrMissingFile), errors.Is(err, ErrUnsupportedType):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to process resume", nil)
	}
}
