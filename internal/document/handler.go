package document

import (
	"lexdraft/internal/domain"
	"lexdraft/internal/errors"
	"lexdraft/internal/export"
	"lexdraft/internal/utils"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func documentID(c *gin.Context) (string, bool) {
	id := c.Param("documentId")
	if _, err := uuid.Parse(id); err != nil {
		c.Error(errors.NotFound("Document not found", err))
		return "", false
	}
	return id, true
}

func sendFile(c *gin.Context, file *export.File) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Name})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, file.ContentType, file.Bytes)
}

func (h *Handler) ShowUserDocuments(c *gin.Context) {
	page, pageSize := utils.GetPaginationParams(c)
	result, err := h.service.ListUserDocuments(
		c.Request.Context(),
		c.GetString("user_id"),
		utils.GetSearchQuery(c),
		page, pageSize,
	)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ExportUserDocuments(c *gin.Context) {
	file, err := h.service.ExportUserDocuments(c.Request.Context(), c.GetString("user_id"), utils.GetSearchQuery(c))
	if err != nil {
		c.Error(err)
		return
	}

	sendFile(c, file)
}

func (h *Handler) ShowDocument(c *gin.Context) {
	docID, ok := documentID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetDocument(c.Request.Context(), docID, c.GetString("user_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

type UpdateDocumentRequest struct {
	Content *string `json:"content"`
	Status  *string `json:"status" binding:"omitempty,oneof=draft final"`
}

func (h *Handler) UpdateDocument(c *gin.Context) {
	docID, ok := documentID(c)
	if !ok {
		return
	}

	var input UpdateDocumentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	var status *domain.DocumentStatus
	if input.Status != nil {
		s := domain.DocumentStatus(*input.Status)
		status = &s
	}

	doc, err := h.service.UpdateDocument(c.Request.Context(), docID, c.GetString("user_id"), input.Content, status)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	docID, ok := documentID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteDocument(c.Request.Context(), docID, c.GetString("user_id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ExportDocument(c *gin.Context) {
	docID, ok := documentID(c)
	if !ok {
		return
	}

	format := export.Format(c.DefaultQuery("format", string(export.FormatPDF)))
	if format != export.FormatPDF && format != export.FormatDOCX {
		c.Error(errors.UnprocessableEntity("format must be pdf or docx", nil))
		return
	}

	file, err := h.service.ExportDocument(c.Request.Context(), docID, c.GetString("user_id"), format)
	if err != nil {
		c.Error(err)
		return
	}

	sendFile(c, file)
}
