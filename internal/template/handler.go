package template

import (
	"lexdraft/internal/domain"
	"lexdraft/internal/errors"
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

type CreateTemplateRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
	Category    string `json:"category" binding:"required,max=64"`
	Content     string `json:"content" binding:"required"`
	IsPublic    *bool  `json:"is_public"`
}

func templateID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.Error(errors.NotFound("Template not found", err))
		return "", false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	scope := Scope(c.DefaultQuery("scope", string(ScopePublic)))
	if scope != ScopePublic && scope != ScopeMine {
		c.Error(errors.BadRequest("scope must be public or mine", nil))
		return
	}

	templates, err := h.service.ListTemplates(c.Request.Context(), c.GetString("user_id"), scope)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": templates})
}

func (h *Handler) Show(c *gin.Context) {
	id, ok := templateID(c)
	if !ok {
		return
	}

	tmpl, err := h.service.GetTemplate(c.Request.Context(), id, c.GetString("user_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, tmpl)
}

func (h *Handler) Fields(c *gin.Context) {
	id, ok := templateID(c)
	if !ok {
		return
	}

	fields, err := h.service.Fields(c.Request.Context(), id, c.GetString("user_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": fields})
}

func (h *Handler) Create(c *gin.Context) {
	var form CreateTemplateRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	isPublic := true
	if form.IsPublic != nil {
		isPublic = *form.IsPublic
	}

	tmpl := &domain.Template{
		Title:       form.Title,
		Description: form.Description,
		Category:    domain.Category(form.Category),
		Content:     form.Content,
		IsPublic:    isPublic,
	}

	if err := h.service.CreateTemplate(c.Request.Context(), c.GetString("user_id"), tmpl); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, tmpl)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := templateID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTemplate(c.Request.Context(), id, c.GetString("user_id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
