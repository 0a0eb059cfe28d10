package pipeline

import (
	"context"
	defError "errors"
	"lexdraft/internal/domain"
	"lexdraft/internal/errors"
	"lexdraft/internal/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Submitter interface {
	Submit(ctx context.Context, templateID string, values domain.FormValues, actorID string) (string, error)
}

type Handler struct {
	pipeline Submitter
}

func NewHandler(pipeline Submitter) *Handler {
	return &Handler{pipeline: pipeline}
}

type CreateDocumentRequest struct {
	Values domain.FormValues `json:"values"`
}

func (h *Handler) CreateDocument(c *gin.Context) {
	var form CreateDocumentRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid request body", err))
		return
	}

	var actorID string
	if user, ok := session.FromContext(c.Request.Context()); ok {
		actorID = user.ID
	}

	id, err := h.pipeline.Submit(c.Request.Context(), c.Param("templateId"), form.Values, actorID)
	if err != nil {
		var pErr *Error
		if defError.As(err, &pErr) {
			c.Error(pErr.APIError())
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}
