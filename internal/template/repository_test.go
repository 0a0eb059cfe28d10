package template

import (
	"context"
	"lexdraft/internal/db/dbtest"
	"lexdraft/internal/document"
	"lexdraft/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_DeleteKeepsDocuments(t *testing.T) {
	conn := dbtest.Open(t)
	templates := NewRepository(conn)
	documents := document.NewRepository(conn)
	ctx := context.Background()

	tmpl := &domain.Template{Title: "NDA", Category: domain.CategoryNDA, Content: "body", IsPublic: true, CreatedBy: "author"}
	require.NoError(t, templates.Create(ctx, tmpl))

	doc := &domain.Document{Title: "NDA - 2024-05-01", Content: "text", TemplateID: tmpl.ID, CreatedBy: "author"}
	require.NoError(t, documents.Insert(ctx, doc))

	require.NoError(t, templates.Delete(ctx, tmpl.ID))

	_, err := templates.FindByID(ctx, tmpl.ID)
	assert.Error(t, err)

	got, err := documents.FindByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, tmpl.ID, got.TemplateID)
	assert.Equal(t, "text", got.Content)
}
