package document

import (
	"context"
	defError "errors"
	"fmt"
	"lexdraft/internal/domain"
	"lexdraft/internal/errors"
	"lexdraft/internal/export"
	"lexdraft/redis"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Service interface {
	Insert(ctx context.Context, document *domain.Document) error
	GetDocument(ctx context.Context, docID string, userID string) (*domain.Document, error)
	UpdateDocument(ctx context.Context, docID string, userID string, content *string, status *domain.DocumentStatus) (*domain.Document, error)
	DeleteDocument(ctx context.Context, docID string, userID string) error
	ListUserDocuments(ctx context.Context, userID string, query string, page, pageSize int) (*PaginatedDocuments, error)
	ExportDocument(ctx context.Context, docID string, userID string, format export.Format) (*export.File, error)
	ExportUserDocuments(ctx context.Context, userID string, query string) (*export.File, error)
}

type DefaultService struct {
	repository DocumentRepository
	exporter   *export.Exporter
	cache      *redis.Cache
	now        func() time.Time
}

func NewService(repository DocumentRepository, exporter *export.Exporter, cache *redis.Cache) Service {
	return &DefaultService{
		repository: repository,
		exporter:   exporter,
		cache:      cache,
		now:        time.Now,
	}
}

func versionKey(userID string) string {
	return fmt.Sprintf("user:%s:docs:version", userID)
}

// Insert stores a freshly generated document
func (s *DefaultService) Insert(ctx context.Context, document *domain.Document) error {
	err := s.repository.Insert(ctx, document)
	if err == nil {
		// increase cache key, so any new fetch will get new version
		s.cache.IncrementVersion(ctx, versionKey(document.CreatedBy))
	}
	return err
}

// owned loads the document and checks that userID created it
func (s *DefaultService) owned(ctx context.Context, docID string, userID string) (*domain.Document, error) {
	doc, err := s.repository.FindByID(ctx, docID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Document not found", err)
		}
		return nil, err
	}
	if doc.CreatedBy != userID {
		return nil, errors.Forbidden("You don't have access to this document", nil)
	}
	return doc, nil
}

func (s *DefaultService) GetDocument(ctx context.Context, docID string, userID string) (*domain.Document, error) {
	return s.owned(ctx, docID, userID)
}

func (s *DefaultService) UpdateDocument(ctx context.Context, docID string, userID string, content *string, status *domain.DocumentStatus) (*domain.Document, error) {
	if content == nil && status == nil {
		return nil, errors.UnprocessableEntity("Nothing to update", nil)
	}
	if content != nil && strings.TrimSpace(*content) == "" {
		return nil, errors.UnprocessableEntity("Content cannot be empty", nil).WithDetail("field", "content")
	}

	if _, err := s.owned(ctx, docID, userID); err != nil {
		return nil, err
	}

	doc, err := s.repository.Update(ctx, docID, domain.DocumentPatch{
		Content:   content,
		Status:    status,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Document not found", err)
		}
		return nil, err
	}
	s.cache.IncrementVersion(ctx, versionKey(userID))

	return doc, nil
}

func (s *DefaultService) DeleteDocument(ctx context.Context, docID string, userID string) error {
	if _, err := s.owned(ctx, docID, userID); err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, docID); err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("Document not found", err)
		}
		return err
	}
	s.cache.IncrementVersion(ctx, versionKey(userID))
	return nil
}

type DocumentListItem struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	Status     domain.DocumentStatus `json:"status"`
	TemplateID string                `json:"template_id"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

type PaginatedDocuments struct {
	Data []DocumentListItem `json:"data"`
	Meta DocumentsMeta      `json:"meta"`
}

func (s *DefaultService) ListUserDocuments(ctx context.Context, userID string, query string, page, pageSize int) (*PaginatedDocuments, error) {
	// Get the current data version for this user's documents
	v := s.cache.GetVersion(ctx, versionKey(userID))
	query = strings.TrimSpace(query)

	cacheKey := fmt.Sprintf("docs:u:%s:v:%d:q:%s:p:%d:ps:%d", userID, v, strings.ToLower(query), page, pageSize)

	var result PaginatedDocuments
	// get data from cache
	found, _ := s.cache.Get(ctx, cacheKey, &result)
	if found {
		return &result, nil
	}

	documents, meta, err := s.repository.FindByCreator(ctx, userID, query, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]DocumentListItem, 0, len(documents))
	for _, d := range documents {
		items = append(items, DocumentListItem{
			ID:         d.ID,
			Title:      d.Title,
			Status:     d.Status,
			TemplateID: d.TemplateID,
			CreatedAt:  d.CreatedAt,
			UpdatedAt:  d.UpdatedAt,
		})
	}
	result = PaginatedDocuments{Data: items, Meta: meta}
	// set value to cache
	go s.cache.Set(context.Background(), cacheKey, result, 24*time.Hour)

	return &result, nil
}

func (s *DefaultService) ExportDocument(ctx context.Context, docID string, userID string, format export.Format) (*export.File, error) {
	doc, err := s.owned(ctx, docID, userID)
	if err != nil {
		return nil, err
	}

	file, err := s.exporter.Export(doc.Title, doc.Content, format)
	if err != nil {
		return nil, errors.UnprocessableEntity("Failed to export document", err)
	}
	return file, nil
}

func (s *DefaultService) ExportUserDocuments(ctx context.Context, userID string, query string) (*export.File, error) {
	documents, err := s.repository.AllByCreator(ctx, userID, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}

	file, err := s.exporter.ExportList(documents)
	if err != nil {
		return nil, errors.UnprocessableEntity("Failed to export documents", err)
	}
	return file, nil
}
