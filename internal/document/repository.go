package document

import (
	"context"
	"lexdraft/internal/domain"
	"strings"

	"gorm.io/gorm"
)

type DocumentRepository interface {
	Insert(ctx context.Context, document *domain.Document) error
	Update(ctx context.Context, id string, patch domain.DocumentPatch) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	FindByCreator(ctx context.Context, userID, query string, page, pageSize int) ([]domain.Document, DocumentsMeta, error)
	AllByCreator(ctx context.Context, userID, query string) ([]domain.Document, error)
}

type DocumentRepositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

func (r *DocumentRepositoryImpl) Insert(ctx context.Context, document *domain.Document) error {
	if document.Status == "" {
		document.Status = domain.StatusDraft
	}
	return r.db.WithContext(ctx).Create(document).Error
}

// Update applies the non-nil fields of patch; last write wins
func (r *DocumentRepositoryImpl) Update(ctx context.Context, id string, patch domain.DocumentPatch) (*domain.Document, error) {
	updates := map[string]any{"updated_at": patch.UpdatedAt}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}

	result := r.db.WithContext(ctx).Model(&domain.Document{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DocumentRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

type DocumentsMeta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalPage   int   `json:"total_page"`
}

func (r *DocumentRepositoryImpl) creatorScope(ctx context.Context, userID, query string) *gorm.DB {
	scope := r.db.WithContext(ctx).Model(&domain.Document{}).Where("created_by = ?", userID)
	if q := strings.TrimSpace(query); q != "" {
		scope = scope.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	return scope
}

// FindByCreator lists one user's documents newest first; query filters on the
// title, case-insensitively
func (r *DocumentRepositoryImpl) FindByCreator(ctx context.Context, userID, query string, page, pageSize int) ([]domain.Document, DocumentsMeta, error) {
	documents := []domain.Document{}
	var totalRecords int64

	if err := r.creatorScope(ctx, userID, query).Count(&totalRecords).Error; err != nil {
		return documents, DocumentsMeta{}, err
	}

	offset := (page - 1) * pageSize
	err := r.creatorScope(ctx, userID, query).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&documents).Error

	totalPages := int((totalRecords + int64(pageSize) - 1) / int64(pageSize))

	return documents, DocumentsMeta{
		Total:       totalRecords,
		PerPage:     pageSize,
		TotalPage:   totalPages,
		CurrentPage: page,
	}, err
}

func (r *DocumentRepositoryImpl) AllByCreator(ctx context.Context, userID, query string) ([]domain.Document, error) {
	documents := []domain.Document{}
	err := r.creatorScope(ctx, userID, query).Order("created_at DESC").Find(&documents).Error
	return documents, err
}
