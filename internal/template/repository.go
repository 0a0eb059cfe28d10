package template

import (
	"context"
	"lexdraft/internal/domain"

	"gorm.io/gorm"
)

// ListFilter narrows List; nil fields do not filter
type ListFilter struct {
	IsPublic  *bool
	CreatedBy *string
}

type TemplateRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Template, error)
	Create(ctx context.Context, template *domain.Template) error
	Delete(ctx context.Context, id string) error
}

type TemplateRepositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TemplateRepository {
	return &TemplateRepositoryImpl{db: db}
}

func (r *TemplateRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Template, error) {
	var tmpl domain.Template
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tmpl).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *TemplateRepositoryImpl) List(ctx context.Context, filter ListFilter) ([]domain.Template, error) {
	templates := []domain.Template{}
	query := r.db.WithContext(ctx).Model(&domain.Template{})
	if filter.IsPublic != nil {
		query = query.Where("is_public = ?", *filter.IsPublic)
	}
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}
	err := query.Order("created_at DESC").Find(&templates).Error
	return templates, err
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, template *domain.Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

// Delete removes only the template row; documents keep their template_id
func (r *TemplateRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Template{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
