package template

import (
	"context"
	defError "errors"
	"fmt"
	"lexdraft/internal/domain"
	"lexdraft/internal/errors"
	"lexdraft/redis"
	"time"

	"gorm.io/gorm"
)

const publicTemplatesVersionKey = "templates:public:version"

type Service interface {
	GetTemplate(ctx context.Context, id string, userID string) (*domain.Template, error)
	ListTemplates(ctx context.Context, userID string, scope Scope) ([]domain.Template, error)
	CreateTemplate(ctx context.Context, userID string, template *domain.Template) error
	DeleteTemplate(ctx context.Context, id string, userID string) error
	Fields(ctx context.Context, id string, userID string) ([]domain.FieldDefinition, error)
}

type Scope string

const (
	ScopePublic Scope = "public"
	ScopeMine   Scope = "mine"
)

type DefaultService struct {
	repository TemplateRepository
	cache      *redis.Cache
}

func NewService(repository TemplateRepository, cache *redis.Cache) Service {
	return &DefaultService{repository: repository, cache: cache}
}

func (s *DefaultService) GetTemplate(ctx context.Context, id string, userID string) (*domain.Template, error) {
	tmpl, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Template not found", err)
		}
		return nil, err
	}
	// private templates of other users look the same as missing ones
	if !tmpl.VisibleTo(userID) {
		return nil, errors.NotFound("Template not found", nil)
	}
	return tmpl, nil
}

func (s *DefaultService) ListTemplates(ctx context.Context, userID string, scope Scope) ([]domain.Template, error) {
	if scope == ScopeMine {
		return s.repository.List(ctx, ListFilter{CreatedBy: &userID})
	}

	v := s.cache.GetVersion(ctx, publicTemplatesVersionKey)
	cacheKey := fmt.Sprintf("templates:public:v:%d", v)

	var templates []domain.Template
	if found, _ := s.cache.Get(ctx, cacheKey, &templates); found {
		return templates, nil
	}

	isPublic := true
	templates, err := s.repository.List(ctx, ListFilter{IsPublic: &isPublic})
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, cacheKey, templates, time.Hour)

	return templates, nil
}

func (s *DefaultService) CreateTemplate(ctx context.Context, userID string, template *domain.Template) error {
	template.CreatedBy = userID
	if err := s.repository.Create(ctx, template); err != nil {
		return err
	}
	if template.IsPublic {
		s.cache.IncrementVersion(ctx, publicTemplatesVersionKey)
	}
	return nil
}

func (s *DefaultService) DeleteTemplate(ctx context.Context, id string, userID string) error {
	tmpl, err := s.GetTemplate(ctx, id, userID)
	if err != nil {
		return err
	}
	if tmpl.CreatedBy != userID {
		return errors.Forbidden("Only the author can delete a template", nil)
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("Template not found", err)
		}
		return err
	}
	if tmpl.IsPublic {
		s.cache.IncrementVersion(ctx, publicTemplatesVersionKey)
	}
	return nil
}

func (s *DefaultService) Fields(ctx context.Context, id string, userID string) ([]domain.FieldDefinition, error) {
	tmpl, err := s.GetTemplate(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return FieldsFor(tmpl.Category), nil
}
