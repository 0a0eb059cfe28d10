// Package pipeline turns a template and a filled form into a stored draft
// document: validate, generate, persist.
package pipeline

import (
	"context"
	defError "errors"
	"fmt"
	"lexdraft/internal/config"
	"lexdraft/internal/domain"
	"lexdraft/internal/template"
	"lexdraft/redis"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type TemplateStore interface {
	FindByID(ctx context.Context, id string) (*domain.Template, error)
}

type Generator interface {
	Generate(ctx context.Context, tmpl *domain.Template, values domain.FormValues) (string, error)
}

type DocumentStore interface {
	Insert(ctx context.Context, doc *domain.Document) error
}

type Pipeline struct {
	templates TemplateStore
	generator Generator
	documents DocumentStore
	guard     Guard
	now       func() time.Time
	logger    *logrus.Logger
}

type Option func(*Pipeline)

// WithGuard replaces the default in-process guard
func WithGuard(guard Guard) Option {
	return func(p *Pipeline) {
		if guard != nil {
			p.guard = guard
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

func New(templates TemplateStore, generator Generator, documents DocumentStore, logger *logrus.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		templates: templates,
		generator: generator,
		documents: documents,
		guard:     NewLocalGuard(),
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit runs one generation request end to end and returns the new
// document id. It is not idempotent: every successful call inserts a row.
func (p *Pipeline) Submit(ctx context.Context, templateID string, values domain.FormValues, actorID string) (string, error) {
	if actorID == "" {
		return "", &Error{Kind: KindUnauthenticated}
	}

	release, err := p.guard.Acquire(ctx, guardKey(actorID, templateID))
	switch {
	case defError.Is(err, redis.ErrLocked):
		return "", &Error{Kind: KindBusy, Err: err}
	case err != nil:
		// an unreachable lock backend must not block document creation
		p.logger.WithError(err).Warn("submission guard unavailable, continuing unguarded")
	default:
		defer release()
	}

	tmpl, err := p.templates.FindByID(ctx, templateID)
	if err != nil {
		return "", &Error{Kind: KindTemplateUnavailable, Err: err}
	}
	if tmpl == nil || !tmpl.VisibleTo(actorID) {
		return "", &Error{Kind: KindTemplateUnavailable}
	}

	fields := template.FieldsFor(tmpl.Category)
	if field, missing := template.MissingRequired(fields, values); missing {
		return "", &Error{Kind: KindValidationFailed, Field: field}
	}
	known := template.KnownValues(fields, values)

	content, err := p.generator.Generate(ctx, tmpl, known)
	if err != nil {
		return "", &Error{Kind: KindGenerationFailed, Err: err}
	}

	doc := &domain.Document{
		Title:      fmt.Sprintf("%s - %s", tmpl.Title, p.now().UTC().Format("2006-01-02")),
		Content:    content,
		TemplateID: tmpl.ID,
		CreatedBy:  actorID,
		Status:     domain.StatusDraft,
		FormValues: toJSONMap(known),
	}
	if err := p.documents.Insert(ctx, doc); err != nil {
		config.LogError(p.logger, "pipeline", "Submit", "insert document", logrus.Fields{
			"template_id": tmpl.ID,
			"user_id":     actorID,
		}, err)
		return "", &Error{Kind: KindPersistenceFailed, Err: err}
	}

	p.logger.WithFields(logrus.Fields{
		"document_id": doc.ID,
		"template_id": tmpl.ID,
		"user_id":     actorID,
	}).Info("document created")

	return doc.ID, nil
}

func toJSONMap(values domain.FormValues) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
