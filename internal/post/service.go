package post

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/esposm03/my-cms/internal/events"
)

type Service interface {
	Create(ctx context.Context, title, content string) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*ReturnData, error)
	List(ctx context.Context) ([]ReturnData, error)
}

type service struct {
	repo   Repository
	events events.Publisher
}

func NewService(repo Repository, pub events.Publisher) Service {
	return &service{repo: repo, events: pub}
}

func (s *service) Create(ctx context.Context, title, content string) (uuid.UUID, error) {
	ctx, span := tracer.Start(ctx, "create_post")
	defer span.End()
	span.SetAttributes(attribute.String("post.title", title))

	if title == "" {
		return uuid.Nil, ErrValidation
	}

	id := uuid.New()
	created := time.Now().UTC()
	if err := s.repo.Insert(ctx, id, title, content, created); err != nil {
		return uuid.Nil, err
	}

	// Event delivery is best-effort: a broker outage must not fail the write.
	if err := s.events.PostCreated(ctx, events.PostCreated{ID: id, Title: title, Created: created}); err != nil {
		slog.WarnContext(ctx, "publish posts.created failed", "post_id", id, "error", err)
	}
	return id, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ReturnData, error) {
	ctx, span := tracer.Start(ctx, "get_post")
	defer span.End()
	span.SetAttributes(attribute.String("post.id", id.String()))

	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]ReturnData, error) {
	ctx, span := tracer.Start(ctx, "list_posts")
	defer span.End()

	return s.repo.ListAll(ctx)
}
