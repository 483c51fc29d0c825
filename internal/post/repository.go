package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("my-cms/post")

type Repository interface {
	Insert(ctx context.Context, id uuid.UUID, title, content string, created time.Time) error
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnData, error)
	ListAll(ctx context.Context) ([]ReturnData, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Insert(ctx context.Context, id uuid.UUID, title, content string, created time.Time) error {
	ctx, span := tracer.Start(ctx, "db.insert_post")
	defer span.End()
	span.SetAttributes(attribute.String("post.id", id.String()))

	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts (id, title, content, created) VALUES ($1, $2, $3, $4)`,
		id, title, content, created,
	)
	if err != nil {
		return storeError(err)
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*ReturnData, error) {
	ctx, span := tracer.Start(ctx, "db.find_post")
	defer span.End()
	span.SetAttributes(attribute.String("post.id", id.String()))

	var p ReturnData
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, content, created FROM posts WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.Created)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError(err)
	}
	p.Created = p.Created.UTC()
	return &p, nil
}

func (r *repository) ListAll(ctx context.Context) ([]ReturnData, error) {
	ctx, span := tracer.Start(ctx, "db.list_posts")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, created FROM posts`,
	)
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	out := []ReturnData{}
	for rows.Next() {
		var p ReturnData
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Created); err != nil {
			return nil, storeError(err)
		}
		p.Created = p.Created.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err)
	}
	return out, nil
}

// storeError classifies a pgx error. A PgError means the server answered
// and rejected us; anything else means we never got an answer.
func storeError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
