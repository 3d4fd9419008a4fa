package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var galleryColumns = []string{"id", "title", "image_url", "created_at"}

type pgGalleryRepository struct {
	pool *pgxpool.Pool
}

func NewGalleryRepository(pool *pgxpool.Pool) GalleryRepository {
	return &pgGalleryRepository{pool: pool}
}

func (r *pgGalleryRepository) Create(ctx context.Context, item *GalleryItem) error {
	query := `
		INSERT INTO gallery (title, image_url)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, item.Title, item.ImageURL).Scan(&item.ID, &item.CreatedAt)
	return mapPgError(err, "insert gallery item")
}

func (r *pgGalleryRepository) List(ctx context.Context, opts ListOptions) ([]*GalleryItem, error) {
	sql, args, err := buildSelect(ctx, TableGallery, galleryColumns, opts.orDefault("created_at", true))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err, "list gallery")
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*GalleryItem, error) {
		g := &GalleryItem{}
		if err := row.Scan(&g.ID, &g.Title, &g.ImageURL, &g.CreatedAt); err != nil {
			return nil, err
		}
		return g, nil
	})
	if err != nil {
		return nil, mapPgError(err, "scan gallery item")
	}
	return items, nil
}

func (r *pgGalleryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM gallery WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err, "delete gallery item")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
