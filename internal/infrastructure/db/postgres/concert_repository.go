package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

const concertColumns = `id, name, is_active, created_at, updated_at`

type ConcertRepository struct {
	pool *pgxpool.Pool
}

func NewConcertRepository(pool *pgxpool.Pool) *ConcertRepository {
	return &ConcertRepository{pool: pool}
}

var _ ports.ConcertRepository = (*ConcertRepository)(nil)

func scanConcert(row rowScanner) (*domain.Concert, error) {
	var c domain.Concert
	if err := row.Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConcertRepository) Create(ctx context.Context, c *domain.Concert) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO concerts (id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	return translateError(err, domain.ErrConcertNotFound)
}

func (r *ConcertRepository) FindByID(ctx context.Context, id string) (*domain.Concert, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	c, err := scanConcert(r.pool.QueryRow(ctx, `SELECT `+concertColumns+` FROM concerts WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, domain.ErrConcertNotFound)
	}
	return c, nil
}

// List returns concerts newest first.
func (r *ConcertRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Concert, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + concertColumns + ` FROM concerts`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	concerts := make([]*domain.Concert, 0)
	for rows.Next() {
		c, err := scanConcert(rows)
		if err != nil {
			return nil, err
		}
		concerts = append(concerts, c)
	}
	return concerts, rows.Err()
}

// Update applies the non-nil fields of upd.
func (r *ConcertRepository) Update(ctx context.Context, id string, upd ports.ConcertUpdate) (*domain.Concert, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		UPDATE concerts
		SET name = COALESCE($2, name),
		    is_active = COALESCE($3, is_active),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+concertColumns,
		id, upd.Name, upd.IsActive,
	)
	c, err := scanConcert(row)
	if err != nil {
		return nil, translateError(err, domain.ErrConcertNotFound)
	}
	return c, nil
}
