package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/repository"
)

type subscriberRepository struct {
	db *sql.DB
}

func NewSubscriberRepository(db *sql.DB) repository.SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, s *domain.Subscriber) error {
	query := `INSERT INTO subscribers (email, is_active, created_on) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, s.Email, s.IsActive, time.Now()).Scan(&s.ID)
}

func (r *subscriberRepository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	s := &domain.Subscriber{}
	query := `SELECT id, email, is_active, created_on FROM subscribers WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&s.ID, &s.Email, &s.IsActive, &s.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *subscriberRepository) Reactivate(ctx context.Context, email string) error {
	return r.setActive(ctx, email, true)
}

func (r *subscriberRepository) Deactivate(ctx context.Context, email string) error {
	return r.setActive(ctx, email, false)
}

func (r *subscriberRepository) setActive(ctx context.Context, email string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE subscribers SET is_active = $1 WHERE email = $2`, active, email)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subscriberRepository) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, email, is_active, created_on FROM subscribers WHERE is_active = true ORDER BY created_on`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Subscriber
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.IsActive, &s.CreatedOn); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
