package materials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/besmartkids/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, req models.MaterialRequest) (*models.Material, error) {
	var m models.Material
	var description, subject sql.NullString
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO materials (title, description, subject, grade_level)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, title, description, subject, grade_level, created_at`,
		req.Title, nullString(req.Description), nullString(req.Subject), req.GradeLevel,
	).Scan(&m.ID, &m.Title, &description, &subject, &m.GradeLevel, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}
	m.Description = description.String
	m.Subject = subject.String
	return &m, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*models.Material, error) {
	var m models.Material
	var description, subject sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, subject, grade_level, created_at
		 FROM materials WHERE id = $1`, id,
	).Scan(&m.ID, &m.Title, &description, &subject, &m.GradeLevel, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Description = description.String
	m.Subject = subject.String
	return &m, nil
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]models.Material, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, subject, grade_level, created_at
		 FROM materials ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var out []models.Material
	for rows.Next() {
		var m models.Material
		var description, subject sql.NullString
		if err := rows.Scan(&m.ID, &m.Title, &description, &subject, &m.GradeLevel, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		m.Description = description.String
		m.Subject = subject.String
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, id int64, req models.MaterialRequest) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE materials SET title = $1, description = $2, subject = $3, grade_level = $4
		 WHERE id = $5`,
		req.Title, nullString(req.Description), nullString(req.Subject), req.GradeLevel, id)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
