package repository

import (
	"context"
	"fmt"

	"github.com/veloromanov/sport-backoffice/internal/models"
)

// CreateSport вставляет новый вид спорта и возвращает его ID.
func (s *Storage) CreateSport(ctx context.Context, sport models.Sport) (int, error) {
	const op = "storage.CreateSport"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sports (name, is_active, icon)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sport.Name, sport.IsActive, sport.Icon).Scan(&newID)
	if err != nil {
		return 0, wrapRowError(op, err)
	}
	return newID, nil
}

// FindActiveSports возвращает все активные виды спорта.
func (s *Storage) FindActiveSports(ctx context.Context) ([]*models.Sport, error) {
	const op = "storage.FindActiveSports"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, is_active, icon
			  FROM sports
			  WHERE is_active = TRUE
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Sport
	for rows.Next() {
		var sport models.Sport
		if err = rows.Scan(&sport.ID, &sport.Name, &sport.IsActive, &sport.Icon); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sport)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindSportByID возвращает вид спорта по его ID.
// Возвращает ErrNotFound, если записи нет.
func (s *Storage) FindSportByID(ctx context.Context, id int) (*models.Sport, error) {
	const op = "storage.FindSportByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, is_active, icon
			  FROM sports WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Sport
	if err := row.Scan(&result.ID, &result.Name, &result.IsActive, &result.Icon); err != nil {
		return nil, wrapRowError(op, err)
	}
	return &result, nil
}

// FindSportByName возвращает вид спорта по имени.
// Возвращает ErrNotFound, если записи нет.
func (s *Storage) FindSportByName(ctx context.Context, name string) (*models.Sport, error) {
	const op = "storage.FindSportByName"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, is_active, icon
			  FROM sports WHERE name = $1`
	row := s.DB.QueryRowContext(ctx, query, name)

	var result models.Sport
	if err := row.Scan(&result.ID, &result.Name, &result.IsActive, &result.Icon); err != nil {
		return nil, wrapRowError(op, err)
	}
	return &result, nil
}

// UpdateSport перезаписывает данные вида спорта по его ID
// и возвращает количество изменённых строк.
func (s *Storage) UpdateSport(ctx context.Context, sport models.Sport) (int, error) {
	const op = "storage.UpdateSport"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE sports
			  SET name = $1, is_active = $2, icon = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query,
		sport.Name, sport.IsActive, sport.Icon, sport.ID)
	if err != nil {
		return 0, wrapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteSport удаляет вид спорта по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteSport(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteSport"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM sports WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
