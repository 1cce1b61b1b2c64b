package repository

import (
	"context"
	"fmt"

	"github.com/veloromanov/sport-backoffice/internal/models"
)

// FindGroupByName возвращает группу по её уникальному имени.
// Возвращает ErrNotFound, если группы с таким именем нет.
func (s *Storage) FindGroupByName(ctx context.Context, name string) (*models.Group, error) {
	const op = "storage.FindGroupByName"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name FROM groups WHERE name = $1`
	row := s.DB.QueryRowContext(ctx, query, name)

	var result models.Group
	if err := row.Scan(&result.ID, &result.Name); err != nil {
		return nil, wrapRowError(op, err)
	}
	return &result, nil
}

// ListGroups возвращает все группы в порядке создания.
func (s *Storage) ListGroups(ctx context.Context) ([]*models.Group, error) {
	const op = "storage.ListGroups"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name FROM groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Group
	for rows.Next() {
		var group models.Group
		if err = rows.Scan(&group.ID, &group.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &group)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// groupsForUser возвращает группы, в которых состоит пользователь.
func (s *Storage) groupsForUser(ctx context.Context, userUID string) ([]models.Group, error) {
	const op = "storage.groupsForUser"

	query := `SELECT g.id, g.name
			  FROM groups g
			  JOIN user_groups ug ON ug.group_id = g.id
			  WHERE ug.user_uid = $1
			  ORDER BY g.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Group
	for rows.Next() {
		var group models.Group
		if err = rows.Scan(&group.ID, &group.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, group)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
