package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/veloromanov/sport-backoffice/internal/models"
)

const userColumns = `uid, username, username_canonical, email, email_canonical,
			  password_hash, date_of_birth, firstname, lastname, website, biography,
			  gender, locale, timezone, phone, roles, enabled, locked, created_at`

// CreateUser сохраняет нового пользователя и его членство в группах.
// Запись пользователя и связи с группами вставляются в одной транзакции.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO users (uid, username, username_canonical, email, email_canonical,
			      password_hash, date_of_birth, firstname, lastname, website, biography,
			      gender, locale, timezone, phone, roles, enabled, locked)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			  RETURNING uid`
	var newUID string
	err = tx.QueryRowContext(ctx, query,
		user.UID, user.Username, user.UsernameCanonical, user.Email, user.EmailCanonical,
		user.PasswordHash, user.DateOfBirth, user.Firstname, user.Lastname, user.Website,
		user.Biography, user.Gender, user.Locale, user.Timezone, user.Phone,
		joinRoles(user.Roles), user.Enabled, user.Locked).Scan(&newUID)
	if err != nil {
		return "", wrapRowError(op, err)
	}

	for _, group := range user.Groups {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_groups (user_uid, group_id) VALUES ($1, $2)`,
			newUID, group.ID)
		if err != nil {
			return "", wrapRowError(op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUID возвращает пользователя по его UID вместе с группами.
func (s *Storage) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	return s.scanUser(ctx, op, s.DB.QueryRowContext(ctx, query, uid))
}

// GetUserByUsername возвращает пользователя по каноническому имени.
// Имя приводится к нижнему регистру на стороне запроса.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE username_canonical = LOWER($1)`
	return s.scanUser(ctx, op, s.DB.QueryRowContext(ctx, query, username))
}

// UpdateUser перезаписывает изменяемые поля пользователя
// и возвращает количество изменённых строк.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET username = $1, username_canonical = $2, email = $3, email_canonical = $4,
			      password_hash = $5, roles = $6, enabled = $7, locked = $8
			  WHERE uid = $9`
	result, err := s.DB.ExecContext(ctx, query,
		user.Username, user.UsernameCanonical, user.Email, user.EmailCanonical,
		user.PasswordHash, joinRoles(user.Roles), user.Enabled, user.Locked, user.UID)
	if err != nil {
		return 0, wrapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListUsers возвращает пользователей по фильтру с пагинацией.
// Пустые поля фильтра не участвуют в выборке.
func (s *Storage) ListUsers(ctx context.Context, filter models.UserFilter, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	query := `SELECT ` + userColumns + ` FROM users u`
	if filter.Group != "" {
		query = `SELECT ` + prefixColumns("u.") + `
			  FROM users u
			  JOIN user_groups ug ON ug.user_uid = u.uid
			  JOIN groups g ON g.id = ug.group_id`
		conditions = append(conditions, "g.name = "+arg(filter.Group))
	}
	if filter.UID != "" {
		conditions = append(conditions, "u.uid = "+arg(filter.UID))
	}
	if filter.Username != "" {
		conditions = append(conditions, "u.username_canonical = LOWER("+arg(filter.Username)+")")
	}
	if filter.Email != "" {
		conditions = append(conditions, "u.email_canonical = LOWER("+arg(filter.Email)+")")
	}
	if filter.Locked != nil {
		conditions = append(conditions, "u.locked = "+arg(*filter.Locked))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY u.created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, user := range result {
		groups, err := s.groupsForUser(ctx, user.UID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		user.Groups = groups
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Storage) scanUser(ctx context.Context, op string, row rowScanner) (*models.User, error) {
	user, err := scanUserRow(row)
	if err != nil {
		return nil, wrapRowError(op, err)
	}
	groups, err := s.groupsForUser(ctx, user.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.Groups = groups
	return user, nil
}

func scanUserRow(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var dateOfBirth sql.NullTime
	var roles string
	if err := row.Scan(&u.UID, &u.Username, &u.UsernameCanonical, &u.Email, &u.EmailCanonical,
		&u.PasswordHash, &dateOfBirth, &u.Firstname, &u.Lastname, &u.Website, &u.Biography,
		&u.Gender, &u.Locale, &u.Timezone, &u.Phone, &roles, &u.Enabled, &u.Locked,
		&u.CreatedAt); err != nil {
		return nil, err
	}
	if dateOfBirth.Valid {
		u.DateOfBirth = &dateOfBirth.Time
	}
	u.Roles = splitRoles(roles)
	return u, nil
}

func prefixColumns(prefix string) string {
	cols := strings.Split(userColumns, ",")
	for i, c := range cols {
		cols[i] = prefix + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

// Роли хранятся одной строкой через запятую.
func joinRoles(roles []string) string {
	return strings.Join(roles, ",")
}

func splitRoles(roles string) []string {
	if roles == "" {
		return nil
	}
	return strings.Split(roles, ",")
}
