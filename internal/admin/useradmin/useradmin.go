// Package useradmin реализует конфигуратор административного раздела
// пользователей: схемы полей для списка, фильтров, просмотра и формы,
// уплощение иерархии ролей, скоупинг по группе раздела и хуки
// создания и предобновления.
//
// Контекст раздела (метка) и личность зрителя передаются явными
// параметрами, а не берутся из окружения.
package useradmin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/veloromanov/sport-backoffice/internal/admin/schema"
	"github.com/veloromanov/sport-backoffice/internal/events"
	"github.com/veloromanov/sport-backoffice/internal/models"
	"github.com/veloromanov/sport-backoffice/internal/services/usermanager"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

// Repository определяет методы хранилища, используемые админкой пользователей.
type Repository interface {
	FindGroupByName(ctx context.Context, name string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) (int, error)
	ListUsers(ctx context.Context, filter models.UserFilter, limit, offset int) ([]*models.User, error)
}

// AuditPublisher публикует события аудита об изменениях учётных записей.
type AuditPublisher interface {
	Publish(event events.AuditEvent) error
}

// Viewer описывает личность, от имени которой выполняется запрос админки.
type Viewer struct {
	Username string
	Role     string
}

// Admin конфигурирует раздел пользователей и выполняет его операции.
type Admin struct {
	repo      Repository
	users     *usermanager.Service
	audit     AuditPublisher
	hierarchy []models.RoleGroup
	log       *slog.Logger
}

// New создает новый Admin с заданной иерархией ролей.
func New(repo Repository, users *usermanager.Service, audit AuditPublisher, hierarchy []models.RoleGroup, log *slog.Logger) *Admin {
	return &Admin{
		repo:      repo,
		users:     users,
		audit:     audit,
		hierarchy: hierarchy,
		log:       log,
	}
}

// FlattenRoles уплощает иерархию ролей в список выбираемых ролей.
// Обходит группы и роли в порядке объявления, добавляет каждую роль
// один раз при первом вхождении и пропускает базовую роль ROLE_USER.
func FlattenRoles(hierarchy []models.RoleGroup) []string {
	var flat []string
	seen := make(map[string]struct{})
	for _, group := range hierarchy {
		for _, role := range group.Includes {
			if role == models.RoleUser {
				continue
			}
			if _, ok := seen[role]; ok {
				continue
			}
			seen[role] = struct{}{}
			flat = append(flat, role)
		}
	}
	return flat
}

// IsGranted сообщает, обладает ли зритель ролью с учётом иерархии:
// роль считается выданной, если она совпадает с ролью зрителя или
// транзитивно включается ею.
func (a *Admin) IsGranted(viewer Viewer, role string) bool {
	if viewer.Role == role {
		return true
	}
	seen := map[string]bool{viewer.Role: true}
	queue := []string{viewer.Role}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, group := range a.hierarchy {
			if group.Role != current {
				continue
			}
			for _, included := range group.Includes {
				if included == role {
					return true
				}
				if !seen[included] {
					seen[included] = true
					queue = append(queue, included)
				}
			}
		}
	}
	return false
}

// groupChoices возвращает имена всех групп для полей выбора.
// Ошибка хранилища не срывает построение схемы: выбор остаётся пустым.
func (a *Admin) groupChoices(ctx context.Context) []string {
	groups, err := a.repo.ListGroups(ctx)
	if err != nil {
		a.log.Warn("failed to list groups for schema choices", slog.Any("err", err))
		return nil
	}
	choices := make([]string, 0, len(groups))
	for _, group := range groups {
		choices = append(choices, group.Name)
	}
	return choices
}

// BuildFormSchema возвращает схему формы редактирования пользователя.
//
// Пароль обязателен только для нового субъекта. Секция Management
// (роли, блокировка, включение) добавляется только для существующего
// субъекта без роли супер-администратора: учётные записи
// супер-администраторов нельзя понизить через эту форму.
func (a *Admin) BuildFormSchema(ctx context.Context, subject *models.User) schema.Form {
	isNew := subject == nil || !subject.IsPersisted()

	validationGroup := schema.ValidationGroupProfile
	if isNew {
		validationGroup = schema.ValidationGroupRegistration
	}

	form := schema.Form{
		ValidationGroup: validationGroup,
		Groups: []schema.Group{
			{
				Name: "General",
				Fields: []schema.Field{
					{Name: "username", Required: true},
					{Name: "email", Type: "email", Required: true},
					{Name: "plain_password", Type: "password", Required: isNew},
				},
			},
			{
				Name: "Groups",
				Fields: []schema.Field{
					{Name: "groups", Multiple: true, Expanded: true, Choices: a.groupChoices(ctx)},
				},
			},
			{
				Name: "Profile",
				Fields: []schema.Field{
					{Name: "date_of_birth", Type: "birthday"},
					{Name: "firstname"},
					{Name: "lastname"},
					{Name: "website", Type: "url"},
					{Name: "biography", Type: "text"},
					{Name: "gender", Required: true},
					{Name: "locale", Type: "locale"},
					{Name: "timezone", Type: "timezone"},
					{Name: "phone"},
				},
			},
		},
	}

	if subject != nil && !subject.HasRole(models.RoleSuperAdmin) {
		form.Groups = append(form.Groups, schema.Group{
			Name: "Management",
			Fields: []schema.Field{
				{
					Name:     "roles",
					Type:     "choice",
					Label:    "Roles",
					Multiple: true,
					Choices:  FlattenRoles(a.hierarchy),
				},
				{Name: "locked"},
				{Name: "enabled"},
			},
		})
	}

	return form
}

// BuildListSchema возвращает схему колонок списка пользователей.
// Колонка имперсонации добавляется только зрителю с правом переключения.
func (a *Admin) BuildListSchema(viewer Viewer) schema.List {
	list := schema.List{
		Columns: []schema.Field{
			{Name: "username", Identifier: true},
			{Name: "email"},
			{Name: "groups"},
			{Name: "enabled", Editable: true},
			{Name: "locked", Editable: true},
			{Name: "created_at"},
		},
	}

	if a.IsGranted(viewer, models.RoleAllowedToSwitch) {
		list.Columns = append(list.Columns, schema.Field{
			Name:     "impersonating",
			Type:     "string",
			Template: "admin/field/impersonating.html",
		})
	}

	return list
}

// BuildFilterSchema возвращает схему фильтров списка пользователей.
func (a *Admin) BuildFilterSchema(ctx context.Context) schema.Filter {
	return schema.Filter{
		Fields: []schema.Field{
			{Name: "id"},
			{Name: "username"},
			{Name: "locked"},
			{Name: "email"},
			{Name: "groups", Choices: a.groupChoices(ctx)},
		},
	}
}

// BuildShowSchema возвращает схему карточки просмотра пользователя.
func (a *Admin) BuildShowSchema() schema.Show {
	return schema.Show{
		Sections: []schema.Group{
			{
				Name: "General",
				Fields: []schema.Field{
					{Name: "username"},
					{Name: "email"},
				},
			},
			{
				Name: "Profile",
				Fields: []schema.Field{
					{Name: "date_of_birth"},
					{Name: "firstname"},
					{Name: "lastname"},
					{Name: "website"},
					{Name: "biography"},
					{Name: "gender"},
					{Name: "locale"},
					{Name: "timezone"},
					{Name: "phone"},
				},
			},
		},
	}
}

// exportFields — общий список полей выгрузки, включая служебные.
var exportFields = []string{
	"uid", "username", "email", "password", "salt",
	"firstname", "lastname", "gender", "locale", "timezone", "phone",
	"enabled", "locked", "created_at",
}

// ExportFields возвращает список полей для выгрузки.
// Поля password и salt никогда не попадают в выгрузку.
func (a *Admin) ExportFields() []string {
	result := make([]string, 0, len(exportFields))
	for _, field := range exportFields {
		if field == "password" || field == "salt" {
			continue
		}
		result = append(result, field)
	}
	return result
}

// NewInstance собирает нового пользователя для раздела: находит группу
// по метке раздела, привязывает её и включает учётную запись.
// Возвращает ErrNotFound, если группы с такой меткой нет.
func (a *Admin) NewInstance(ctx context.Context, sectionLabel string) (*models.User, error) {
	const op = "useradmin.NewInstance"

	group, err := a.repo.FindGroupByName(ctx, sectionLabel)
	if err != nil {
		return nil, fmt.Errorf("%s: section %q: %w", op, sectionLabel, err)
	}

	return &models.User{
		Groups:  []models.Group{*group},
		Enabled: true,
	}, nil
}

// ListFilterDefaults добавляет к явному фильтру неявное ограничение
// по группе раздела. Явно заданная группа имеет приоритет.
// Возвращает ErrNotFound, если группы с меткой раздела нет.
func (a *Admin) ListFilterDefaults(ctx context.Context, sectionLabel string, explicit models.UserFilter) (models.UserFilter, error) {
	const op = "useradmin.ListFilterDefaults"

	if explicit.Group != "" {
		return explicit, nil
	}

	group, err := a.repo.FindGroupByName(ctx, sectionLabel)
	if err != nil {
		return models.UserFilter{}, fmt.Errorf("%s: section %q: %w", op, sectionLabel, err)
	}
	explicit.Group = group.Name
	return explicit, nil
}

// GetUser возвращает пользователя по UID.
func (a *Admin) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return a.repo.GetUserByUID(ctx, uid)
}

// PreUpdate выполняет хук перед сохранением изменений пользователя:
// сначала пересчитывает канонические поля, затем хеширует открытый
// пароль, если он задан. Оба шага выполняются всегда, в этом порядке.
func (a *Admin) PreUpdate(user *models.User) error {
	a.users.UpdateCanonicalFields(user)
	return a.users.UpdatePassword(user)
}

// CreateUser создает пользователя из раздела админки: собирает учётную
// запись из данных запроса и применяет дефолты раздела (группа, enabled).
func (a *Admin) CreateUser(ctx context.Context, sectionLabel, actor string, req models.DummyUser) (*models.User, error) {
	instance, err := a.NewInstance(ctx, sectionLabel)
	if err != nil {
		return nil, err
	}

	user, err := a.users.BuildUser(req)
	if err != nil {
		return nil, err
	}
	user.Groups = instance.Groups
	user.Enabled = instance.Enabled

	uid, err := a.repo.CreateUser(ctx, *user)
	if err != nil {
		return nil, err
	}
	user.UID = uid

	a.log.Info("created user from admin section",
		slog.String("uid", uid), slog.String("section", sectionLabel))
	a.publish(events.UserCreated, uid, actor)

	return user, nil
}

// UpdateUser применяет частичные изменения к пользователю и выполняет
// хук PreUpdate перед сохранением.
func (a *Admin) UpdateUser(ctx context.Context, uid, actor string, req models.DummyUserUpdate) (*models.User, error) {
	const op = "useradmin.UpdateUser"

	user, err := a.repo.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.PlainPassword != nil {
		user.PlainPassword = *req.PlainPassword
	}
	if req.Roles != nil {
		user.Roles = req.Roles
	}
	if req.Enabled != nil {
		user.Enabled = *req.Enabled
	}
	if req.Locked != nil {
		user.Locked = *req.Locked
	}

	if err := a.PreUpdate(user); err != nil {
		return nil, err
	}

	count, err := a.repo.UpdateUser(ctx, *user)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	a.log.Info("updated user", slog.String("uid", uid))
	a.publish(events.UserUpdated, uid, actor)

	return user, nil
}

// ListUsers возвращает пользователей раздела с учётом неявного фильтра
// по группе и явных фильтров зрителя.
func (a *Admin) ListUsers(ctx context.Context, sectionLabel string, explicit models.UserFilter, limit, offset int) ([]*models.User, error) {
	filter, err := a.ListFilterDefaults(ctx, sectionLabel, explicit)
	if err != nil {
		return nil, err
	}
	return a.repo.ListUsers(ctx, filter, limit, offset)
}

func (a *Admin) publish(action, uid, actor string) {
	if a.audit == nil {
		return
	}
	event := events.AuditEvent{
		Action:     action,
		Subject:    "user:" + uid,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	}
	if err := a.audit.Publish(event); err != nil {
		a.log.Warn("failed to publish audit event", slog.String("action", action), slog.Any("err", err))
	}
}
