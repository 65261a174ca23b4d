package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"shepherd/contexts/congregation/leadership-engine/domain/entities"
	domainerrors "shepherd/contexts/congregation/leadership-engine/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateRole(ctx context.Context, role entities.Role) error {
	row := roleModelFromEntity(role)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateRoleName
		}
		return r.logError("leadership_repo_create_role_failed", err, "role_id", role.RoleID)
	}
	return nil
}

func (r *Repository) GetRole(ctx context.Context, roleID string) (entities.Role, error) {
	var row roleModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(roleID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Role{}, domainerrors.ErrRoleNotFound
		}
		return entities.Role{}, r.logError("leadership_repo_get_role_failed", err, "role_id", strings.TrimSpace(roleID))
	}
	return row.toEntity(), nil
}

func (r *Repository) GetRoleByName(ctx context.Context, name string) (entities.Role, bool, error) {
	var row roleModel
	err := r.db.WithContext(ctx).
		Where("role_name = ?", name).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Role{}, false, nil
		}
		return entities.Role{}, false, r.logError("leadership_repo_get_role_by_name_failed", err, "role_name", name)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) UpdateRole(ctx context.Context, role entities.Role) error {
	row := roleModelFromEntity(role)
	result := r.db.WithContext(ctx).
		Model(&roleModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"role_name":          row.RoleName,
			"description":        row.Description,
			"max_allowed":        row.MaxAllowed,
			"min_age":            row.MinAge,
			"max_age":            row.MaxAge,
			"gender_requirement": row.GenderRequirement,
			"updated_at":         row.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrDuplicateRoleName
		}
		return r.logError("leadership_repo_update_role_failed", result.Error, "role_id", row.ID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRoleNotFound
	}
	return nil
}

func (r *Repository) DeleteRole(ctx context.Context, roleID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(roleID)).
		Delete(&roleModel{})
	if result.Error != nil {
		return r.logError("leadership_repo_delete_role_failed", result.Error, "role_id", strings.TrimSpace(roleID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRoleNotFound
	}
	return nil
}

func (r *Repository) ListRoles(ctx context.Context) ([]entities.Role, error) {
	var rows []roleModel
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("leadership_repo_list_roles_failed", err)
	}
	out := make([]entities.Role, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// CreateAssignment closes the check-then-act race: the role row is locked
// FOR UPDATE, the occupancy count is re-read inside the transaction, and
// the unique index on (role_id, member_id) backstops double assignment.
func (r *Repository) CreateAssignment(ctx context.Context, assignment entities.Assignment, maxAllowed *int) error {
	row := assignmentModelFromEntity(assignment)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role roleModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", row.RoleID).
			First(&role).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrRoleNotFound
			}
			return err
		}
		if maxAllowed != nil {
			var count int64
			if err := tx.Model(&assignmentModel{}).
				Where("role_id = ?", row.RoleID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*maxAllowed) {
				return domainerrors.ErrRoleFull
			}
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyAssigned
			}
			return err
		}
		return nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domainerrors.ErrRoleNotFound),
		errors.Is(err, domainerrors.ErrRoleFull),
		errors.Is(err, domainerrors.ErrAlreadyAssigned):
		return err
	default:
		return r.logError("leadership_repo_create_assignment_failed", err,
			"assignment_id", assignment.AssignmentID,
			"role_id", assignment.RoleID,
			"member_id", assignment.MemberID,
		)
	}
}

func (r *Repository) GetAssignment(ctx context.Context, assignmentID string) (entities.Assignment, error) {
	var row assignmentModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(assignmentID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Assignment{}, domainerrors.ErrAssignmentNotFound
		}
		return entities.Assignment{}, r.logError("leadership_repo_get_assignment_failed", err,
			"assignment_id", strings.TrimSpace(assignmentID))
	}
	return row.toEntity(), nil
}

func (r *Repository) DeleteAssignment(ctx context.Context, assignmentID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(assignmentID)).
		Delete(&assignmentModel{})
	if result.Error != nil {
		return r.logError("leadership_repo_delete_assignment_failed", result.Error,
			"assignment_id", strings.TrimSpace(assignmentID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAssignmentNotFound
	}
	return nil
}

func (r *Repository) HasAssignment(ctx context.Context, roleID string, memberID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&assignmentModel{}).
		Where("role_id = ?", strings.TrimSpace(roleID)).
		Where("member_id = ?", strings.TrimSpace(memberID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("leadership_repo_has_assignment_failed", err,
			"role_id", strings.TrimSpace(roleID),
			"member_id", strings.TrimSpace(memberID),
		)
	}
	return count > 0, nil
}

func (r *Repository) CountAssignments(ctx context.Context, roleID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&assignmentModel{}).
		Where("role_id = ?", strings.TrimSpace(roleID)).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("leadership_repo_count_assignments_failed", err,
			"role_id", strings.TrimSpace(roleID))
	}
	return int(count), nil
}

func (r *Repository) ListAssignmentsByRole(ctx context.Context, roleID string) ([]entities.Assignment, error) {
	var rows []assignmentModel
	if err := r.db.WithContext(ctx).
		Where("role_id = ?", strings.TrimSpace(roleID)).
		Order("assigned_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("leadership_repo_list_assignments_failed", err,
			"role_id", strings.TrimSpace(roleID))
	}
	out := make([]entities.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) GetMemberProfile(ctx context.Context, memberID string) (entities.MemberProfile, error) {
	var row memberProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(memberID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.MemberProfile{}, domainerrors.ErrMemberNotFound
		}
		return entities.MemberProfile{}, r.logError("leadership_repo_get_member_failed", err,
			"member_id", strings.TrimSpace(memberID))
	}
	return row.toEntity(), nil
}

func (r *Repository) ListMemberProfiles(ctx context.Context) ([]entities.MemberProfile, error) {
	var rows []memberProjectionModel
	if err := r.db.WithContext(ctx).
		Order("first_name ASC, last_name ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("leadership_repo_list_members_failed", err)
	}
	out := make([]entities.MemberProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "congregation/leadership-engine",
		"layer", "adapter_postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("leadership repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type roleModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	RoleName          string    `gorm:"column:role_name;uniqueIndex"`
	Description       string    `gorm:"column:description"`
	MaxAllowed        *int      `gorm:"column:max_allowed"`
	MinAge            *int      `gorm:"column:min_age"`
	MaxAge            *int      `gorm:"column:max_age"`
	GenderRequirement string    `gorm:"column:gender_requirement"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (roleModel) TableName() string {
	return "leadership_roles"
}

func roleModelFromEntity(role entities.Role) roleModel {
	return roleModel{
		ID:                strings.TrimSpace(role.RoleID),
		RoleName:          role.Name,
		Description:       role.Description,
		MaxAllowed:        role.Policy.MaxAllowed,
		MinAge:            role.Policy.MinAge,
		MaxAge:            role.Policy.MaxAge,
		GenderRequirement: string(role.Policy.GenderRequirement),
		CreatedAt:         role.CreatedAt,
		UpdatedAt:         role.UpdatedAt,
	}
}

func (m roleModel) toEntity() entities.Role {
	return entities.Role{
		RoleID:      m.ID,
		Name:        m.RoleName,
		Description: m.Description,
		Policy: entities.EligibilityPolicy{
			MinAge:            m.MinAge,
			MaxAge:            m.MaxAge,
			GenderRequirement: entities.GenderRequirement(m.GenderRequirement),
			MaxAllowed:        m.MaxAllowed,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type assignmentModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	RoleID     string    `gorm:"column:role_id;uniqueIndex:idx_role_member"`
	MemberID   string    `gorm:"column:member_id;uniqueIndex:idx_role_member"`
	AssignedBy *string   `gorm:"column:assigned_by"`
	AssignedAt time.Time `gorm:"column:assigned_at"`
}

func (assignmentModel) TableName() string {
	return "member_leadership"
}

func assignmentModelFromEntity(assignment entities.Assignment) assignmentModel {
	row := assignmentModel{
		ID:         strings.TrimSpace(assignment.AssignmentID),
		RoleID:     strings.TrimSpace(assignment.RoleID),
		MemberID:   strings.TrimSpace(assignment.MemberID),
		AssignedAt: assignment.AssignedAt,
	}
	if by := strings.TrimSpace(assignment.AssignedBy); by != "" {
		row.AssignedBy = &by
	}
	return row
}

func (m assignmentModel) toEntity() entities.Assignment {
	assignment := entities.Assignment{
		AssignmentID: m.ID,
		RoleID:       m.RoleID,
		MemberID:     m.MemberID,
		AssignedAt:   m.AssignedAt,
	}
	if m.AssignedBy != nil {
		assignment.AssignedBy = *m.AssignedBy
	}
	return assignment
}

// memberProjectionModel reads the members table owned by the membership
// service; the engine never writes it.
type memberProjectionModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	Gender      string    `gorm:"column:gender"`
	DateOfBirth time.Time `gorm:"column:date_of_birth"`
	Address     string    `gorm:"column:address"`
	PhoneNumber string    `gorm:"column:phone_number"`
}

func (memberProjectionModel) TableName() string {
	return "members"
}

func (m memberProjectionModel) toEntity() entities.MemberProfile {
	return entities.MemberProfile{
		MemberID:    m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Gender:      m.Gender,
		DateOfBirth: m.DateOfBirth,
		Address:     m.Address,
		PhoneNumber: m.PhoneNumber,
	}
}
