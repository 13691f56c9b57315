package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"team-seed.backend/internal/domain/entities"
	domainerrors "team-seed.backend/internal/domain/errors"
	"team-seed.backend/internal/infrastructure/models"
	"team-seed.backend/internal/infrastructure/schema"
	"team-seed.backend/pkg/utils"
)

var encodeList = utils.EncodeStringList

type TeamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// EnsureSchema creates team_members when absent and leaves existing rows alone.
func (r *TeamMemberRepository) EnsureSchema(ctx context.Context) error {
	if err := GetDB(ctx, r.db).WithContext(ctx).Exec(schema.TeamMembers).Error; err != nil {
		return domainerrors.StorageUnavailable("ensure team_members schema", err)
	}
	return nil
}

// Upsert writes member as a whole row keyed by id. An existing row with the
// same id is overwritten column for column; nothing is merged.
func (r *TeamMemberRepository) Upsert(ctx context.Context, member *entities.TeamMember) error {
	m, err := r.toModel(member)
	if err != nil {
		return err
	}

	err = GetDB(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return domainerrors.ConstraintViolation(member.ID, err)
	}
	return nil
}

func (r *TeamMemberRepository) GetByID(ctx context.Context, id string) (*entities.TeamMember, error) {
	var m models.TeamMember
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NotFound(id)
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// List returns every row in display order, ties broken by id.
func (r *TeamMemberRepository) List(ctx context.Context) ([]*entities.TeamMember, error) {
	var ms []models.TeamMember
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.TeamMember, 0, len(ms))
	for i := range ms {
		e, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

func (r *TeamMemberRepository) toEntity(m *models.TeamMember) (*entities.TeamMember, error) {
	achievements, err := utils.DecodeStringList(m.Achievements)
	if err != nil {
		return nil, domainerrors.Serialization(m.ID, "decode achievements", err)
	}
	skills, err := utils.DecodeStringList(m.Skills)
	if err != nil {
		return nil, domainerrors.Serialization(m.ID, "decode skills", err)
	}
	return &entities.TeamMember{
		ID:           m.ID,
		Name:         m.Name,
		Position:     m.Position,
		Department:   m.Department,
		Bio:          m.Bio,
		Email:        m.Email,
		Phone:        m.Phone,
		LinkedIn:     m.LinkedIn,
		Image:        m.Image,
		Experience:   m.Experience,
		Specialty:    m.Specialty,
		Achievements: achievements,
		Skills:       skills,
		IsActive:     m.IsActive != 0,
		Order:        m.Order,
		JoinDate:     m.JoinDate,
	}, nil
}

func (r *TeamMemberRepository) toModel(e *entities.TeamMember) (*models.TeamMember, error) {
	achievements, err := encodeList(e.Achievements)
	if err != nil {
		return nil, domainerrors.Serialization(e.ID, "encode achievements", err)
	}
	skills, err := encodeList(e.Skills)
	if err != nil {
		return nil, domainerrors.Serialization(e.ID, "encode skills", err)
	}
	isActive := 0
	if e.IsActive {
		isActive = 1
	}
	return &models.TeamMember{
		ID:           e.ID,
		Name:         e.Name,
		Position:     e.Position,
		Department:   e.Department,
		Bio:          e.Bio,
		Email:        e.Email,
		Phone:        e.Phone,
		LinkedIn:     e.LinkedIn,
		Image:        e.Image,
		Experience:   e.Experience,
		Specialty:    e.Specialty,
		Achievements: achievements,
		Skills:       skills,
		IsActive:     isActive,
		Order:        e.Order,
		JoinDate:     e.JoinDate,
	}, nil
}
