package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"team-seed.backend/internal/domain/entities"
	domainerrors "team-seed.backend/internal/domain/errors"
)

func newSchemaRepo(t *testing.T) (*TeamMemberRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	repo := NewTeamMemberRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo, db
}

func tableSQL(t *testing.T, db *gorm.DB) string {
	t.Helper()
	var ddl string
	require.NoError(t, db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'team_members'").Row().Scan(&ddl))
	return ddl
}

func storedInt(t *testing.T, db *gorm.DB, column, id string) int {
	t.Helper()
	var v int
	require.NoError(t, db.Raw(`SELECT "`+column+`" FROM team_members WHERE id = ?`, id).Row().Scan(&v))
	return v
}

func TestTeamMemberRepository_EnsureSchemaIdempotent(t *testing.T) {
	repo, db := newSchemaRepo(t)
	ctx := context.Background()
	first := tableSQL(t, db)

	require.NoError(t, repo.EnsureSchema(ctx))
	require.Equal(t, first, tableSQL(t, db))

	var columns []string
	rows, err := db.Raw("SELECT name FROM pragma_table_info('team_members') ORDER BY cid").Rows()
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		columns = append(columns, name)
	}
	require.Equal(t, []string{
		"id", "name", "position", "department", "bio", "email", "phone", "linkedin",
		"image", "experience", "specialty", "achievements", "skills", "isActive", "order", "joinDate",
	}, columns)
}

func TestTeamMemberRepository_EnsureSchemaKeepsExistingRows(t *testing.T) {
	repo, db := newSchemaRepo(t)
	mustExec(t, db, `INSERT INTO team_members (id, name) VALUES ('legacy', 'Kept')`)

	require.NoError(t, repo.EnsureSchema(context.Background()))

	got, err := repo.GetByID(context.Background(), "legacy")
	require.NoError(t, err)
	require.Equal(t, "Kept", got.Name)
	require.Empty(t, got.Skills)
	require.False(t, got.IsActive)
}

func TestTeamMemberRepository_ConcreteScenario(t *testing.T) {
	repo, db := newSchemaRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &entities.TeamMember{
		ID:       "1",
		Name:     "Test",
		Skills:   []string{"a", "b"},
		IsActive: true,
		Order:    1,
		JoinDate: "2020-01-01",
	}))

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "Test", got.Name)
	require.Equal(t, []string{"a", "b"}, got.Skills)
	require.Equal(t, []string{}, got.Achievements)
	require.True(t, got.IsActive)
	require.Equal(t, 1, got.Order)
	require.Equal(t, "2020-01-01", got.JoinDate)
	require.Equal(t, 1, storedInt(t, db, "isActive", "1"))
	require.Equal(t, 1, storedInt(t, db, "order", "1"))

	var skills string
	require.NoError(t, db.Raw("SELECT skills FROM team_members WHERE id = ?", "1").Row().Scan(&skills))
	require.Equal(t, `["a","b"]`, skills)
}

func TestTeamMemberRepository_ReplaceOverwritesWholeRow(t *testing.T) {
	repo, db := newSchemaRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &entities.TeamMember{
		ID:           "1",
		Name:         "First",
		Email:        "first@example.com",
		Phone:        "+966500000000",
		Achievements: []string{"old"},
		IsActive:     true,
		Order:        5,
	}))
	require.NoError(t, repo.Upsert(ctx, &entities.TeamMember{
		ID:    "1",
		Name:  "Second",
		Order: 2,
	}))

	require.Equal(t, int64(1), countRows(t, db, "team_members"))
	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, &entities.TeamMember{
		ID:           "1",
		Name:         "Second",
		Achievements: []string{},
		Skills:       []string{},
		Order:        2,
	}, got)
	require.Equal(t, 0, storedInt(t, db, "isActive", "1"))
}

func TestTeamMemberRepository_UnrelatedRowsUntouched(t *testing.T) {
	repo, _ := newSchemaRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &entities.TeamMember{ID: "1", Name: "One", Order: 1}))
	require.NoError(t, repo.Upsert(ctx, &entities.TeamMember{ID: "2", Name: "Two", Bio: "keep me", IsActive: true, Order: 2}))
	before, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, &entities.TeamMember{ID: "1", Name: "One again", Order: 1}))

	after, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestTeamMemberRepository_UnicodeListsRoundTrip(t *testing.T) {
	repo, _ := newSchemaRepo(t)
	ctx := context.Background()

	member := &entities.TeamMember{
		ID:   "3",
		Name: "محمد الغلاني",
		Achievements: []string{
			"تطوير وتخصيص وحدات Odoo ERP حسب متطلبات العمل",
			"<script> & \"quotes\"",
		},
		Skills:   []string{"برمجة Odoo (بايثون، إكس إم إل، جافاسكريبت، QWeb)"},
		IsActive: true,
		Order:    3,
		JoinDate: "2022-02-01",
	}
	require.NoError(t, repo.Upsert(ctx, member))

	got, err := repo.GetByID(ctx, "3")
	require.NoError(t, err)
	require.Equal(t, member, got)
}

func TestTeamMemberRepository_ListInDisplayOrder(t *testing.T) {
	repo, _ := newSchemaRepo(t)
	ctx := context.Background()

	for _, m := range []*entities.TeamMember{
		{ID: "c", Name: "C", Order: 2},
		{ID: "a", Name: "A", Order: 1},
		{ID: "b", Name: "B", Order: 2},
	} {
		require.NoError(t, repo.Upsert(ctx, m))
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "a", items[0].ID)
	require.Equal(t, "b", items[1].ID)
	require.Equal(t, "c", items[2].ID)
}

func TestTeamMemberRepository_NotFound(t *testing.T) {
	repo, _ := newSchemaRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTeamMemberRepository_CorruptListColumn(t *testing.T) {
	repo, db := newSchemaRepo(t)
	mustExec(t, db, `INSERT INTO team_members (id, name, skills) VALUES ('x', 'X', 'not json')`)

	_, err := repo.GetByID(context.Background(), "x")
	require.ErrorIs(t, err, domainerrors.ErrSerialization)

	_, err = repo.List(context.Background())
	require.ErrorIs(t, err, domainerrors.ErrSerialization)
}

func TestTeamMemberRepository_EncodeFailure(t *testing.T) {
	repo, db := newSchemaRepo(t)
	orig := encodeList
	t.Cleanup(func() { encodeList = orig })
	encodeList = func([]string) (string, error) { return "", errors.New("encoder broke") }

	err := repo.Upsert(context.Background(), &entities.TeamMember{ID: "1", Name: "X"})
	require.ErrorIs(t, err, domainerrors.ErrSerialization)
	require.Equal(t, int64(0), countRows(t, db, "team_members"))
}

func TestTeamMemberRepository_DBErrorBranches(t *testing.T) {
	db := newTestDB(t)
	// intentionally skip schema creation
	repo := NewTeamMemberRepository(db)
	ctx := context.Background()

	err := repo.Upsert(ctx, &entities.TeamMember{ID: "1", Name: "X"})
	require.ErrorIs(t, err, domainerrors.ErrConstraintViolation)

	_, err = repo.GetByID(ctx, "1")
	require.Error(t, err)

	_, err = repo.List(ctx)
	require.Error(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	err = repo.EnsureSchema(ctx)
	require.ErrorIs(t, err, domainerrors.ErrStorageUnavailable)
}
