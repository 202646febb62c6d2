package owner

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attachments-api/internal/domain/owner"
)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, owner.Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRepository(mock)
}

func TestPrimaryKey(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(SelectPrimaryKey).
		WithArgs("projects").
		WillReturnRows(pgxmock.NewRows([]string{"attname"}).AddRow("id"))

	pk, err := repo.PrimaryKey(context.Background(), "projects")
	require.NoError(t, err)
	assert.Equal(t, "id", pk)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPrimaryKey_UnknownTable(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(SelectPrimaryKey).
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows([]string{"attname"}))

	_, err := repo.PrimaryKey(context.Background(), "nope")
	require.ErrorIs(t, err, owner.ErrSchemaNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchOwner(t *testing.T) {
	mock, repo := newMock(t)
	typ := owner.Type{Model: "Document", Table: "public.documents", IdentifierAttribute: "slug"}

	mock.ExpectQuery(SelectPrimaryKey).
		WithArgs("public.documents").
		WillReturnRows(pgxmock.NewRows([]string{"attname"}).AddRow("id"))
	mock.ExpectQuery(OwnerRowQuery("public.documents", "id")).
		WithArgs("3").
		WillReturnRows(pgxmock.NewRows([]string{"json_object_agg"}).
			AddRow(map[string]string{"id": "3", "slug": "intro"}))

	rec, err := repo.FetchOwner(context.Background(), typ, "3")
	require.NoError(t, err)
	assert.Equal(t, typ, rec.Type)

	slug, ok := rec.Attribute("slug")
	assert.True(t, ok)
	assert.Equal(t, "intro", slug)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchOwner_NotFound(t *testing.T) {
	mock, repo := newMock(t)
	typ := owner.Type{Model: "Project", Table: "projects"}

	mock.ExpectQuery(SelectPrimaryKey).
		WithArgs("projects").
		WillReturnRows(pgxmock.NewRows([]string{"attname"}).AddRow("id"))
	mock.ExpectQuery(OwnerRowQuery("projects", "id")).
		WithArgs("404").
		WillReturnRows(pgxmock.NewRows([]string{"json_object_agg"}))

	_, err := repo.FetchOwner(context.Background(), typ, "404")
	require.ErrorIs(t, err, owner.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchOwner_DroppedTable(t *testing.T) {
	mock, repo := newMock(t)
	typ := owner.Type{Model: "Project", Table: "projects"}

	mock.ExpectQuery(SelectPrimaryKey).
		WithArgs("projects").
		WillReturnRows(pgxmock.NewRows([]string{"attname"}).AddRow("id"))
	mock.ExpectQuery(OwnerRowQuery("projects", "id")).
		WithArgs("1").
		WillReturnError(&pgconn.PgError{Code: "42P01"})

	_, err := repo.FetchOwner(context.Background(), typ, "1")
	require.ErrorIs(t, err, owner.ErrSchemaNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnerRowQuery_QuotesIdentifiers(t *testing.T) {
	q := OwnerRowQuery(`public.odd"name`, "id")
	assert.Contains(t, q, `"public"."odd""name" t`)
	assert.Contains(t, q, `t."id"::text = $1`)
}
