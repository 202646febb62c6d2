package file

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attachments-api/internal/domain/file"
)

var cols = []string{
	"id", "uuid", "model", "target_id", "target_url", "content", "filename_user", "filename_path", "mimetype",
	"created_by", "public", "tags", "status", "position", "created_at", "updated_at",
}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, file.Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRepository(mock)
}

func row(id uint64, public bool, tags string, position int32, createdBy *uuid.UUID) []any {
	name := "doc.pdf"
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []any{
		id, uuid.New(), "Project", "42", "", nil, &name, nil, nil,
		createdBy, public, tags, int16(file.StatusNormal), position, ts, ts,
	}
}

func TestFetchFiles_ScopesByOwnerAndStatus(t *testing.T) {
	mock, repo := newMock(t)
	target := file.Target{Model: "Project", ID: "42"}

	mock.ExpectQuery(SelectFiles).
		WithArgs("Project", "42", int16(file.StatusNormal)).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(row(1, true, "foo", 0, nil)...).
			AddRow(row(2, false, "bar", 1, nil)...))

	fs, err := repo.FetchFiles(context.Background(), target)
	require.NoError(t, err)
	require.Len(t, fs, 2)

	assert.Equal(t, uint64(1), fs[0].ID)
	assert.Equal(t, int32(0), fs[0].Position)
	assert.Equal(t, int32(1), fs[1].Position)
	assert.Equal(t, "Project", fs[0].Model)
	assert.Equal(t, "42", fs[0].TargetID)
	assert.Equal(t, file.StatusNormal, fs[0].Status)
	require.NotNil(t, fs[0].FileNameUser)
	assert.Equal(t, "doc.pdf", *fs[0].FileNameUser)
	assert.Nil(t, fs[0].FileNamePath)
	assert.Nil(t, fs[0].CreatedBy)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchFilesByVisibility(t *testing.T) {
	for _, public := range []bool{true, false} {
		mock, repo := newMock(t)

		mock.ExpectQuery(SelectFilesByVisibility).
			WithArgs("Project", "42", int16(file.StatusNormal), public).
			WillReturnRows(pgxmock.NewRows(cols).AddRow(row(5, public, "", 0, nil)...))

		fs, err := repo.FetchFilesByVisibility(context.Background(), file.Target{Model: "Project", ID: "42"}, public)
		require.NoError(t, err)
		require.Len(t, fs, 1)
		assert.Equal(t, public, fs[0].Public)

		require.NoError(t, mock.ExpectationsWereMet())
	}
}

func TestFetchFilesByCreator(t *testing.T) {
	mock, repo := newMock(t)
	user := uuid.New()

	mock.ExpectQuery(SelectFilesByCreator).
		WithArgs("Project", "42", int16(file.StatusNormal), user).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(row(3, false, "", 0, &user)...))

	fs, err := repo.FetchFilesByCreator(context.Background(), file.Target{Model: "Project", ID: "42"}, user)
	require.NoError(t, err)
	require.Len(t, fs, 1)
	require.NotNil(t, fs[0].CreatedBy)
	assert.Equal(t, user, *fs[0].CreatedBy)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchFilesWithTag_Empty(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(SelectFilesWithTag).
		WithArgs("Project", "42", int16(file.StatusNormal), "foo").
		WillReturnRows(pgxmock.NewRows(cols))

	fs, err := repo.FetchFilesWithTag(context.Background(), file.Target{Model: "Project", ID: "42"}, "foo")
	require.NoError(t, err)
	assert.Empty(t, fs)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchFiles_QueryError(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(SelectFiles).
		WithArgs("Project", "42", int16(file.StatusNormal)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FetchFiles(context.Background(), file.Target{Model: "Project", ID: "42"})
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFile(t *testing.T) {
	mock, repo := newMock(t)
	user := uuid.New()
	in, err := file.New(file.Target{Model: "Project", ID: "42"}, &user, file.Options{Tags: "foo"})
	require.NoError(t, err)

	out := row(9, false, "foo", 3, &user)
	out[12] = int16(file.StatusDraft)

	mock.ExpectQuery(InsertFile).
		WithArgs(
			"Project", "42", "", []byte(nil), (*string)(nil), (*string)(nil), (*string)(nil),
			&user, false, "foo", int16(file.StatusDraft),
		).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(out...))

	f, err := repo.CreateFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), f.ID)
	assert.Equal(t, int32(3), f.Position)
	assert.Equal(t, file.StatusDraft, f.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFile_CheckViolation(t *testing.T) {
	mock, repo := newMock(t)
	in := &file.File{Model: "Project", TargetID: "42"}

	mock.ExpectQuery(InsertFile).
		WithArgs(
			"Project", "42", "", []byte(nil), (*string)(nil), (*string)(nil), (*string)(nil),
			(*uuid.UUID)(nil), false, "", int16(file.StatusDraft),
		).
		WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "files_status_check"})

	f, err := repo.CreateFile(context.Background(), in)
	require.Error(t, err)
	assert.Nil(t, f)

	var verrs file.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "status")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()

	out := row(4, false, "", 0, nil)
	out[1] = id
	out[12] = int16(file.StatusDeleted)

	mock.ExpectQuery(UpdateFileStatus).
		WithArgs(id, int16(file.StatusDeleted)).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(out...))

	f, err := repo.UpdateStatus(context.Background(), id, file.StatusDeleted)
	require.NoError(t, err)
	assert.Equal(t, id, f.UUID)
	assert.Equal(t, file.StatusDeleted, f.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVisibility_NotFound(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(UpdateFileVisibility).
		WithArgs(id, true).
		WillReturnRows(pgxmock.NewRows(cols))

	_, err := repo.UpdateVisibility(context.Background(), id, true)
	require.ErrorIs(t, err, file.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchFile(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()

	out := row(8, true, "", 0, nil)
	out[1] = id

	mock.ExpectQuery(SelectFileByUUID).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(out...))

	f, err := repo.FetchFile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, f.UUID)
	assert.True(t, f.Public)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConstraintColumn(t *testing.T) {
	assert.Equal(t, "model", constraintColumn("files_model_check"))
	assert.Equal(t, "file", constraintColumn(""))
}

func TestOwnerQueries_OrderByPositionThenID(t *testing.T) {
	for name, q := range map[string]string{
		"SelectFiles":             SelectFiles,
		"SelectFilesByVisibility": SelectFilesByVisibility,
		"SelectFilesByCreator":    SelectFilesByCreator,
		"SelectFilesWithTag":      SelectFilesWithTag,
	} {
		assert.Contains(t, q, "ORDER BY position ASC, id ASC", name)
	}
}
