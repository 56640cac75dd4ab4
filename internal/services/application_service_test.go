package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/justsurfingit/superio-server/internal/apperr"
	"github.com/justsurfingit/superio-server/internal/database/databasetest"
	"github.com/justsurfingit/superio-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationService_Create(t *testing.T) {
	db, mock := databasetest.New(t)
	svc := NewApplicationService(db)

	mock.ExpectExec(`INSERT INTO "apply_jobs" \("id","created_at","job_id","email","document"\)`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), jobA, "cand@mail.io",
			jsonArg(`{"job_id":"`+jobA+`","email":"cand@mail.io","portfolio":"https://cand.dev","years":4}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	app := models.NewApplication(models.Document{
		"job_id":    jobA,
		"email":     "cand@mail.io",
		"portfolio": "https://cand.dev",
		"years":     4,
	}, jobA)
	require.NoError(t, svc.Create(context.Background(), app))
	assert.Len(t, app.ID, 36)

	mock.ExpectExec(`INSERT INTO "apply_jobs"`).WillReturnError(errors.New("timeout"))
	err := svc.Create(context.Background(), &models.Application{JobID: jobA})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeStoreFailure, apperr.As(err).Code)
}

func TestApplicationService_FindByID(t *testing.T) {
	db, mock := databasetest.New(t)
	svc := NewApplicationService(db)

	mock.ExpectQuery(`SELECT \* FROM "apply_jobs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "email"}).AddRow(jobC, jobA, "cand@mail.io"))
	app, err := svc.FindByID(context.Background(), jobC)
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, jobA, app.JobID)

	mock.ExpectQuery(`SELECT \* FROM "apply_jobs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	app, err = svc.FindByID(context.Background(), jobB)
	require.NoError(t, err)
	assert.Nil(t, app)
}

func TestApplicationService_AppliedJobs(t *testing.T) {
	db, mock := databasetest.New(t)
	svc := NewApplicationService(db)

	mock.ExpectQuery(`SELECT jobs\.\* FROM "apply_jobs" JOIN jobs ON jobs\.id = apply_jobs\.job_id WHERE apply_jobs\.email = \$1 ORDER BY apply_jobs\.created_at ASC`).
		WithArgs("cand@mail.io").
		WillReturnRows(jobRows().
			AddRow(jobA, "One", "engineering", "hr@acme.io").
			AddRow(jobA, "One", "engineering", "hr@acme.io"))

	jobs, err := svc.AppliedJobs(context.Background(), "cand@mail.io")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, jobA, jobs[0].ID)

	mock.ExpectQuery(`FROM "apply_jobs" JOIN jobs`).WillReturnRows(jobRows())
	jobs, err = svc.AppliedJobs(context.Background(), "new@mail.io")
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestCategoryService_List(t *testing.T) {
	db, mock := databasetest.New(t)

	mock.ExpectQuery(`SELECT \* FROM "categories" ORDER BY category ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category"}).
			AddRow(jobA, "design").
			AddRow(jobB, "engineering"))

	categories, err := NewCategoryService(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "design", categories[0].Category)

	mock.ExpectQuery(`SELECT \* FROM "categories"`).WillReturnError(errors.New("boom"))
	_, err = NewCategoryService(db).List(context.Background())
	assert.Error(t, err)
}
