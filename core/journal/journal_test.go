package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSqliteJournal(t *testing.T) *Journal {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	j := New(db, nil)
	require.NoError(t, j.Migrate())
	return j
}

func TestJournal_Lifecycle(t *testing.T) {
	ctx := context.Background()
	j := newSqliteJournal(t)
	require.NoError(t, j.Verify())

	run, err := j.Start(ctx, "pages")
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.Equal(t, StatusRunning, run.Status)

	rep := j.Reporter(run)
	rep.Report(ctx, reconcile.Result{Kind: "page", Key: "about", Outcome: reconcile.Created})
	rep.Report(ctx, reconcile.Result{Kind: "page", Key: "faq", Outcome: reconcile.Failed, Err: errors.New("title can't be blank")})

	require.NoError(t, j.Finish(ctx, run, reconcile.Summary{Total: 2, Created: 1, Failed: 1}))

	runs, err := j.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, StatusFinished, runs[0].Status)
	assert.Equal(t, 1, runs[0].Failed)
	assert.NotNil(t, runs[0].FinishedAt)

	failures, err := j.Failures(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "faq", failures[0].Key)
	assert.Equal(t, "title can't be blank", failures[0].Error)
}

func TestJournal_RunsOrder(t *testing.T) {
	ctx := context.Background()
	j := newSqliteJournal(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, kind := range []string{"files", "menus"} {
		at := base.Add(time.Duration(i) * time.Hour)
		j.now = func() time.Time { return at }
		_, err := j.Start(ctx, kind)
		require.NoError(t, err)
	}

	runs, err := j.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "menus", runs[0].Kind)
}

func TestJournal_Verify_MissingColumns(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE sync_runs (id TEXT PRIMARY KEY, kind TEXT)").Error)

	err = New(db, nil).Verify()
	assert.ErrorContains(t, err, "sync_runs is missing columns")
}

func TestJournal_SQLErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	j := New(db, zap.New(core))
	ctx := context.Background()

	t.Run("Start", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `sync_runs`").WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := j.Start(ctx, "files")
		assert.ErrorContains(t, err, "failed to start run")
	})

	t.Run("Reporter logs write errors", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `sync_failures`").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		j.Reporter(&Run{ID: "run-1"}).Report(ctx, reconcile.Result{Kind: "file", Key: "a.png", Outcome: reconcile.Failed})
		assert.Equal(t, 1, logs.FilterMessage("Failed to journal failure").Len())
	})

	t.Run("Runs", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `sync_runs`").WillReturnError(errors.New("timeout"))

		_, err := j.Runs(ctx, 5)
		assert.ErrorContains(t, err, "failed to list runs")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
