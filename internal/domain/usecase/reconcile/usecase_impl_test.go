package reconcile

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/gateway/cache"
	"kanban-api/internal/domain/gateway/db"
	"kanban-api/internal/domain/model"
	gormdb "kanban-api/internal/infra/database/gorm"
	"kanban-api/internal/metrics"
)

func setup(t *testing.T) (UseCase, *gorm.DB, *metrics.Metrics) {
	t.Helper()
	database, err := gormdb.Open(gormdb.Config{Driver: gormdb.DriverSqlite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	return NewReconcileUseCase(db.NewGormReconcileGateway(database), cache.NoopBoardTreeCache{}, m), database, m
}

func TestSweepOrphansRecordsMetrics(t *testing.T) {
	uc, database, m := setup(t)
	orphan := entity.Task{BoardID: "gone", Name: "orphan"}
	require.NoError(t, database.Create(&orphan).Error)
	require.NoError(t, database.Create(&entity.Subtask{TaskID: orphan.ID, Name: "child"}).Error)

	result, err := uc.SweepOrphans(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.SweepResult{TasksDeleted: 1, SubtasksDeleted: 1}, result)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrphansSweptTotal.WithLabelValues("task")))
}

func TestHandleBoardDeletedEventIsIdempotent(t *testing.T) {
	uc, database, _ := setup(t)
	leftover := entity.Task{BoardID: "b1", Name: "late"}
	require.NoError(t, database.Create(&leftover).Error)
	require.NoError(t, database.Create(&entity.Subtask{TaskID: "t-old", Name: "stale"}).Error)
	event := model.AggregateEvent{Type: model.EventBoardDeleted, OwnerID: "u1", BoardID: "b1", TaskIDs: []string{"t-old"}}

	first, err := uc.HandleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, model.SweepResult{TasksDeleted: 1, SubtasksDeleted: 1}, first)

	second, err := uc.HandleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, second.Empty())
}

func TestHandleTaskDeletedEvent(t *testing.T) {
	uc, database, _ := setup(t)
	require.NoError(t, database.Create(&entity.Subtask{TaskID: "t1", Name: "late"}).Error)

	result, err := uc.HandleEvent(context.Background(), model.AggregateEvent{Type: model.EventTaskDeleted, BoardID: "b1", TaskID: "t1"})

	require.NoError(t, err)
	assert.EqualValues(t, 1, result.SubtasksDeleted)
}

func TestHandleUnknownEvent(t *testing.T) {
	uc, _, _ := setup(t)

	_, err := uc.HandleEvent(context.Background(), model.AggregateEvent{Type: "board.renamed"})

	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
