package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-api/internal/domain/model"
)

type countingReconcile struct {
	calls int
	err   error
}

func (c *countingReconcile) SweepOrphans(context.Context) (model.SweepResult, error) {
	c.calls++
	return model.SweepResult{TasksDeleted: 1}, c.err
}

func (c *countingReconcile) HandleEvent(context.Context, model.AggregateEvent) (model.SweepResult, error) {
	return model.SweepResult{}, nil
}

func TestInitRejectsInvalidCron(t *testing.T) {
	scheduler := NewReconcileScheduler(&countingReconcile{})

	assert.Error(t, scheduler.InitReconcileScheduleTasks("every now and then"))
}

func TestInitRegistersSweep(t *testing.T) {
	scheduler := NewReconcileScheduler(&countingReconcile{})

	require.NoError(t, scheduler.InitReconcileScheduleTasks("*/15 * * * *"))
	defer scheduler.Stop()

	assert.Len(t, scheduler.cron.Entries(), 1)
}

func TestSweepOrphansSurvivesFailure(t *testing.T) {
	useCase := &countingReconcile{err: errors.New("db down")}
	scheduler := NewReconcileScheduler(useCase)

	scheduler.SweepOrphans()
	scheduler.SweepOrphans()

	assert.Equal(t, 2, useCase.calls)
}
