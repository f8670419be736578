package schedule

import (
	"context"

	"github.com/robfig/cron/v3"

	"kanban-api/internal/domain/usecase/reconcile"
	"kanban-api/pkg/log"
	"kanban-api/pkg/msg"
)

type ReconcileScheduler struct {
	cron    *cron.Cron
	useCase reconcile.UseCase
}

func NewReconcileScheduler(useCase reconcile.UseCase) *ReconcileScheduler {
	return &ReconcileScheduler{cron: cron.New(), useCase: useCase}
}

// InitReconcileScheduleTasks registers the orphan sweep on the cron expression and starts the scheduler.
func (scheduler *ReconcileScheduler) InitReconcileScheduleTasks(spec string) error {
	if _, err := scheduler.cron.AddFunc(spec, scheduler.SweepOrphans); err != nil {
		return err
	}

	scheduler.cron.Start()
	log.Info(msg.GetMessage("reconcile.cron.registered", spec))
	return nil
}

// Stop waits for a running sweep to finish.
func (scheduler *ReconcileScheduler) Stop() {
	<-scheduler.cron.Stop().Done()
}

func (scheduler *ReconcileScheduler) SweepOrphans() {
	log.Info(msg.GetMessage("reconcile.cron.start"))

	result, err := scheduler.useCase.SweepOrphans(context.Background())
	if err != nil {
		log.Error(msg.GetMessage("reconcile.error.failed", err))
		return
	}

	log.Info(msg.GetMessage("reconcile.cron.end", result.TasksDeleted, result.SubtasksDeleted))
}
