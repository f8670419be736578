package queue

import (
	"context"
	"strconv"
	"sync"

	"kanban-api/internal/domain/model"
	"kanban-api/pkg/sqs"
)

type workerHealth interface {
	HealthCheck() sqs.WorkerHealth
}

type QueueHealthGateway struct {
	workers map[string]workerHealth
	mutex   sync.RWMutex
}

var _ HealthGateway = (*QueueHealthGateway)(nil)

func NewQueueHealthGateway() *QueueHealthGateway {
	return &QueueHealthGateway{workers: make(map[string]workerHealth)}
}

func (gateway *QueueHealthGateway) RegisterWorker(name string, worker *sqs.Worker) {
	gateway.register(name, worker)
}

func (gateway *QueueHealthGateway) register(name string, worker workerHealth) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.workers[name] = worker
}

func (gateway *QueueHealthGateway) UnregisterWorker(name string) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	delete(gateway.workers, name)
}

// Health is DISABLED with no registered worker and DOWN when any worker is down.
func (gateway *QueueHealthGateway) Health(_ context.Context) model.ComponentHealthStatus {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	if len(gateway.workers) == 0 {
		return model.ComponentHealthStatus{
			Status:  model.StatusDisabled,
			Details: map[string]string{"workers_total": "0"},
		}
	}

	status := model.StatusUp
	details := make(map[string]string)
	up, down := 0, 0
	for name, worker := range gateway.workers {
		check := worker.HealthCheck()
		if check.Status == sqs.StatusUp {
			up++
		} else {
			down++
			status = model.StatusDown
		}
		details[name+"_status"] = string(check.Status)
		for key, value := range check.Details {
			details[name+"_"+key] = value
		}
	}

	details["workers_total"] = strconv.Itoa(len(gateway.workers))
	details["workers_up"] = strconv.Itoa(up)
	details["workers_down"] = strconv.Itoa(down)
	return model.ComponentHealthStatus{Status: status, Details: details}
}
