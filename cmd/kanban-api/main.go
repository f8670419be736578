package main

//go:generate swag init -g cmd/kanban-api/main.go -d ../../ -o ../../docs

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"kanban-api/configs"
	_ "kanban-api/docs"
	"kanban-api/internal/application/processor"
	"kanban-api/internal/application/schedule"
	"kanban-api/internal/application/server"
	"kanban-api/internal/domain/gateway/cache"
	"kanban-api/internal/domain/gateway/db"
	"kanban-api/internal/domain/gateway/lock"
	"kanban-api/internal/domain/gateway/queue"
	"kanban-api/internal/domain/usecase/board"
	"kanban-api/internal/domain/usecase/health"
	"kanban-api/internal/domain/usecase/reconcile"
	"kanban-api/internal/domain/usecase/subtask"
	"kanban-api/internal/domain/usecase/task"
	"kanban-api/internal/domain/usecase/user"
	infraaws "kanban-api/internal/infra/aws"
	gormdb "kanban-api/internal/infra/database/gorm"
	"kanban-api/internal/metrics"
	"kanban-api/pkg/log"
	"kanban-api/pkg/msg"
	"kanban-api/pkg/redis"
	"kanban-api/pkg/resource"
	"kanban-api/pkg/sqs"
)

// @title kanban-api
// @version 1.0
// @description Boards, tasks and subtasks owned by authenticated users.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := resource.Init(); err != nil {
		log.Fatal("could not load properties", zap.Error(err))
	}
	if err := msg.Init(); err != nil {
		log.Fatal("could not load messages", zap.Error(err))
	}
	env, err := configs.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	log.SetLevel(env.LogLevel)
	defer log.Sync()

	log.Info(msg.GetMessage("app.start"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init infra
	database, err := gormdb.Open(gormdb.ConfigFromProperties())
	if err != nil {
		log.Fatal(msg.GetMessage("app.error.db-open", err))
	}
	m := metrics.New()

	var treeCache cache.BoardTreeCache = cache.NoopBoardTreeCache{}
	var cacheHealth cache.HealthCacheGateway = cache.NoopBoardTreeCache{}
	var locker lock.BoardLocker = lock.NoopBoardLocker{}
	if env.RedisEnabled {
		redisClient, err := redis.NewClient(redis.DefaultConfig().
			WithHost(env.RedisHost).
			WithPort(env.RedisPort).
			WithPassword(env.RedisPassword).
			WithDatabase(env.RedisDatabase).
			WithCacheTTL(cache.BoardTreeCacheName, env.TreeCacheTTL))
		if err != nil {
			log.Fatal(msg.GetMessage("app.error.redis-open", err))
		}
		defer redisClient.Close()

		treeCache = cache.NewRedisBoardTreeCache(redisClient, env.TreeCacheTTL)
		cacheHealth = cache.NewRedisHealthCacheGateway(redisClient)
		locker = lock.NewRedisBoardLocker(redisClient, env.LockTTL)
	}

	// Init Gateway
	boardGateway := db.NewGormBoardGateway(database)
	taskGateway := db.NewGormTaskGateway(database)
	queueHealth := queue.NewQueueHealthGateway()
	var publisher queue.EventPublisher = queue.NoopEventPublisher{}

	// Init UseCase
	reconcileUseCase := reconcile.NewReconcileUseCase(db.NewGormReconcileGateway(database), treeCache, m)

	if env.EventsEnabled {
		awsConfig, err := infraaws.LoadConfig(ctx, infraaws.SettingsFromProperties())
		if err != nil {
			log.Fatal(msg.GetMessage("app.error.aws-config", err))
		}
		sqsClient := infraaws.NewSqsClient(awsConfig, infraaws.SettingsFromProperties().Endpoint)
		publisher = queue.NewSqsEventPublisher(sqs.NewSender(sqsClient), env.EventsQueueName)

		worker, err := sqs.NewWorker(ctx, sqsClient, env.EventsQueueName,
			processor.NewAggregateEventProcessor(reconcileUseCase),
			&sqs.WorkerConfig{PoolSize: env.EventsPoolSize})
		if err != nil {
			log.Fatal(msg.GetMessage("app.error.worker-start", env.EventsQueueName, err))
		}
		queueHealth.RegisterWorker(env.EventsQueueName, worker)
		go worker.Start(ctx)
	}

	useCases := server.UseCases{
		Board:   board.NewBoardUseCase(boardGateway, treeCache, locker, publisher, m),
		Task:    task.NewTaskUseCase(boardGateway, taskGateway, treeCache, locker, publisher, m),
		Subtask: subtask.NewSubtaskUseCase(taskGateway, db.NewGormSubtaskGateway(database), treeCache, locker),
		User:    user.NewUserUseCase(db.NewGormUserGateway(database), env.JWTSecret, env.TokenTTL),
		Health:  health.NewHealthUseCase(db.NewGormHealthDBGateway(database), cacheHealth, queueHealth),
	}

	// Init Schedule
	reconcileScheduler := schedule.NewReconcileScheduler(reconcileUseCase)
	if err := reconcileScheduler.InitReconcileScheduleTasks(env.ReconcileCron); err != nil {
		log.Fatal(msg.GetMessage("reconcile.error.failed", err))
	}
	defer reconcileScheduler.Stop()

	// Start Routes
	e := server.New(env.ContextPath, useCases, m)
	go func() {
		if err := e.Start(":" + env.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(msg.GetMessage("app.error.internal"), zap.Error(err))
		}
	}()
	log.Info(msg.GetMessage("app.started", env.Port))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(msg.GetMessage("app.error.internal"), zap.Error(err))
	}
	log.Info(msg.GetMessage("app.stopped"))
}
