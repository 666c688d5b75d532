package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/db"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/goroutine"
	httpRouter "github.com/ignatzorin/skillswap-backend/internal/http/router"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/cache"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/handler"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/progress"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/request"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/skill"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
	"github.com/ignatzorin/skillswap-backend/internal/ws"
	"github.com/ignatzorin/skillswap-backend/migrations"
)

const accessTokenTTL = 24 * time.Hour

type stores struct {
	skills   repository.SkillRepository
	requests repository.SkillRequestRepository
	reviews  repository.ReviewRepository
}

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.IsProduction())
	validation.RegisterGinValidators()

	policy, err := valueobject.NewCompletionPolicy(cfg.CompletionPolicy)
	if err != nil {
		logger.Log.Fatalf("main: некорректный COMPLETION_POLICY: %v", err)
	}

	checks := map[string]handler.HealthChecker{}

	// Хранилище: in-memory по умолчанию, PostgreSQL при STORE_DRIVER=postgres.
	var st stores
	switch cfg.StoreDriver {
	case config.StorePostgres:
		dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Log.Fatalf("main: ошибка подключения к базе: %v", err)
		}
		defer safeClose(dbConn)

		if err := db.RunMigrations(ctx, dbConn, migrationsFS(cfg.MigrationsPath)); err != nil {
			logger.Log.Fatalf("main: ошибка миграций: %v", err)
		}

		st = stores{
			skills:   persistence.NewSkillRepositoryAdapter(dbConn),
			requests: persistence.NewSkillRequestRepositoryAdapter(dbConn),
			reviews:  persistence.NewReviewRepositoryAdapter(dbConn),
		}
		checks["database"] = dbConn.PingContext
	default:
		skillStore := memory.NewSkillStore()
		st = stores{
			skills:   skillStore,
			requests: memory.NewRequestStore(),
			reviews:  memory.NewReviewStore(skillStore),
		}
	}
	logger.Log.WithField("driver", cfg.StoreDriver).Info("main: хранилище готово")

	// Кэш прогресса: Redis, если задан REDIS_URL, иначе in-memory.
	var progressCache progress.Cache
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Log.Fatalf("main: ошибка подключения к redis: %v", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Log.Warnf("main: ошибка закрытия redis: %v", err)
			}
		}()
		progressCache = cache.NewRedisProgressCache(redisClient, cfg.ProgressCacheTTL)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		memoryCache := cache.NewMemoryProgressCache(cfg.ProgressCacheTTL)
		goroutine.SafeGoWithContext(ctx, "progress-cache-cleanup", memoryCache.Run)
		progressCache = memoryCache
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, accessTokenTTL)

	// Вебсокеты.
	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, "ws-hub", hub.Run)
	notifier := ws.NewRequestNotifier(hub)

	// Сценарии.
	progressUC := progress.NewGetProgressUseCase(st.skills, st.requests, st.reviews, progressCache)

	skillHandler := handler.NewSkillHandler(
		skill.NewCreateSkillUseCase(st.skills),
		skill.NewGetSkillUseCase(st.skills),
		skill.NewListSkillsUseCase(st.skills),
		skill.NewUpdateSkillUseCase(st.skills),
		skill.NewDeleteSkillUseCase(st.skills),
		skill.NewAddReviewUseCase(st.skills, st.reviews),
		skill.NewListReviewsUseCase(st.skills, st.reviews),
		progressUC,
	)
	requestHandler := handler.NewRequestHandler(
		request.NewCreateRequestUseCase(st.requests, st.skills),
		request.NewListRequestsUseCase(st.requests),
		request.NewGetRequestUseCase(st.requests),
		request.NewTransitionRequestUseCase(st.requests, policy),
		progressUC,
		notifier,
	)

	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Skill:   skillHandler,
		Request: requestHandler,
		User:    handler.NewUserHandler(skill.NewListOwnerSkillsUseCase(st.skills), progressUC),
		WS:      handler.NewWSHandler(hub, cfg.AllowedOrigins),
		Health:  handler.NewHealthHandler(checks),
	}, tokenManager)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo("http-shutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorf("main: ошибка остановки http сервера: %v", err)
		}
	})

	logger.Log.Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// migrationsFS возвращает каталог миграций с диска, если задан MIGRATIONS_PATH,
// иначе встроенные в бинарник миграции.
func migrationsFS(path string) fs.FS {
	if path != "" {
		return os.DirFS(path)
	}
	return migrations.FS
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.Warnf("main: ошибка закрытия базы: %v", err)
	}
}
