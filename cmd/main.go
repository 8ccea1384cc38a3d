package main

import (
	"auth-service/config"
	_ "auth-service/docs"
	"auth-service/internal/handler"
	"auth-service/internal/migrations"
	"auth-service/internal/notifier"
	"auth-service/internal/ports"
	"auth-service/internal/repository"
	"auth-service/internal/security"
	"auth-service/internal/service"
	"context"
	"errors"
	"flag"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// время ожидания письма в очереди перед повторным опросом
const queuePollTimeout = 5 * time.Second

// @title Auth-service
// @version 1.0
// @description REST API аутентификации: регистрация, вход с 2FA, refresh токены, сброс пароля

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "config.yaml", "путь к файлу конфигурации")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger, err := config.SetupLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Ошибка создания логгера: %v", err)
	}
	defer logger.Sync()

	shutdownTracing, err := config.SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal("Ошибка настройки трассировки", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Ошибка остановки трассировки", zap.Error(err))
		}
	}()

	store, closeStore := setupStore(ctx, cfg, logger)
	defer closeStore()

	mailNotifier, closeMail := setupNotifier(ctx, cfg, logger)
	defer closeMail()

	templates := setupTemplates(ctx, cfg, logger)

	hasher, err := security.NewPasswordHasher(cfg.Password)
	if err != nil {
		logger.Fatal("Ошибка создания хэшера паролей", zap.Error(err))
	}
	codec, err := security.NewTokenCodec(cfg.Tokens)
	if err != nil {
		logger.Fatal("Ошибка создания кодека токенов", zap.Error(err))
	}
	totp := security.NewTOTP(cfg.TOTP)

	refreshTokens := service.NewRefreshTokenService(store, cfg.Tokens.RefreshTokenTTL, time.Now)
	authService := service.NewAuthenticationService(cfg, store, hasher, codec, refreshTokens, totp, mailNotifier, templates)
	userService := service.NewUserService(store, hasher, service.PasswordPolicy{MinLength: cfg.Password.MinLength})

	srv, router := config.SetupServer(cfg.ServerAddr)
	handler.SetupRoutes(
		router,
		handler.NewAuthenticationHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewTwoFactorHandler(authService),
		authService,
	)

	runServer(ctx, srv, logger)

	// письма, отправка которых уже началась
	authService.Wait()
}

// setupStore : postgres с миграциями или хранилище в памяти
func setupStore(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (ports.CredentialStore, func()) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		logger.Warn("используется хранилище в памяти, данные не сохраняются между запусками")
		return repository.NewMemoryStore(), func() {}
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		logger.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}

	if err := migrations.Run(ctx, db.DB.DB); err != nil {
		logger.Fatal("Ошибка миграций", zap.Error(err))
	}

	return repository.NewCredentialRepository(db), func() {
		if err := db.Close(); err != nil {
			logger.Warn("Ошибка при закрытии БД", zap.Error(err))
		}
	}
}

// setupNotifier : log, smtp или redis очередь с фоновым обработчиком
func setupNotifier(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (ports.Notifier, func()) {
	switch cfg.Mail.Driver {
	case config.MailDriverSMTP:
		return notifier.NewSMTPNotifier(cfg.Mail), func() {}
	case config.MailDriverRedis:
		redisClient, err := config.SetupRedis(&cfg.RedisConfig)
		if err != nil {
			logger.Fatal("Ошибка подключения к Redis", zap.Error(err))
		}

		queue := repository.NewMailQueueRepository(redisClient, cfg.Mail.QueueKey)

		var delivery ports.Notifier = notifier.NewLogNotifier(logger)
		if cfg.Mail.SMTPHost != "" {
			delivery = notifier.NewSMTPNotifier(cfg.Mail)
		}

		workerCtx, stopWorker := context.WithCancel(ctx)
		done := make(chan struct{})
		worker := notifier.NewQueueWorker(queue, delivery, queuePollTimeout, cfg.Mail.SendTimeout)
		go func() {
			defer close(done)
			worker.Run(workerCtx)
		}()

		return notifier.NewQueueNotifier(queue), func() {
			stopWorker()
			<-done
			if err := redisClient.Close(); err != nil {
				logger.Warn("Ошибка при закрытии Redis", zap.Error(err))
			}
		}
	default:
		return notifier.NewLogNotifier(logger), func() {}
	}
}

// setupTemplates : переопределения шаблонов из S3, если задан бакет
func setupTemplates(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) *notifier.Templates {
	if cfg.Mail.TemplatesBucket == "" {
		return notifier.NewTemplates(nil)
	}

	source, err := notifier.NewS3TemplateSource(ctx, cfg.Mail)
	if err != nil {
		logger.Warn("S3 шаблоны недоступны, используются встроенные", zap.Error(err))
		return notifier.NewTemplates(nil)
	}

	return notifier.NewTemplates(source)
}

func runServer(ctx context.Context, server *http.Server, logger *zap.Logger) {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("сервер запущен", zap.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ошибка работы сервера", zap.Error(err))
		}
	case sig := <-signalChannel:
		logger.Info("получен сигнал остановки работы сервера", zap.String("signal", sig.String()))
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		logger.Warn("ошибка при остановке сервера", zap.Error(err))
	} else {
		logger.Info("Сервер успешно остановлен")
	}
}
