package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "campus_lost_found/cmd/lostfound_service/docs" // 引入 Swagger 文档
	"campus_lost_found/internal/api/handlers"
	"campus_lost_found/internal/api/router"
	itemapp "campus_lost_found/internal/item/app"
	itemdomain "campus_lost_found/internal/item/domain"
	itemrepo "campus_lost_found/internal/item/repository"
	memberapp "campus_lost_found/internal/member/app"
	memberdomain "campus_lost_found/internal/member/domain"
	memberrepo "campus_lost_found/internal/member/repository"
	messageapp "campus_lost_found/internal/message/app"
	messagerepo "campus_lost_found/internal/message/repository"
	"campus_lost_found/pkg/config"
	"campus_lost_found/pkg/database"
	"campus_lost_found/pkg/logger"
	"campus_lost_found/pkg/mailer"
	"campus_lost_found/pkg/token"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.LostFoundService, config.EnvConfig.LostFoundServiceLogPath)
	defer logger.Log.Sync()

	cfg := config.LoadConfig[config.LostFound](config.EnvConfig.LostFoundService, config.EnvConfig.LostFoundServiceYAMLPath)
	cfg.ApplyDefaults()
	if config.EnvConfig.LostFoundServicePort != "" {
		cfg.Port = config.EnvConfig.LostFoundServicePort
	}
	token.SetExpiration(cfg.TokenTTL)
	if cfg.JWTSecret != "" {
		token.SetSecret(cfg.JWTSecret)
	} else if config.IsProduction() {
		logger.Log.Fatal("jwt_secret is required in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. 連線 PostgreSQL (member: pgx, item / message: gorm)
	dsn := database.PostgresDSN(cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Database)
	pgConn := database.Connection{
		ConnectStr:    dsn,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	}
	pool, err := database.NewDatabaseConnection(pgConn)
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL database after retries", zap.Error(err))
	}
	defer pool.Close()

	db, err := database.NewPGConnection(pgConn)
	if err != nil {
		logger.Log.Fatal("Unable to open gorm connection after retries", zap.Error(err))
	}

	memberRepo := memberrepo.NewMemberRepository(pool)
	if err := memberRepo.Migrate(ctx); err != nil {
		log.Fatalf("member 資料表遷移失敗: %v", err)
	}
	itemRepo := itemrepo.NewItemRepo(db)
	if err := itemRepo.AutoMigrate(); err != nil {
		log.Fatalf("items 資料表遷移失敗: %v", err)
	}
	messageRepo := messagerepo.NewMessageRepo(db)
	if err := messageRepo.AutoMigrate(); err != nil {
		log.Fatalf("messages 資料表遷移失敗: %v", err)
	}

	// 2. Redis: session + change feed
	redisClient, err := database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	defer redisClient.Close()
	sessionRepo := database.NewRedisRepository[memberdomain.MemberSession](redisClient)
	changeFeed := messagerepo.NewRedisChangeFeed(redisClient)

	// 3. MinIO
	storage, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      fmt.Sprintf("%s:%d", cfg.MinIO.Host, cfg.MinIO.Port),
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.BucketName,
		UseSSL:        cfg.MinIO.UseSSL,
		PublicBaseURL: cfg.MinIO.PublicBaseURL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: cfg.MinIO.RetryInterval,
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to minio after retries", zap.Error(err))
	}

	// 4. RabbitMQ: image_cleanup, 連不上時不啟用補償
	var rabbit database.RabbitRepo
	conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    database.RabbitURL(cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.IP, cfg.RabbitMQ.Port),
		RetryCount:    cfg.RabbitMQ.RetryCount,
		RetryInterval: cfg.RabbitMQ.RetryInterval,
	})
	if err != nil {
		logger.Log.Error("RabbitMQ 連線失敗, image cleanup disabled", zap.Error(err))
	} else {
		defer conn.Close()
		ch, err := database.GetRabbitMQChannelWithRetry(conn, cfg.RabbitMQ.RetryCount, cfg.RabbitMQ.RetryInterval)
		if err != nil {
			logger.Log.Fatal("RabbitMQ channel err", zap.Error(err))
		}
		defer ch.Close()
		rabbit = database.NewRabbitRepository(ch)
		if err := rabbit.DeclareQueue(itemdomain.QueueName); err != nil {
			logger.Log.Fatal("declare queue err", zap.String("queue", itemdomain.QueueName), zap.Error(err))
		}

		consumer := itemapp.NewCleanupConsumer(rabbit, storage, 5*time.Second)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				logger.Log.Error("cleanup consumer stopped", zap.Error(err))
			}
		}()
	}

	// 5. usecase
	memberUC := memberapp.NewMemberUseCase(memberRepo, cfg.SessionTTL, sessionRepo, nil)
	itemUC := itemapp.NewItemUseCase(storage, itemRepo, rabbit, cfg.Upload.MaxImageBytes)
	notifier := mailer.NewSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	messageUC := messageapp.NewMessageUseCase(messageRepo, memberUC, itemUC, changeFeed, notifier)
	feed := messageapp.NewConversationFeed(messageUC, changeFeed, cfg.Messaging.UnreadPollInterval)
	wsHandler := messageapp.NewMessageWebsocketHandler(messageUC, feed)

	// 创建 Fiber 应用
	r := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Upload.MaxImageBytes) + 1024*1024,
	})
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.LostFoundServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))

	router.RegisterRoutes(r, router.Handlers{
		Member:  handlers.NewMemberHandler(memberUC, cfg.TokenTTL),
		Item:    handlers.NewItemHandler(itemUC),
		Message: handlers.NewMessageHandler(messageUC, wsHandler),
		Session: memberUC,
	})

	go func() {
		<-ctx.Done()
		logger.Log.Info("shutting down")
		if err := r.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Log.Error("shutdown err", zap.Error(err))
		}
	}()

	logger.Log.Info(fmt.Sprintf("LostFoundService listening on : %s", cfg.Port))
	if err := r.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}
