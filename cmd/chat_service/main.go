package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "realtime_chat_service/cmd/chat_service/docs" // 引入生成的 Swagger 文档
	"realtime_chat_service/internal/chat/app"
	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/hub"
	"realtime_chat_service/internal/chat/repository"
	"realtime_chat_service/internal/chat/router"
	"realtime_chat_service/pkg/config"
	"realtime_chat_service/pkg/database"
	"realtime_chat_service/pkg/logger"
	memberpb "realtime_chat_service/pkg/proto/member"
	testtool "realtime_chat_service/pkg/test_tool"
	"realtime_chat_service/pkg/token"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

// @title Realtime Chat Service API
// @version 1.0
// @description Chat history, seen state, recent chats and presence
// @host localhost:8081
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	defer logger.Log.Sync()
	cfg := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)
	cfg.Realtime = cfg.Realtime.WithDefaults()
	token.SetSecret(cfg.Auth.JWTSecret)

	testtool.StartPprof(cfg.Pprof, "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. 訊息儲存 (mongo / postgres)
	msgRepo, closeStore := newMessageRepository(ctx, cfg)
	defer closeStore()

	// 2. Redis (last seen + member session)
	presenceRedis := newRedisClient(cfg.Redis.RedisDB)
	defer presenceRedis.Close()
	lastSeen := repository.NewRedisLastSeenRepository(
		database.NewRedisRepository[domain.LastSeen](presenceRedis, repository.LastSeenKeyPrefix),
		cfg.Redis.LastSeenTTL,
	)

	var sessions repository.SessionRepository
	if cfg.Auth.CheckSession {
		sessionRedis := newRedisClient(cfg.Redis.SessionDB)
		defer sessionRedis.Close()
		sessions = repository.NewRedisSessionRepository(database.NewRedisRepository[domain.MemberSession](sessionRedis, ""))
	}

	// 3. member gRPC (user directory)
	grpcConn, err := database.CreateGRPCClient(cfg.MemberService.Addr(), cfg.MemberService.Timeout)
	if err != nil {
		logger.Log.Fatal("create member GRPC", zap.String("addr", cfg.MemberService.Addr()), zap.Error(err))
	}
	defer grpcConn.Close()
	directory := repository.NewGRPCUserDirectory(memberpb.NewMemberServiceClient(grpcConn))

	// 4. Kafka message events
	publisher := repository.NewNopEventPublisher()
	if cfg.Kafka.Enabled {
		publisher = repository.NewKafkaEventPublisher(database.NewKafkaWriter(database.KafkaConnection{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}))
	}
	defer publisher.Close()

	// 5. hub + use cases
	authenticator := app.NewAuthenticator(sessions, cfg.Auth.CheckSession)
	registry := hub.NewRegistry(authenticator)
	fanout := hub.NewFanout(registry)
	tracker := hub.NewTracker(registry, fanout, lastSeen)
	conversationUC := app.NewConversationUseCase(msgRepo, directory, publisher, registry, fanout, cfg.Realtime)

	// 6. RabbitMQ follow events
	if cfg.RabbitMQ.Enabled {
		startFollowConsumer(ctx, cfg.RabbitMQ, fanout)
	}

	// 7. 啟動 Fiber
	r := fiber.New(fiber.Config{DisableStartupMessage: true})
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))

	router.RegisterRoutes(r, authenticator,
		app.NewChatWebsocketHandler(registry, tracker, conversationUC, cfg.Realtime),
		app.NewChatRestHandler(conversationUC, tracker),
	)

	go func() {
		<-ctx.Done()
		logger.Log.Info("shutting down chat service")
		registry.Shutdown()
		tracker.Wait()
		if err := r.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Log.Error("fiber shutdown", zap.Error(err))
		}
	}()

	port := ":" + cfg.Port
	logger.Log.Info("Chat Service listening", zap.String("port", port))
	if err := r.Listen(port); err != nil {
		logger.Log.Fatal("Failed to start Fiber", zap.Error(err))
	}
}

func newMessageRepository(ctx context.Context, cfg config.Chat) (repository.MessageRepository, func()) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pg := cfg.PostgreSQL
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", pg.User, pg.Password, pg.Host, pg.Port, pg.Database)
		pool, err := database.NewDatabaseConnection(database.Connection{
			ConnectStr:    dsn,
			RetryCount:    pg.RetryCount,
			RetryInterval: time.Duration(pg.RetryInterval),
		})
		if err != nil {
			logger.Log.Fatal("Unable to connect to postgreSQL database after retries", zap.String("host", pg.Host), zap.Error(err))
		}
		if err := repository.EnsurePostgresSchema(ctx, pool); err != nil {
			logger.Log.Fatal("postgres schema", zap.Error(err))
		}
		return repository.NewPostgresMessageRepository(pool), pool.Close

	default:
		m := cfg.MongoSQL
		uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", m.User, m.Password, m.Host, m.Port)
		mongo, err := database.NewMongoDB(ctx, database.Connection{
			ConnectStr:    uri,
			RetryCount:    m.RetryCount,
			RetryInterval: time.Duration(m.RetryInterval),
		}, m.Database)
		if err != nil {
			logger.Log.Fatal("Unable to connect to mongoDB database after retries", zap.String("host", m.Host), zap.Error(err))
		}
		if err := repository.EnsureMongoIndexes(ctx, mongo.Database); err != nil {
			logger.Log.Fatal("mongo indexes", zap.Error(err))
		}
		return repository.NewMongoMessageRepository(mongo.Database), func() { mongo.Close(context.Background()) }
	}
}

// newRedisClient sentinel when REDIS_SENTINEL*_IP is set, otherwise REDIS_ADDR
func newRedisClient(db int) *redis.Client {
	masterName, sentinels := config.GetRedisSetting()
	if len(sentinels) > 0 {
		client, err := database.NewRedisClient(masterName, sentinels, db)
		if err != nil {
			logger.Log.Fatal("connect redis", zap.Error(err))
		}
		return client
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Log.Fatal("connect redis", zap.String("addr", addr), zap.Error(err))
	}
	return client
}

func startFollowConsumer(ctx context.Context, rc config.RabbitConfig, fanout *hub.Fanout) {
	conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    rc.URL,
		RetryCount:    rc.RetryCount,
		RetryInterval: time.Duration(rc.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("connect rabbitmq", zap.Error(err))
	}
	ch, err := database.OpenQueue(conn, rc.Queue)
	if err != nil {
		logger.Log.Fatal("open follow queue", zap.Error(err))
	}

	consumer := app.NewFollowConsumer(ch, rc.Queue, fanout)
	go func() {
		defer conn.Close()
		defer ch.Close()
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Log.Error("follow consumer stopped", zap.Error(err))
		}
	}()
}
