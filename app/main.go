package main

import (
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/pressroom/internal/articleservice"
	"github.com/sushihentaime/pressroom/internal/commentservice"
	"github.com/sushihentaime/pressroom/internal/common"
	"github.com/sushihentaime/pressroom/internal/userservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	db             *sql.DB
	userService    *userservice.UserService
	articleService *articleservice.ArticleService
	commentService *commentservice.CommentService
}

func newApplication(cfg *Config, logger *slog.Logger, db *sql.DB, producer common.MessageProducer) *application {
	tokens := userservice.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL, common.NewCache(cfg.JWTTTL, 10*time.Minute))
	articles := articleservice.NewArticleService(db, producer, logger)

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		userService:    userservice.NewUserService(db, producer, tokens, logger),
		articleService: articles,
		commentService: commentservice.NewCommentService(db, articles),
	}
}

func main() {
	configPath := flag.String("config", ".env", "path to the env file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dsn := common.PostgresDSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	if err := common.MigrateUp(dsn); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(dsn, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBMaxIdleTime)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	var producer common.MessageProducer = common.NopProducer{}

	if cfg.MQHost != "" {
		broker, err := common.NewMessageBroker(common.AMQPURI(cfg.MQHost, cfg.MQPort, cfg.MQUser, cfg.MQPassword))
		if err != nil {
			logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer broker.Close()

		if err := common.SetupEventsExchange(broker); err != nil {
			logger.Error("failed to setup the events exchange", slog.String("error", err.Error()))
			os.Exit(1)
		}

		producer = broker

		go consumeAuditEvents(broker, logger)
	} else {
		logger.Warn("RABBITMQ_HOST is empty, domain events will not be published")
	}

	app := newApplication(cfg, logger, db, producer)

	if err := app.serve(cfg.Port); err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
