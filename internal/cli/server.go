package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizgrade-service/internal/app"
	"quizgrade-service/internal/config"
	"quizgrade-service/internal/domain"
	"quizgrade-service/internal/infra/memory"
	pgstore "quizgrade-service/internal/infra/postgres"
	redisstore "quizgrade-service/internal/infra/redis"
	"quizgrade-service/internal/logger"
	transport "quizgrade-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the grading server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.QuizLoader = memory.NewStaticQuizLoader(sampleQuizzes())
	var results app.ResultRepository = memory.NewResultStore()
	if pool != nil {
		loader = pgstore.NewQuizLoader(pool)
		results = pgstore.NewResultStore(pool)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizzes app.QuizRepository
	if redisClient != nil {
		quizzes = redisstore.NewQuizRepository(redisClient, loader, quizTTL)
	} else {
		quizzes = memory.NewQuizRepository(loader, quizTTL)
	}

	feedSize := cfg.Feed.Size
	if feedSize <= 0 {
		feedSize = app.DefaultFeedSize
	}
	var feeds app.FeedRepository
	if redisClient != nil {
		feeds = redisstore.NewFeedStore(redisClient, redisTTL, feedSize)
	} else {
		feeds = memory.NewFeedStore(feedSize)
	}

	service := app.NewGradingService(quizzes, results, feeds, log)
	restHandler := transport.NewRESTHandler(service, log)
	wsHandler := transport.NewWSHandler(service, log)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	if len(cfg.Server.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	restHandler.Mount(router)
	router.Get("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting grading service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuizzes provides demo quiz data for running without Postgres.
func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"quiz-1": {
			ID:        "quiz-1",
			Title:     "General knowledge warm-up",
			TimeLimit: 10,
			Questions: []domain.Question{
				{
					ID:            "q1",
					Text:          "What is the capital of France?",
					Type:          domain.MultipleChoice,
					Options:       []string{"London", "Paris", "Berlin", "Madrid"},
					CorrectAnswer: "Paris",
					Difficulty:    "easy",
					Points:        5,
				},
				{
					ID:            "q2",
					Text:          "The Pacific is the largest ocean.",
					Type:          domain.TrueFalse,
					CorrectAnswer: "True",
					Difficulty:    "easy",
					Points:        5,
				},
				{
					ID:            "q3",
					Text:          "Which planet is known as the Red Planet?",
					Type:          domain.ShortAnswer,
					CorrectAnswer: "Mars",
					Difficulty:    "medium",
					Points:        5,
				},
			},
		},
	}
}
