package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"edulite-assessment-service/internal/app"
	"edulite-assessment-service/internal/config"
	"edulite-assessment-service/internal/domain"
	"edulite-assessment-service/internal/infra/memory"
	pgstore "edulite-assessment-service/internal/infra/postgres"
	redisinfra "edulite-assessment-service/internal/infra/redis"
	transport "edulite-assessment-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the assessment server",
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

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	// Stores: postgres when configured, in-memory demo wiring otherwise.
	var (
		quizStore    app.QuizStore
		quizLoader   memory.QuizLoader
		attemptStore app.AttemptRepository
		taskStore    app.TaskRepository
	)
	if pool != nil {
		store := pgstore.NewQuizStore(pool)
		quizStore = store
		quizLoader = store
		attemptStore = pgstore.NewAttemptStore(pool)
		taskStore = pgstore.NewTaskStore(pool)
	} else {
		loader := memory.NewStaticQuizLoader(sampleQuizzes())
		quizStore = loader
		quizLoader = loader
		attemptStore = memory.NewAttemptStore()
		taskStore = memory.NewTaskStore()
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizRepo app.QuizRepository
	if redisClient != nil {
		quizRepo = redisinfra.NewQuizRepository(redisClient, quizLoader, quizTTL)
	} else {
		quizRepo = memory.NewQuizRepository(quizLoader, quizTTL)
	}

	var progress app.ProgressSource
	if redisClient != nil {
		progress = redisinfra.NewProgressSource(redisClient)
	} else {
		progress = memory.NewStaticProgressSource()
	}

	// Roster comes from the membership service in a full deployment; the
	// demo wiring serves a fixed class list.
	roster := memory.NewStaticRoster(sampleRoster())

	feed := app.NewSubmissionFeed()
	handler := transport.NewHandler(
		app.NewAttemptService(attemptStore, quizRepo, feed),
		app.NewTaskService(taskStore),
		app.NewParticipationService(taskStore, attemptStore, roster, progress),
		app.NewCatalogService(quizStore),
	)
	feedHandler := transport.NewFeedHandler(feed)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("GET /communities/{communityID}/feed", feedHandler.ServeFeed)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting assessment service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuizzes provides minimal demo content; production wiring loads
// quizzes from Postgres.
func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"quiz-1": {
			ID:          "quiz-1",
			CommunityID: "community-1",
			Title:       "Getting started",
			Questions: []domain.Question{
				{
					ID:   "q1",
					Text: "What is 2 + 2?",
					Options: []domain.Option{
						{ID: "o1", Text: "3", Correct: false},
						{ID: "o2", Text: "4", Correct: true},
						{ID: "o3", Text: "5", Correct: false},
					},
				},
				{
					ID:            "q2",
					Text:          "Which of these are prime?",
					AllowMultiple: true,
					Options: []domain.Option{
						{ID: "o1", Text: "2", Correct: true},
						{ID: "o2", Text: "4", Correct: false},
						{ID: "o3", Text: "5", Correct: true},
					},
				},
			},
		},
	}
}

func sampleRoster() map[string][]domain.Student {
	return map[string][]domain.Student{
		"community-1": {
			{ID: "u1", Name: "Alice", Email: "alice@example.com"},
			{ID: "u2", Name: "Bob", Email: "bob@example.com"},
		},
	}
}
