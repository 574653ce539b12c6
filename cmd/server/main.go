package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	config "github.com/bkmarketing/post-composer/configs"
	"github.com/bkmarketing/post-composer/internal/api"
	job "github.com/bkmarketing/post-composer/internal/jobs"
	"github.com/bkmarketing/post-composer/internal/models"
	"github.com/bkmarketing/post-composer/internal/queue"
	"github.com/bkmarketing/post-composer/internal/repository"
	"github.com/bkmarketing/post-composer/internal/service"
	"github.com/bkmarketing/post-composer/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	if cfg.SecretKey == "" {
		key, err := utils.GenerateSecretKey()
		if err != nil {
			log.Fatalf("Failed to generate secret key: %v", err)
		}
		cfg.SecretKey = key
		log.Println("SECRET_KEY not set, sessions will not survive a restart")
	}

	pageRepo := repository.NewPageRepository(models.PageCatalog)
	draftRepo := repository.NewDraftRepository()
	sessionRepo := repository.NewSessionRepository()

	authService := service.NewAuthService(*cfg, draftRepo, sessionRepo)
	draftService := service.NewDraftService(*cfg, draftRepo, pageRepo)
	previewService := service.NewPreviewService(*cfg, draftRepo, pageRepo)

	// scheduled-post confirmations are optional and need redis
	var client *asynq.Client
	var worker *asynq.Server
	if cfg.RedisURI != "" {
		redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
		client = asynq.NewClient(redisConn)
		defer client.Close()

		queueW := queue.NewQueue(pageRepo)
		worker = asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeScheduledPost, queueW.HandleScheduledPostTask)

		log.Println("Starting the Asynq server...")
		if err := worker.Start(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}

	app := api.NewServer(*cfg, api.Dependencies{
		Pages:       pageRepo,
		Auth:        authService,
		Drafts:      draftService,
		Previews:    previewService,
		AsynqClient: client,
	})

	// cron jobs
	cleanupJob := job.NewDraftCleanupJob(draftRepo, sessionRepo, cfg.DraftTTL)

	c := cron.New()
	if err := c.AddFunc("@every 00h05m00s", cleanupJob.RemoveIdleDrafts); err != nil {
		log.Fatalf("Failed to register cleanup job: %v", err)
	}
	c.Start()
	defer c.Stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, worker)
}

func gracefulShutdown(app *fiber.App, worker *asynq.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	if worker != nil {
		fmt.Fprint(os.Stdout, "Stopping queue worker... ")
		worker.Shutdown()
		fmt.Fprintln(os.Stdout, "Done")
	}
	log.Println("Server shutdown complete.")
}
