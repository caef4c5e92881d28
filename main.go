package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frontdesk/config"
	"frontdesk/cron"
	"frontdesk/database"
	recordsRepo "frontdesk/database/repository/records"
	"frontdesk/handlers"
	"frontdesk/routes"
	"frontdesk/services/availability"
	"frontdesk/services/booking"
	"frontdesk/services/calendar"
	"frontdesk/services/dialogue"
	"frontdesk/services/messaging"
	"frontdesk/services/reasoning"
	"frontdesk/services/session"
	"frontdesk/services/tasks"
	"frontdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Knowledge base and system instructions, loaded once for the process.
	knowledgeBase, err := reasoning.LoadKnowledgeBase(config.AppConfig.KnowledgeBasePath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load knowledge base: %v", err)
	}
	systemPrompt := reasoning.BuildSystemPrompt(
		config.AppConfig.BusinessName,
		config.AppConfig.AssistantName,
		knowledgeBase,
	)

	engine, err := reasoning.NewGeminiEngine(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GeminiModel,
		systemPrompt,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize reasoning engine: %v", err)
	}

	cal, err := calendar.NewGoogleCalendar(
		context.Background(),
		config.AppConfig.GoogleCredentialsFile,
		config.AppConfig.CalendarID,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar client: %v", err)
	}

	messenger := messaging.NewTwilioMessenger(
		config.AppConfig.TwilioSID,
		config.AppConfig.TwilioToken,
		config.AppConfig.TwilioNumber,
	)

	// Session store: per-process memory by default, Redis when running more
	// than one webhook instance.
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	var sessionStore session.Store
	var redisClients []*redis.Client
	if config.AppConfig.SessionStore == "redis" {
		client := utils.GetSessionCacheClient()
		sessionStore = session.NewRedisStore(client, sessionTTL)
		redisClients = append(redisClients, client)
	} else {
		sessionStore = session.NewMemoryStore(sessionTTL)
	}

	reminderScheduler := tasks.NewAsynqScheduler(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	cron.InitReminderWorker(messenger)

	executor := &booking.DefaultExecutor{
		Calendar:     cal,
		Messenger:    messenger,
		Records:      recordsRepo.NewMongoRecordRepo(),
		Reminders:    reminderScheduler,
		BusinessName: config.AppConfig.BusinessName,
		ReminderLead: time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour,
	}

	orchestrator := &dialogue.Orchestrator{
		Sessions: sessionStore,
		Engine:   engine,
		Dispatcher: &dialogue.Dispatcher{
			Resolver: availability.NewDefaultResolver(cal),
			Executor: executor,
		},
	}

	utils.StartHealthMonitor(redisClients, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	voiceHandler := handlers.NewVoiceHandler(orchestrator)
	routes.RegisterRoutes(router, voiceHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
