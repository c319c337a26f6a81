package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/cache"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/database"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/http/handlers"
	appmiddleware "github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/http/middleware"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/integration/ghl"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/mail"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/queue"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/worker"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatalf("❌ RabbitMQ connection failed: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	entryRepo := database.NewPipelineEntryRepository(db)
	attemptRepo := database.NewCallAttemptRepository(db)
	metricRepo := database.NewPerformanceMetricRepository(db)
	profileRepo := database.NewProfileRepository(db)
	assignmentRepo := database.NewAssignmentRepository(db)

	// Gateways and adapters
	ghlClient := ghl.NewClient(os.Getenv("GHL_API_KEY"), os.Getenv("GHL_LOCATION_ID"))
	boardCache := cache.NewPipelineCache(ghlClient, cache.DefaultFreshness)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	// Closed-deal notification consumer
	dealWorker := queue.NewWorker(rabbitMQ.Ch, mailSender, envOr("SALES_COACH_EMAIL", "coach@sizzlecoaching.app"))
	go dealWorker.Start(queue.QueueName)

	// Follow-up sweeper
	followUpWorker := worker.NewFollowUpWorker(db)
	go followUpWorker.Start(context.Background())

	// UseCases
	closeDealUC := usecase.NewCloseDealUseCase(entryRepo, metricRepo, producer)
	createEntryUC := usecase.NewCreatePipelineEntryUseCase(entryRepo)
	updateEntryUC := usecase.NewUpdatePipelineEntryUseCase(entryRepo, closeDealUC)
	listEntriesUC := usecase.NewListPipelineEntriesUseCase(entryRepo)
	callListUC := usecase.NewGetCallListUseCase(entryRepo)
	logCallUC := usecase.NewLogCallUseCase(entryRepo, attemptRepo)
	updateAttemptUC := usecase.NewUpdateCallAttemptUseCase(attemptRepo)
	submitReportUC := usecase.NewSubmitWeeklyReportUseCase(profileRepo, metricRepo)
	updateRecordUC := usecase.NewUpdatePerformanceRecordUseCase(metricRepo)
	monthlyUC := usecase.NewGetMonthlyPerformanceUseCase(metricRepo, entryRepo)
	listAssignmentsUC := usecase.NewListAssignmentsUseCase(assignmentRepo)
	setCompletedUC := usecase.NewSetAssignmentCompletedUseCase(assignmentRepo)
	getBoardUC := usecase.NewGetBoardUseCase(boardCache)
	moveOppUC := usecase.NewMoveOpportunityUseCase(ghlClient, boardCache)
	createOppUC := usecase.NewCreateOpportunityUseCase(ghlClient, boardCache)

	// Handlers
	pipelineHandler := handlers.NewPipelineHandler(listEntriesUC, createEntryUC, updateEntryUC)
	callHandler := handlers.NewCallHandler(callListUC, logCallUC, updateAttemptUC)
	reportHandler := handlers.NewReportHandler(submitReportUC, updateRecordUC, metricRepo)
	dashboardHandler := handlers.NewDashboardHandler(monthlyUC)
	contactHandler := handlers.NewContactHandler(ghlClient)
	boardHandler := handlers.NewBoardHandler(getBoardUC, moveOppUC, createOppUC)
	assignmentHandler := handlers.NewAssignmentHandler(listAssignmentsUC, setCompletedUC)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/pipeline", func(r chi.Router) {
		r.Get("/", pipelineHandler.HandleList)
		r.Post("/", pipelineHandler.HandleCreate)
		r.Put("/{id}", pipelineHandler.HandleUpdate)
	})

	r.Get("/call-list", callHandler.HandleCallList)
	r.Route("/call-attempts", func(r chi.Router) {
		r.Post("/", callHandler.HandleLogCall)
		r.Put("/{id}", callHandler.HandleUpdateAttempt)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/", reportHandler.HandleList)
		r.Post("/", reportHandler.HandleSubmit)
		r.Get("/{id}", reportHandler.HandleGet)
		r.Put("/{id}", reportHandler.HandleUpdate)
	})

	r.Get("/dashboard", dashboardHandler.HandleMonthly)
	r.Get("/profiles/{id}", profileHandler.HandleGet)

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", contactHandler.HandleList)
		r.Get("/search", contactHandler.HandleSearch)
		r.Post("/", contactHandler.HandleCreate)
		r.Put("/{id}", contactHandler.HandleUpdate)
	})

	r.Route("/board", func(r chi.Router) {
		r.Get("/", boardHandler.HandleGet)
		r.Post("/opportunities", boardHandler.HandleCreateOpportunity)
		r.Put("/opportunities/{id}/stage", boardHandler.HandleMove)
	})

	r.Route("/assignments", func(r chi.Router) {
		r.Get("/", assignmentHandler.HandleList)
		r.Put("/{id}/completed", assignmentHandler.HandleSetCompleted)
	})

	port := ":" + envOr("PORT", "8080")
	server := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("🔥 Sizzle API listening on %s", port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
