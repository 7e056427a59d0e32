package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"paydocs-backend/internal/auth"
	"paydocs-backend/internal/cache"
	"paydocs-backend/internal/config"
	"paydocs-backend/internal/database"
	"paydocs-backend/internal/db"
	"paydocs-backend/internal/email"
	"paydocs-backend/internal/handlers"
	"paydocs-backend/internal/health"
	h "paydocs-backend/internal/http"
	"paydocs-backend/internal/middleware"
	"paydocs-backend/internal/repositories"
	"paydocs-backend/internal/services"
	"paydocs-backend/internal/storage"
	"paydocs-backend/migrations"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Override port if specified
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()
	log.Printf("Connected to database: %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	// This automatically creates all required tables on startup
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.Files)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	companyRepo := repositories.NewCompanyRepository(pool)
	documentRepo := repositories.NewDocumentRepository(pool)
	emailLogRepo := repositories.NewEmailLogRepository(pool)
	paymentAccountRepo := repositories.NewPaymentAccountRepository(pool)

	// Initialize object storage for company logos (optional - degrades gracefully)
	var store *storage.Client
	if cfg.Storage.AccessKey != "" && cfg.Storage.SecretKey != "" {
		var err error
		store, err = storage.NewClient(context.Background(), cfg)
		if err != nil {
			log.Printf("[Storage] Client init failed: %v (logo upload disabled)", err)
			store = nil
		} else {
			log.Printf("[Storage] Connected to bucket %s", cfg.Storage.Bucket)
		}
	} else {
		log.Println("WARNING: STORAGE_ACCESS_KEY not set, logo upload disabled")
	}

	// Use Resend for production, fallback to MockEmail if API key not set
	var emailService email.Provider
	if cfg.Email.APIKey != "" {
		log.Println("Using Resend for document delivery")
		emailService = email.NewResendService(cfg.Email.APIKey, cfg.Email.FromAddress)
	} else {
		log.Println("WARNING: RESEND_API_KEY not set, using MockEmail (messages will only print to logs)")
		emailService = email.NewMockEmailService()
	}
	emailService.SetLogRepository(emailLogRepo)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	customerService := services.NewCustomerService(customerRepo)
	companyService := services.NewCompanyService(companyRepo, store)
	documentService := services.NewDocumentService(documentRepo, customerRepo, companyService, emailService)
	paymentsService := services.NewPaymentsService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		paymentAccountRepo,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	documentHandler := handlers.NewDocumentHandler(documentService, emailLogRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentsService, userService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Create router
	router := h.NewRouter(
		authHandler,
		userHandler,
		customerHandler,
		companyHandler,
		documentHandler,
		paymentHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
