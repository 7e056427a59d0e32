package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"paydocs-backend/internal/handlers"
	"paydocs-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	customerHandler *handlers.CustomerHandler,
	companyHandler *handlers.CompanyHandler,
	documentHandler *handlers.DocumentHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Authenticated profile
	meAPI := r.PathPrefix("/api/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.Me).Methods("GET")
	meAPI.HandleFunc("/password", authHandler.ChangePassword).Methods("PUT")

	// Admin routes - account management
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.Authenticate)
	adminAPI.Use(authMiddleware.RequireAdmin)
	adminAPI.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	adminAPI.HandleFunc("/users/{id}/active", userHandler.SetActive).Methods("PUT")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")

	// Protected API routes - Company profile
	companyAPI := r.PathPrefix("/api/company").Subrouter()
	companyAPI.Use(authMiddleware.Authenticate)
	companyAPI.HandleFunc("", companyHandler.GetProfile).Methods("GET")
	companyAPI.HandleFunc("", companyHandler.UpdateProfile).Methods("PUT")
	companyAPI.HandleFunc("/logo", companyHandler.UploadLogo).Methods("POST")
	companyAPI.HandleFunc("/logo", companyHandler.DeleteLogo).Methods("DELETE")

	// Protected API routes - Documents
	documentsAPI := r.PathPrefix("/api/documents").Subrouter()
	documentsAPI.Use(authMiddleware.Authenticate)
	documentsAPI.HandleFunc("", documentHandler.ListDocuments).Methods("GET")
	documentsAPI.HandleFunc("", documentHandler.CreateDocument).Methods("POST")
	documentsAPI.HandleFunc("/{id}", documentHandler.GetDocument).Methods("GET")
	documentsAPI.HandleFunc("/{id}", documentHandler.UpdateDocument).Methods("PUT")
	documentsAPI.HandleFunc("/{id}", documentHandler.DeleteDocument).Methods("DELETE")
	documentsAPI.HandleFunc("/{id}/pdf", documentHandler.DownloadPDF).Methods("GET")
	documentsAPI.HandleFunc("/{id}/send", documentHandler.SendDocument).Methods("POST")
	documentsAPI.HandleFunc("/{id}/emails", documentHandler.ListEmails).Methods("GET")

	// Protected API routes - Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("/account", paymentHandler.ProvisionAccount).Methods("POST")
	paymentsAPI.HandleFunc("/account", paymentHandler.AccountStatus).Methods("GET")

	// Provider webhooks (signature-verified, no user auth)
	r.HandleFunc("/webhooks/razorpay", paymentHandler.Webhook).Methods("POST")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
