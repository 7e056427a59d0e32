package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"paydocs-backend/internal/middleware"
	"paydocs-backend/internal/models"
	"paydocs-backend/internal/services"
	"paydocs-backend/pkg/utils"
)

type PaymentHandler struct {
	Service     *services.PaymentsService
	UserService *services.UserService
}

func NewPaymentHandler(s *services.PaymentsService, userService *services.UserService) *PaymentHandler {
	return &PaymentHandler{Service: s, UserService: userService}
}

// ProvisionAccount creates a payment provider account for the caller
func (h *PaymentHandler) ProvisionAccount(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "User not found")
		return
	}

	var req models.ProvisionAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.Service.ProvisionAccount(r.Context(), user, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, account)
}

// AccountStatus returns the caller's payment account status
func (h *PaymentHandler) AccountStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	status, err := h.Service.AccountStatus(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, status)
}

// Webhook handles provider account lifecycle events
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.Service.VerifyWebhookSignature(body, signature) {
		log.Printf("[Payments] webhook signature verification failed")
		utils.Error(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var event struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid webhook body")
		return
	}

	if err := h.Service.ProcessWebhook(r.Context(), event.Event, event.Payload); err != nil {
		log.Printf("[Payments] webhook processing failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
