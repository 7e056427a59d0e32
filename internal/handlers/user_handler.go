package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"paydocs-backend/internal/middleware"
	"paydocs-backend/internal/models"
	"paydocs-backend/internal/services"

	"github.com/gorilla/mux"
)

// UserHandler serves the admin account-management endpoints
type UserHandler struct {
	Service *services.UserService
}

func NewUserHandler(s *services.UserService) *UserHandler {
	return &UserHandler{Service: s}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// SetActive suspends or restores a user account
func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	adminID, _ := middleware.GetUserIDFromContext(r.Context())
	if id == adminID {
		http.Error(w, "Cannot change your own active status", http.StatusBadRequest)
		return
	}

	var req models.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Service.SetActiveStatus(r.Context(), id, req.IsActive)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	adminEmail, _ := middleware.GetEmailFromContext(r.Context())
	log.Printf("[Admin] %s set user %d active=%t", adminEmail, id, req.IsActive)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
