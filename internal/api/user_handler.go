package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shaiso/Flowdoc/internal/domain"
)

// ListUsers возвращает всех пользователей.
// GET /api/v1/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.List(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}

	List(w, result, len(result))
}

// CreateUser создаёт пользователя.
// POST /api/v1/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Name == "" || !strings.Contains(req.Email, "@") {
		BadRequest(w, "name and valid email are required")
		return
	}

	user := &domain.User{
		ID:    uuid.New(),
		Name:  req.Name,
		Email: req.Email,
	}

	if err := h.userRepo.Create(r.Context(), user); HandleRepoError(w, h.logger, err, "") {
		return
	}

	Created(w, UserFromDomain(*user))
}

// GetUser возвращает пользователя по ID.
// GET /api/v1/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid user id")
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "user not found") {
		return
	}

	Success(w, UserFromDomain(*user))
}

// DeleteUser удаляет пользователя.
// DELETE /api/v1/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid user id")
		return
	}

	if err := h.userRepo.Delete(r.Context(), id); HandleRepoError(w, h.logger, err, "user not found") {
		return
	}

	NoContent(w)
}
