package handler

import (
	"net/http"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/service"
	"journal-service/internal/transport/http/middleware"

	"go.uber.org/zap"
)

// AccountHandler serves the profile of the signed in user
type AccountHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(userService service.UserService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetAccount returns the profile
// @Summary Get account
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{id=string,email=string,username=string,full_name=string,website=string,avatar_url=string,timezone=string}
// @Failure 401 {object} object{error=string}
// @Router /api/v1/account [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUserByID(r.Context(), middleware.GetUserID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user.ToResponse())
}

// UpdateAccount applies a partial profile update.
// An empty string clears username, full name, website or avatar.
// @Summary Update account
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{username=string,full_name=string,website=string,avatar_url=string,timezone=string,reminders_enabled=bool} true "Profile fields"
// @Success 200 {object} object{id=string,email=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/v1/account [put]
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req entity.ProfileUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), middleware.GetUserID(r), &req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user.ToResponse())
}
