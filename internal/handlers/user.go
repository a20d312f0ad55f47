package handlers

import (
	"net/http"

	"github.com/dimitrije/futbol-api/internal/middleware"
	"github.com/dimitrije/futbol-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, toUserResponse(user))
}

// ListAvailable returns visible players without a team, for captains
// choosing whom to invite.
func (h *UserHandler) ListAvailable(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	users, err := h.userService.ListAvailable(c.Request.Context(), c.QueryParam("q"))
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i := range users {
		response[i] = dto.UserResponse{
			ID:      users[i].ID,
			Name:    users[i].Name,
			Visible: users[i].Visible,
		}
	}

	_ = c.JSON(http.StatusOK, response)
}

func (h *UserHandler) SetVisibility(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.SetVisibilityRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Visible == nil {
		c.BadRequest("visible is required")
		return
	}

	user, err := h.userService.SetVisibility(c.Request.Context(), userID, *req.Visible)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, toUserResponse(user))
}
