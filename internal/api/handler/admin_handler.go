package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finvault/bank-gateway/internal/core/domain"
	"github.com/finvault/bank-gateway/internal/core/ports"
)

// AdminHandler exposes the administrative user CRUD surface. Every route is
// behind Auth + RBAC(admin).
type AdminHandler struct {
	authService ports.AuthService
}

func NewAdminHandler(authService ports.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

type addUserRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin employee user"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type userSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AddUser enrolls a user on behalf of an administrator.
//
// @Summary      Add a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      addUserRequest  true  "User details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /admin/addUser [post]
func (h *AdminHandler) AddUser(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("InvalidPayload", "invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("InvalidPayload", err.Error()))
	}

	if _, err := h.authService.Enroll(c.Request().Context(), req.Username, req.Email, req.Role, req.Password); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, errorBody("UserExists", "User already exists"))
		}
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// ListUsers returns id, username, and role for every user.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}   userSummary
// @Failure      500  {object}  map[string]string
// @Router       /admin/listUsers [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, userSummary{ID: u.ID, Username: u.Username, Role: u.Role})
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteUser removes a user keyed by short id.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User short id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin/deleteUser/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.authService.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorBody("UserNotFound", "User not found"))
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
