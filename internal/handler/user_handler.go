package handler

import (
	"aptilab/internal/dto"
	"aptilab/internal/service"
	"aptilab/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles registration and login.
type UserHandler struct {
	users     service.UserService
	validator *validation.Validator
}

func NewUserHandler(users service.UserService, v *validation.Validator) *UserHandler {
	return &UserHandler{users: users, validator: v}
}

// Register godoc
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account"
// @Success 200 {object} dto.RegisterResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.users.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Login godoc
// @Summary Log in
// @Description Checks the credentials and returns the user with an access token when JWT is configured
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.users.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
