package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"socialfeed/dto"
	"socialfeed/internal/repository"
	"socialfeed/internal/services"
	"socialfeed/model"
)

func userResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Name:  u.Name,
		Image: u.Image,
	}
}

// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        data  body  dto.RegisterDTO  true  "Registration payload"
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func Register(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.RegisterDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
		user, err := auth.Register(c.Context(), body.Email, body.Name, body.Password)
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return fiber.NewError(fiber.StatusConflict, "email already registered")
		}
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(userResponse(user))
	}
}

// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        data  body  dto.LoginDTO  true  "Credentials"
// @Success      200  {object}  dto.LoginResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func Login(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.LoginDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
		token, user, err := auth.Login(c.Context(), body.Email, body.Password)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(dto.LoginResponse{Token: token, User: userResponse(user)})
	}
}

// @Summary      Who am I
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /whoami [get]
func WhoAmI(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		user, err := auth.GetUser(c.Context(), userID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(userResponse(user))
	}
}
