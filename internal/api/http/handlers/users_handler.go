package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/femcoders/pettrack/internal/api/dto"
	"github.com/femcoders/pettrack/internal/auth"
	"github.com/femcoders/pettrack/internal/domain"
	"github.com/femcoders/pettrack/internal/service"
	apperrors "github.com/femcoders/pettrack/pkg/util"
)

// UsersHandler exposes the user directory endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	users, err := h.users.List(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(userResponses(users))
}

// Filter GET /api/users/filter?role=.
func (h *UsersHandler) Filter(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)

	var role *domain.Role
	if raw := c.Query("role"); raw != "" {
		parsed, ok := domain.ParseRole(raw)
		if !ok {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": raw})
		}
		role = &parsed
	}

	users, err := h.users.FilterByRole(c.UserContext(), caller, role)
	if err != nil {
		return err
	}
	return c.JSON(userResponses(users))
}

// Get GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.users.GetByID(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Create POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, password required", nil)
	}

	user, err := h.users.Create(c.UserContext(), caller, service.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Update PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, password required", nil)
	}

	input := service.UserUpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != "" {
		role, ok := domain.ParseRole(req.Role)
		if !ok {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": req.Role})
		}
		input.Role = role
	}

	user, err := h.users.Update(c.UserContext(), caller, id, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}
	message, err := h.users.Delete(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

func userResponses(users []domain.User) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return items
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}
