package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-auth-service/internal/api/dto"
	"github.com/spec-kit/shop-auth-service/internal/domain"
	"github.com/spec-kit/shop-auth-service/internal/service"
	apperrors "github.com/spec-kit/shop-auth-service/pkg/util"
)

// UsersHandler exposes registration, listing, updates, and the invite
// endpoints.
type UsersHandler struct {
	auth    *service.AuthService
	users   *service.UserService
	invites *service.InviteService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService, inviteService *service.InviteService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService, invites: inviteService}
}

// Create handles POST /users. Registration requires a pending invite.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		return apperrors.NewValidationError("email, role, password required", nil)
	}

	user, err := h.auth.Register(c.UserContext(), req.ShopID, req.Email, domain.Role(req.Role), req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewUserResponse(user),
	})
}

// List handles GET /users. Admin only; active accounts only.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListActive(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Update handles PATCH /users/:id. Admin only.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var role *domain.Role
	if req.Role != nil {
		r := domain.Role(*req.Role)
		role = &r
	}

	user, err := h.users.Update(c.UserContext(), c.Params("id"), role, req.Active)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Invite handles POST /users/invites. Admin only.
func (h *UsersHandler) Invite(c *fiber.Ctx) error {
	var req dto.InviteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Role == "" {
		return apperrors.NewValidationError("email and role required", nil)
	}

	invite, err := h.invites.Create(c.UserContext(), req.Email, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewInviteResponse(invite)})
}

// ListInvites handles GET /users/invites. Admin only.
func (h *UsersHandler) ListInvites(c *fiber.Ctx) error {
	invites, err := h.invites.List(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.InviteResponse, 0, len(invites))
	for i := range invites {
		out = append(out, dto.NewInviteResponse(&invites[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// AcceptInvite handles POST /users/invites/accept. Admin only.
func (h *UsersHandler) AcceptInvite(c *fiber.Ctx) error {
	var req dto.AcceptInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	invite, err := h.invites.Accept(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewInviteResponse(invite)})
}
