package handlers

import (
	"errors"
	"io"
	"log/slog"

	"github.com/burakserin/taskvault/internal/avatar"
	"github.com/burakserin/taskvault/internal/dto"
	"github.com/burakserin/taskvault/internal/mailer"
	"github.com/burakserin/taskvault/internal/middleware"
	"github.com/burakserin/taskvault/internal/services"
	"github.com/burakserin/taskvault/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	users  *services.UserService
	mailer *mailer.Mailer
}

func NewUserHandler(users *services.UserService, mailer *mailer.Mailer) *UserHandler {
	return &UserHandler{users: users, mailer: mailer}
}

// Signup handles POST /users.
func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "invalid request body",
		})
	}

	user, token, err := h.users.Signup(&req)
	if err != nil {
		var ferr *validation.FieldError
		if errors.As(err, &ferr) || errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("signup failed", "action", "signup", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to create user",
		})
	}

	h.mailer.SendWelcomeEmail(user.Email, user.Name)

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		User:  dto.NewUserResponse(user),
		Token: token,
	})
}

// Login handles POST /users/login.
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "invalid request body",
		})
	}

	user, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrInvalidCredentials.Error(),
		})
	}

	token, err := h.users.IssueToken(user)
	if err != nil {
		slog.Error("token issue failed", "action", "login", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to login",
		})
	}

	return c.JSON(dto.AuthResponse{
		User:  dto.NewUserResponse(user),
		Token: token,
	})
}

// Logout revokes only the session used for this request.
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.users.Logout(user.ID, middleware.CurrentToken(c)); err != nil {
		slog.Error("logout failed", "action", "logout", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to logout",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "you have now logged out"})
}

// LogoutAll revokes every session of the authenticated user.
func (h *UserHandler) LogoutAll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.users.LogoutAll(user.ID); err != nil {
		slog.Error("logout-all failed", "action", "logout_all", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to logout",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "you are now logged out from all sessions"})
}

// Me returns the redacted authenticated user.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(dto.NewUserResponse(middleware.CurrentUser(c)))
}

// UpdateMe applies a whitelisted partial update to the profile.
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	upd, err := dto.ParseUserUpdate(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	user := middleware.CurrentUser(c)
	if err := h.users.Update(user, upd); err != nil {
		var ferr *validation.FieldError
		if errors.As(err, &ferr) || errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("profile update failed", "action", "update_profile", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to update profile",
		})
	}

	return c.JSON(dto.NewUserResponse(user))
}

// DeleteMe removes the account and everything it owns.
func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.users.Delete(user); err != nil {
		slog.Error("account delete failed", "action", "delete_account", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to delete account",
		})
	}

	h.mailer.SendAccountCancellationEmail(user.Email, user.Name)

	return c.JSON(dto.NewUserResponse(user))
}

// UploadAvatar accepts a multipart image, normalizes it to a 250x250 PNG and
// stores it. All rejections happen before anything is persisted.
func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	header, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "an image file named \"avatar\" is required",
		})
	}

	if !avatar.AllowedExt(header.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "please upload a jpg, jpeg or png file",
		})
	}
	if header.Size > avatar.MaxUploadBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "avatar must be 1MB or smaller",
		})
	}

	file, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to read upload",
		})
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to read upload",
		})
	}

	png, err := avatar.Normalize(buf)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "uploaded file is not a valid image",
		})
	}

	user := middleware.CurrentUser(c)
	if err := h.users.SetAvatar(user, png); err != nil {
		slog.Error("avatar store failed", "action", "upload_avatar", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to store avatar",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "avatar uploaded"})
}

// DeleteAvatar clears the stored avatar.
func (h *UserHandler) DeleteAvatar(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.users.ClearAvatar(user); err != nil {
		slog.Error("avatar clear failed", "action", "delete_avatar", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to delete avatar",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "avatar deleted"})
}

// GetAvatar serves any user's avatar as raw PNG bytes, no auth required.
func (h *UserHandler) GetAvatar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return avatarNotFound(c)
	}

	png, err := h.users.GetAvatar(id)
	if err != nil {
		return avatarNotFound(c)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func avatarNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "avatar not found",
	})
}
