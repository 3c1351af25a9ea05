package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ricaps/tennis-club-reservations-management/internal/config"
	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
	"github.com/Ricaps/tennis-club-reservations-management/internal/repository"
	"github.com/Ricaps/tennis-club-reservations-management/internal/utils"
)

// UserHandler exposes the admin-only user management endpoints.
// Self-service registration lives on AuthHandler instead.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

type userReq struct {
	FirstName   string   `json:"first_name"`
	FamilyName  string   `json:"family_name"`
	PhoneNumber string   `json:"phone_number"`
	Password    string   `json:"password"`
	Roles       []string `json:"roles"`
}

// normalizeRoles upper-cases the requested roles and keeps only known
// ones, defaulting to USER when nothing valid remains.
func normalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		switch strings.ToUpper(strings.TrimSpace(r)) {
		case model.RoleUser:
			out = append(out, model.RoleUser)
		case model.RoleAdmin:
			out = append(out, model.RoleAdmin)
		}
	}
	if len(out) == 0 {
		out = []string{model.RoleUser}
	}
	return out
}

// Create inserts a user with an admin-chosen role set.
func (h *UserHandler) Create(c echo.Context) error {
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.PhoneNumber == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone_number/password required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	u := &model.User{
		UID:         uuid.New(),
		FirstName:   strings.TrimSpace(req.FirstName),
		FamilyName:  strings.TrimSpace(req.FamilyName),
		PhoneNumber: req.PhoneNumber,
		Password:    hash,
		Roles:       normalizeRoles(req.Roles),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrPhoneExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, u)
}

// Get returns one user by UID.
func (h *UserHandler) Get(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, u)
}

// List returns a page of users.
func (h *UserHandler) List(c echo.Context) error {
	p := parsePageable(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, total, err := h.Users.List(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return pageJSON(c, users, total, p)
}

// Update rewrites a user.  An empty password keeps the stored hash.
func (h *UserHandler) Update(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.PhoneNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone_number required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	current, err := h.Users.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	hash := current.Password
	if req.Password != "" {
		if hash, err = utils.HashPassword(req.Password, h.Cfg.BcryptCost); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
		}
	}

	u := &model.User{
		UID:         uid,
		FirstName:   strings.TrimSpace(req.FirstName),
		FamilyName:  strings.TrimSpace(req.FamilyName),
		PhoneNumber: req.PhoneNumber,
		Password:    hash,
		Roles:       normalizeRoles(req.Roles),
	}
	if err := h.Users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrPhoneExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	return c.JSON(http.StatusOK, u)
}

// Delete removes a user that holds no reservations.
func (h *UserHandler) Delete(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.Delete(ctx, uid); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "user still holds reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
