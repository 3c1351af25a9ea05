package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ricaps/tennis-club-reservations-management/internal/config"
	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
	"github.com/Ricaps/tennis-club-reservations-management/internal/repository"
	"github.com/Ricaps/tennis-club-reservations-management/internal/utils"
)

// loginFailedMsg is returned for every failed login attempt, whether
// the phone number is unknown or the password wrong, so the two cases
// cannot be told apart.
const loginFailedMsg = "This combination of user and password doesn't exist!"

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	FirstName   string `json:"first_name"`
	FamilyName  string `json:"family_name"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}
type loginReq struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	User   *model.User `json:"user"`
	Access tokenPart   `json:"access"`
}

// Register creates a user with the USER role and returns an access
// token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.FamilyName = strings.TrimSpace(req.FamilyName)
	if req.PhoneNumber == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone_number/password required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	u := &model.User{
		UID:         uuid.New(),
		FirstName:   req.FirstName,
		FamilyName:  req.FamilyName,
		PhoneNumber: req.PhoneNumber,
		Password:    hash,
		Roles:       []string{model.RoleUser},
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrPhoneExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.UID, u.Roles, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		User:   u,
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Login verifies phone number and password and returns a fresh access
// token.  Credentials are read from the JSON body, or from an HTTP
// Basic Authorization header with the phone number as the username.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	_ = c.Bind(&req)
	if req.PhoneNumber == "" || req.Password == "" {
		if phone, pass, ok := c.Request().BasicAuth(); ok {
			req.PhoneNumber, req.Password = phone, pass
		}
	}
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.PhoneNumber == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone_number/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByPhoneNumber(ctx, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": loginFailedMsg})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": loginFailedMsg})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.UID, u.Roles, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		User:   u,
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Me is a simple protected endpoint echoing the token identity.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"roles":   c.Get("roles"),
	})
}
