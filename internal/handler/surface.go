package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
	"github.com/Ricaps/tennis-club-reservations-management/internal/repository"
)

// SurfaceHandler exposes CRUD endpoints for court surfaces.  The
// per-minute rate entered here is what the booking core later prices
// against.
type SurfaceHandler struct {
	Surfaces *repository.SurfaceRepo
}

func NewSurfaceHandler(surfaces *repository.SurfaceRepo) *SurfaceHandler {
	return &SurfaceHandler{Surfaces: surfaces}
}

type surfaceReq struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

func (req *surfaceReq) validate() (string, bool) {
	req.Name = strings.TrimSpace(req.Name)
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Name == "" {
		return "name required", false
	}
	if req.Price.IsNegative() {
		return "price must not be negative", false
	}
	if len(req.Currency) != 3 {
		return "currency must be a 3 letter ISO 4217 code", false
	}
	return "", true
}

// Create inserts a surface under a freshly assigned UID.
func (h *SurfaceHandler) Create(c echo.Context) error {
	var req surfaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	s := &model.Surface{
		UID:      uuid.New(),
		Name:     req.Name,
		Price:    req.Price.Round(model.MoneyScale),
		Currency: req.Currency,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Surfaces.Create(ctx, s); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "surface already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create surface failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// Get returns one surface by UID.
func (h *SurfaceHandler) Get(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Surfaces.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "surface not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// List returns a page of surfaces.
func (h *SurfaceHandler) List(c echo.Context) error {
	p := parsePageable(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	surfaces, total, err := h.Surfaces.List(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return pageJSON(c, surfaces, total, p)
}

// Update rewrites a surface.
func (h *SurfaceHandler) Update(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}
	var req surfaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	s := &model.Surface{
		UID:      uid,
		Name:     req.Name,
		Price:    req.Price.Round(model.MoneyScale),
		Currency: req.Currency,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Surfaces.Update(ctx, s); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "surface not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update surface failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// Delete removes a surface that no court references.
func (h *SurfaceHandler) Delete(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Surfaces.Delete(ctx, uid); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "surface not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "surface is still referenced by courts"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete surface failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
