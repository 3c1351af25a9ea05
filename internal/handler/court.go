package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
	"github.com/Ricaps/tennis-club-reservations-management/internal/repository"
)

// CourtHandler exposes CRUD endpoints for courts.  Every court must
// point at an existing surface; reads join the surface in.
type CourtHandler struct {
	Courts   *repository.CourtRepo
	Surfaces *repository.SurfaceRepo
}

func NewCourtHandler(courts *repository.CourtRepo, surfaces *repository.SurfaceRepo) *CourtHandler {
	return &CourtHandler{Courts: courts, Surfaces: surfaces}
}

type courtReq struct {
	Name       string `json:"name"`
	SurfaceUID string `json:"surface_uid"`
}

func (req *courtReq) validate() (uuid.UUID, string, bool) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return uuid.Nil, "name required", false
	}
	surfaceUID, err := uuid.Parse(strings.TrimSpace(req.SurfaceUID))
	if err != nil {
		return uuid.Nil, "invalid surface_uid", false
	}
	return surfaceUID, "", true
}

// Create inserts a court under a freshly assigned UID.
func (h *CourtHandler) Create(c echo.Context) error {
	var req courtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	surfaceUID, msg, ok := req.validate()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	surface, err := h.Surfaces.GetByUID(ctx, surfaceUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "surface not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	court := &model.Court{UID: uuid.New(), Name: req.Name, Surface: surface}
	if err := h.Courts.Create(ctx, court); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "court already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create court failed"})
	}
	return c.JSON(http.StatusCreated, court)
}

// Get returns one court with its surface joined.
func (h *CourtHandler) Get(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	court, err := h.Courts.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, court)
}

// List returns a page of courts.
func (h *CourtHandler) List(c echo.Context) error {
	p := parsePageable(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	courts, total, err := h.Courts.List(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return pageJSON(c, courts, total, p)
}

// Update rewrites a court, including its surface reference.
func (h *CourtHandler) Update(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}
	var req courtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	surfaceUID, msg, ok := req.validate()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	surface, err := h.Surfaces.GetByUID(ctx, surfaceUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "surface not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	court := &model.Court{UID: uid, Name: req.Name, Surface: surface}
	if err := h.Courts.Update(ctx, court); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update court failed"})
	}
	return c.JSON(http.StatusOK, court)
}

// Delete removes a court that no reservation references.
func (h *CourtHandler) Delete(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Courts.Delete(ctx, uid); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "court is still referenced by reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete court failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
