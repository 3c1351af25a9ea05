package handler // HTTP handlers for the reservation API

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ricaps/tennis-club-reservations-management/internal/repository"
)

// dbTimeout bounds every database call issued from a handler.
const dbTimeout = 5 * time.Second

// actingUserUID extracts the authenticated user's UID from the echo
// context, where JWTAuth stored it as the token subject.
func actingUserUID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get("user_id").(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("no user_id in context")
	}
	return uuid.Parse(s)
}

// pathUID parses the named path parameter as a UUID.
func pathUID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Param(name)))
}

// parsePageable reads page/size/sort/order query parameters.  Page is
// zero based and size is clamped to [1, 100] with a default of 20; the
// sort field is validated against each repository's own whitelist, so
// anything goes through here.
func parsePageable(c echo.Context) repository.Pageable {
	p := repository.Pageable{Page: 0, Size: 20}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v >= 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil && v >= 1 && v <= 100 {
		p.Size = v
	}
	p.Sort = c.QueryParam("sort")
	p.Desc = strings.EqualFold(c.QueryParam("order"), "desc")
	return p
}

// pageJSON writes the uniform paginated response envelope.
func pageJSON[T any](c echo.Context, items []T, total int64, p repository.Pageable) error {
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"total": total,
		"page":  p.Page,
		"size":  p.Size,
	})
}
