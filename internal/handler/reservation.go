package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ricaps/tennis-club-reservations-management/internal/booking"
	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
	"github.com/Ricaps/tennis-club-reservations-management/internal/queue"
	"github.com/Ricaps/tennis-club-reservations-management/internal/repository"
	queue_publisher "github.com/Ricaps/tennis-club-reservations-management/internal/service"
)

// ReservationHandler exposes the booking endpoints.  Create and Update
// go through the booking service, which validates the candidate, runs
// the overlap check under the court lock, prices the interval and
// persists; everything else is plain reads against the repository.
type ReservationHandler struct {
	Booking      *booking.Service
	Courts       *repository.CourtRepo
	Users        *repository.UserRepo
	Reservations *repository.ReservationRepo
}

func NewReservationHandler(svc *booking.Service, courts *repository.CourtRepo, users *repository.UserRepo, reservations *repository.ReservationRepo) *ReservationHandler {
	return &ReservationHandler{Booking: svc, Courts: courts, Users: users, Reservations: reservations}
}

type reservationReq struct {
	CourtUID   string `json:"court_uid"`
	FromTime   string `json:"from_time"` // RFC 3339
	ToTime     string `json:"to_time"`   // RFC 3339
	IsQuadGame bool   `json:"is_quad_game"`
}

func (req *reservationReq) parse() (courtUID uuid.UUID, from, to time.Time, msg string, ok bool) {
	courtUID, err := uuid.Parse(strings.TrimSpace(req.CourtUID))
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, "invalid court_uid", false
	}
	from, err = time.Parse(time.RFC3339, req.FromTime)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, "invalid from_time, want RFC 3339", false
	}
	to, err = time.Parse(time.RFC3339, req.ToTime)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, "invalid to_time, want RFC 3339", false
	}
	return courtUID, from.UTC(), to.UTC(), "", true
}

// bookingErrorJSON translates the booking sentinels into HTTP responses.
func bookingErrorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrMissingReservation),
		errors.Is(err, booking.ErrMissingUID),
		errors.Is(err, booking.ErrMissingCourt),
		errors.Is(err, booking.ErrInvalidTimeRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrTimeConflict), errors.Is(err, booking.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
}

// Create books a new reservation for the authenticated user.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	courtUID, from, to, msg, ok := req.parse()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	actingUID, err := actingUserUID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	court, err := h.Courts.GetByUID(ctx, courtUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	user, err := h.Users.GetByUID(ctx, actingUID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	candidate := &model.Reservation{
		UID:        uuid.New(),
		Court:      court,
		User:       user,
		FromTime:   from,
		ToTime:     to,
		CreatedAt:  time.Now().UTC(),
		IsQuadGame: req.IsQuadGame,
	}

	saved, err := h.Booking.Create(ctx, candidate)
	if err != nil {
		return bookingErrorJSON(c, err)
	}

	go publishCreated(saved)

	return c.JSON(http.StatusCreated, saved)
}

// Update re-books an existing reservation.  Only the reservation's
// holder or an admin may change it.
func (h *ReservationHandler) Update(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	courtUID, from, to, msg, ok := req.parse()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	actingUID, err := actingUserUID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	existing, err := h.Reservations.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if existing.User.UID != actingUID && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	court, err := h.Courts.GetByUID(ctx, courtUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	candidate := &model.Reservation{
		UID:        uid,
		Court:      court,
		User:       existing.User,
		FromTime:   from,
		ToTime:     to,
		CreatedAt:  existing.CreatedAt,
		IsQuadGame: req.IsQuadGame,
	}

	saved, err := h.Booking.Update(ctx, candidate)
	if err != nil {
		return bookingErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Get returns one reservation with court, surface and user joined.
func (h *ReservationHandler) Get(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Reservations.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, res)
}

// List returns a page over all reservations.
func (h *ReservationHandler) List(c echo.Context) error {
	p := parsePageable(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	reservations, total, err := h.Reservations.List(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return pageJSON(c, reservations, total, p)
}

// ListByCourt returns the reservations at one court, paged.
func (h *ReservationHandler) ListByCourt(c echo.Context) error {
	courtUID, err := pathUID(c, "courtUid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court uid"})
	}
	p := parsePageable(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	reservations, total, err := h.Reservations.ListByCourt(ctx, courtUID, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return pageJSON(c, reservations, total, p)
}

// ListByPhoneNumber returns the reservations held by a user, filtered
// to those starting strictly after the fromTime query parameter (now
// when absent), so by default only upcoming bookings show.
func (h *ReservationHandler) ListByPhoneNumber(c echo.Context) error {
	phone := strings.TrimSpace(c.Param("phoneNumber"))
	if phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone number required"})
	}
	after := time.Now().UTC()
	if raw := c.QueryParam("fromTime"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fromTime, want RFC 3339"})
		}
		after = t.UTC()
	}
	p := parsePageable(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	reservations, total, err := h.Reservations.ListByPhoneNumber(ctx, phone, after, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return pageJSON(c, reservations, total, p)
}

// Delete cancels a reservation.  Only its holder or an admin may do so.
func (h *ReservationHandler) Delete(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uid"})
	}
	actingUID, err := actingUserUID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	existing, err := h.Reservations.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if existing.User.UID != actingUID && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Reservations.Delete(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete reservation failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// isAdmin reports whether the JWT roles claim in context carries ADMIN.
func isAdmin(c echo.Context) bool {
	roles, _ := c.Get("roles").([]string)
	for _, r := range roles {
		if r == model.RoleAdmin {
			return true
		}
	}
	return false
}

// publishCreated sends the reservation.created event best-effort; a
// broker outage never fails the booking that already committed.
func publishCreated(r *model.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.ReservationCreatedEvent{
		ReservationUID: r.UID.String(),
		UserUID:        r.User.UID.String(),
		UserPhone:      r.User.PhoneNumber,
		CourtUID:       r.Court.UID.String(),
		CourtName:      r.Court.Name,
		SurfaceName:    r.Court.Surface.Name,
		FromTime:       r.FromTime.Format(time.RFC3339),
		ToTime:         r.ToTime.Format(time.RFC3339),
		QuadGame:       r.IsQuadGame,
		TotalPrice:     r.TotalPrice.Amount.StringFixed(model.MoneyScale),
		Currency:       r.TotalPrice.Currency,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
	if err := queue_publisher.PublishReservationCreated(ctx, ev); err != nil {
		log.Printf("reservation: publish created event failed: %v", err)
	}
}
