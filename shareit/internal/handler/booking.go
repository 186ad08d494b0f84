package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

func (h *Handler) CreateBooking(c echo.Context) error {
	bookerID, err := userID(c)
	if err != nil {
		return err
	}
	var req model.CreateBookingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	booking, err := h.bookingSvc.Create(c.Request().Context(), bookerID, req)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *Handler) ApproveBooking(c echo.Context) error {
	ownerID, err := userID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return err
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "approved is invalid")
	}
	desired := model.StatusRejected
	if approved {
		desired = model.StatusApproved
	}
	return h.changeStatus(c, bookingID, ownerID, desired)
}

func (h *Handler) CancelBooking(c echo.Context) error {
	bookerID, err := userID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return err
	}
	return h.changeStatus(c, bookingID, bookerID, model.StatusCanceled)
}

func (h *Handler) changeStatus(c echo.Context, bookingID, actorID int64, desired model.Status) error {
	booking, err := h.bookingSvc.ChangeStatus(c.Request().Context(), bookingID, actorID, desired)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) GetBooking(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return err
	}
	booking, err := h.bookingSvc.Get(c.Request().Context(), bookingID, uid)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) ListBookerBookings(c echo.Context) error {
	return h.listBookings(c, model.RoleBooker)
}

func (h *Handler) ListOwnerBookings(c echo.Context) error {
	return h.listBookings(c, model.RoleOwner)
}

func (h *Handler) listBookings(c echo.Context, role model.Role) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	bookings, err := h.bookingSvc.ListForUser(c.Request().Context(), uid, c.QueryParam("state"), role)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, bookings)
}
