package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

const (
	defaultFrom = 0
	defaultSize = 10
)

func (h *Handler) CreateRequest(c echo.Context) error {
	requesterID, err := userID(c)
	if err != nil {
		return err
	}
	var req model.CreateItemRequestRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	created, err := h.requestSvc.CreateRequest(c.Request().Context(), requesterID, req)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) ListOwnRequests(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	views, err := h.requestSvc.ListOwnRequests(c.Request().Context(), uid)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) ListAllRequests(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	from, err := queryInt(c, "from", defaultFrom)
	if err != nil {
		return err
	}
	size, err := queryInt(c, "size", defaultSize)
	if err != nil {
		return err
	}
	views, err := h.requestSvc.ListAllRequestsExcludingOwn(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) GetRequest(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return err
	}
	view, err := h.requestSvc.GetRequest(c.Request().Context(), uid, requestID)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, view)
}
