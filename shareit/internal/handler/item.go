package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

func (h *Handler) CreateItem(c echo.Context) error {
	ownerID, err := userID(c)
	if err != nil {
		return err
	}
	var req model.CreateItemRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	item, err := h.itemSvc.CreateItem(c.Request().Context(), ownerID, req)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateItem(c echo.Context) error {
	ownerID, err := userID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var req model.UpdateItemRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	item, err := h.itemSvc.UpdateItem(c.Request().Context(), ownerID, itemID, req)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) GetItem(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	item, err := h.itemSvc.GetItem(c.Request().Context(), uid, itemID)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) ListOwnerItems(c echo.Context) error {
	ownerID, err := userID(c)
	if err != nil {
		return err
	}
	items, err := h.itemSvc.ListOwnerItems(c.Request().Context(), ownerID)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) SearchItems(c echo.Context) error {
	items, err := h.itemSvc.SearchItems(c.Request().Context(), c.QueryParam("text"))
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) AddComment(c echo.Context) error {
	authorID, err := userID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var req model.CreateCommentRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	comment, err := h.itemSvc.AddComment(c.Request().Context(), authorID, itemID, req)
	if err != nil {
		return h.errorResponse(err)
	}
	return c.JSON(http.StatusOK, comment)
}
