package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kkorolev/shop-cart/internal/logging"
	"github.com/kkorolev/shop-cart/internal/service"
	"github.com/kkorolev/shop-cart/internal/transport"
)

type CartHTTP struct {
	Svc       *service.CartService
	Events    EventPublisher
	JWTSecret []byte
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	email, err := GetEmail(c, h.JWTSecret)
	if err != nil {
		l.Warn("get_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	details, err := h.Svc.GetCartList(ctx, email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_cart_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "member not found")
		}
		l.Error("get_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("cart listed", "lines", len(details))
	return c.JSON(http.StatusOK, details)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	email, err := GetEmail(c, h.JWTSecret)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	if req.ItemID == 0 || req.Quantity == 0 {
		l.Warn("add_to_cart_error", "status", 400)
		return c.JSON(http.StatusBadRequest, "item_id and quantity>0 required")
	}

	cartItemID, err := h.Svc.AddToCart(ctx, req.ItemID, req.Quantity, email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("add_to_cart_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "item not found")
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "add_to_cart", map[string]any{
		"email":        email,
		"item_id":      req.ItemID,
		"quantity":     req.Quantity,
		"cart_item_id": cartItemID,
	})

	l.Info("item added to cart", "cart_item_id", cartItemID)
	return c.JSON(http.StatusCreated, map[string]any{"cart_item_id": cartItemID})
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	email, err := GetEmail(c, h.JWTSecret)
	if err != nil {
		l.Warn("update_quantity_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("update_quantity_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid id")
	}
	cartItemID := uint(id)

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	ok, err := h.Svc.ValidateCartItem(ctx, cartItemID, email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_quantity_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "cart item not found")
		}
		l.Error("update_quantity_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	if !ok {
		l.Warn("update_quantity_error", "status", 403, "cart_item_id", cartItemID)
		return c.JSON(http.StatusForbidden, "not your cart item")
	}

	if err := h.Svc.UpdateItemQuantity(ctx, cartItemID, req.Quantity); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_quantity_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "cart item not found")
		}
		l.Error("update_quantity_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "cart_item_updated", map[string]any{
		"email":        email,
		"cart_item_id": cartItemID,
		"quantity":     req.Quantity,
	})

	l.Info("cart item updated", "cart_item_id", cartItemID, "quantity", req.Quantity)
	return c.JSON(http.StatusOK, map[string]any{
		"cart_item_id": cartItemID,
		"quantity":     req.Quantity,
	})
}

func (h *CartHTTP) DeleteCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete_item")

	email, err := GetEmail(c, h.JWTSecret)
	if err != nil {
		l.Warn("delete_cart_item_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("delete_cart_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid id")
	}
	cartItemID := uint(id)

	ok, err := h.Svc.ValidateCartItem(ctx, cartItemID, email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_cart_item_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "cart item not found")
		}
		l.Error("delete_cart_item_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	if !ok {
		l.Warn("delete_cart_item_error", "status", 403, "cart_item_id", cartItemID)
		return c.JSON(http.StatusForbidden, "not your cart item")
	}

	if err := h.Svc.DeleteCartItem(ctx, cartItemID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_cart_item_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "cart item not found")
		}
		l.Error("delete_cart_item_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "cart_item_deleted", map[string]any{
		"email":        email,
		"cart_item_id": cartItemID,
	})

	l.Info("cart item deleted", "cart_item_id", cartItemID)
	return c.JSON(http.StatusOK, map[string]any{"deleted_item": cartItemID})
}

func (h *CartHTTP) OrderCartItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.order")

	email, err := GetEmail(c, h.JWTSecret)
	if err != nil {
		l.Warn("order_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.OrderCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("order_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	if len(req.Orders) == 0 {
		l.Warn("order_cart_error", "status", 400, "reason", "no items selected")
		return c.JSON(http.StatusBadRequest, "select at least one cart item")
	}

	for _, o := range req.Orders {
		ok, err := h.Svc.ValidateCartItem(ctx, o.CartItemID, email)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				l.Warn("order_cart_error", "status", 404, "error", err)
				return c.JSON(http.StatusNotFound, "cart item not found")
			}
			l.Error("order_cart_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
		if !ok {
			l.Warn("order_cart_error", "status", 403, "cart_item_id", o.CartItemID)
			return c.JSON(http.StatusForbidden, "not your cart item")
		}
	}

	orderID, err := h.Svc.OrderCartItems(ctx, req.Orders, email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("order_cart_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "cart item not found")
		}
		l.Error("order_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "cart_ordered", map[string]any{
		"email":    email,
		"order_id": orderID,
		"lines":    len(req.Orders),
	})

	l.Info("cart ordered", "order_id", orderID, "lines", len(req.Orders))
	return c.JSON(http.StatusCreated, map[string]any{"order_id": orderID})
}
