package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kkorolev/shop-cart/internal/models"
	"github.com/kkorolev/shop-cart/internal/repo"
	"github.com/kkorolev/shop-cart/internal/transport"
)

var ErrNotFound = errors.New("not found")

// OrderPlacer is the external order subsystem: it turns the selected cart
// lines into a persisted order and returns its id.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, lines []transport.OrderLine, email string) (uint, error)
}

type CartService struct {
	Repo   *repo.GormRepo
	Orders OrderPlacer
}

// AddToCart resolves the item and the member's cart, creating the cart on
// first use, then either merges the quantity into the existing line for the
// same item or inserts a new one. Returns the cart line id either way.
// The whole call is one transaction, so a failed merge or insert also rolls
// back a lazily created cart.
func (s *CartService) AddToCart(ctx context.Context, itemID, quantity uint, email string) (uint, error) {
	var cartItemID uint

	txErr := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		item, err := r.FindItemByID(ctx, itemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("item %d: %w", itemID, ErrNotFound)
		}
		if err != nil {
			return err
		}

		member, err := r.FindMemberByEmail(ctx, email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("member %s: %w", email, ErrNotFound)
		}
		if err != nil {
			return err
		}

		cart, err := r.FindCartByMember(ctx, member.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = models.CreateCart(member)
			if err := r.SaveCart(ctx, cart); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		line, err := r.FindCartItem(ctx, cart.ID, item.ID)
		if err == nil {
			line.AddQuantity(quantity)
			if err := r.SaveCartItem(ctx, line); err != nil {
				return err
			}
			cartItemID = line.ID
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		line = models.CreateCartItem(cart, item, quantity)
		if err := r.SaveCartItem(ctx, line); err != nil {
			return err
		}
		cartItemID = line.ID
		return nil
	})
	if txErr != nil {
		return 0, txErr
	}

	return cartItemID, nil
}

// GetCartList returns the display projection for the member's cart, newest
// first. A member who never added anything gets an empty slice, not an error.
func (s *CartService) GetCartList(ctx context.Context, email string) ([]transport.CartDetail, error) {
	member, err := s.Repo.FindMemberByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("member %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	cart, err := s.Repo.FindCartByMember(ctx, member.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []transport.CartDetail{}, nil
	}
	if err != nil {
		return nil, err
	}

	return s.Repo.FindCartDetails(ctx, cart.ID)
}

// ValidateCartItem reports whether the cart line belongs to the member with
// the given email. Runs before any mutation reachable from a client-supplied
// cart line id, since that id can be tampered with.
func (s *CartService) ValidateCartItem(ctx context.Context, cartItemID uint, email string) (bool, error) {
	member, err := s.Repo.FindMemberByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("member %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return false, err
	}

	line, err := s.Repo.FindCartItemByID(ctx, cartItemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("cart item %d: %w", cartItemID, ErrNotFound)
	}
	if err != nil {
		return false, err
	}

	cart, err := s.Repo.FindCartByID(ctx, line.CartID)
	if err != nil {
		return false, err
	}
	owner, err := s.Repo.FindMemberByID(ctx, cart.MemberID)
	if err != nil {
		return false, err
	}

	return owner.Email == member.Email, nil
}

// UpdateItemQuantity overwrites the line's quantity exactly as submitted.
func (s *CartService) UpdateItemQuantity(ctx context.Context, cartItemID, quantity uint) error {
	return s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		line, err := r.FindCartItemByID(ctx, cartItemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cart item %d: %w", cartItemID, ErrNotFound)
		}
		if err != nil {
			return err
		}

		line.UpdateQuantity(quantity)
		return r.SaveCartItem(ctx, line)
	})
}

func (s *CartService) DeleteCartItem(ctx context.Context, cartItemID uint) error {
	return s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		line, err := r.FindCartItemByID(ctx, cartItemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cart item %d: %w", cartItemID, ErrNotFound)
		}
		if err != nil {
			return err
		}
		return r.DeleteCartItem(ctx, line)
	})
}

// OrderCartItems hands the selected lines to the order subsystem and then
// removes them from the cart. The deletion is a separate pass after the
// order call, atomic on its own: if it fails, every line stays in the cart.
// The order call itself runs outside any transaction, so there is still no
// compensating action once it has succeeded.
func (s *CartService) OrderCartItems(ctx context.Context, orders []transport.CartOrder, email string) (uint, error) {
	lines := make([]transport.OrderLine, 0, len(orders))
	for _, o := range orders {
		line, err := s.Repo.FindCartItemByID(ctx, o.CartItemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("cart item %d: %w", o.CartItemID, ErrNotFound)
		}
		if err != nil {
			return 0, err
		}
		lines = append(lines, transport.OrderLine{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	orderID, err := s.Orders.PlaceOrder(ctx, lines, email)
	if err != nil {
		return 0, err
	}

	txErr := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		for _, o := range orders {
			line, err := r.FindCartItemByID(ctx, o.CartItemID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("cart item %d: %w", o.CartItemID, ErrNotFound)
			}
			if err != nil {
				return err
			}
			if err := r.DeleteCartItem(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return 0, txErr
	}

	return orderID, nil
}
