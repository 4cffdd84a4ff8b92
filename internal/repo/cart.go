package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kkorolev/shop-cart/internal/models"
	"github.com/kkorolev/shop-cart/internal/transport"
)

type GormRepo struct {
	DB *gorm.DB
}

// Transaction runs fn against a repo bound to a single database
// transaction; any error from fn rolls the whole call back.
func (r *GormRepo) Transaction(ctx context.Context, fn func(r *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func (r *GormRepo) FindCartByMember(ctx context.Context, memberID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("member_id = ?", memberID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) FindCartByID(ctx context.Context, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).First(&cart, cartID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) SaveCart(ctx context.Context, cart *models.Cart) error {
	return r.DB.WithContext(ctx).Create(cart).Error
}

func (r *GormRepo) FindCartItem(ctx context.Context, cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).Where("cart_id = ? AND item_id = ?", cartID, itemID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) FindCartItemByID(ctx context.Context, cartItemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).First(&item, cartItemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveCartItem inserts a new line or persists a mutated one.
func (r *GormRepo) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Delete(item).Error
}

// FindCartDetails builds the cart page projection in one query: cart lines
// joined with their item and the representative image, newest lines first.
func (r *GormRepo) FindCartDetails(ctx context.Context, cartID uint) ([]transport.CartDetail, error) {
	details := make([]transport.CartDetail, 0)
	err := r.DB.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id AS cart_item_id, items.name AS item_name, items.price AS price, cart_items.quantity AS quantity, item_images.img_url AS img_url").
		Joins("JOIN items ON items.id = cart_items.item_id").
		Joins("JOIN item_images ON item_images.item_id = cart_items.item_id AND item_images.rep_img = ?", true).
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.created_at DESC, cart_items.id DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *GormRepo) FindItemByID(ctx context.Context, itemID uint) (*models.Item, error) {
	var item models.Item
	if err := r.DB.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) FindMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *GormRepo) FindMemberByID(ctx context.Context, memberID uint) (*models.Member, error) {
	var member models.Member
	if err := r.DB.WithContext(ctx).First(&member, memberID).Error; err != nil {
		return nil, err
	}
	return &member, nil
}
