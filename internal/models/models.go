package models

import (
	"time"
)

type Member struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email string `gorm:"uniqueIndex;not null"     json:"email"`
	Name  string `gorm:"not null"                 json:"name"`
}

type Item struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
}

// ItemImage holds one catalog image per row; RepImg marks the image
// shown on the cart page.
type ItemImage struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID uint   `gorm:"index;not null"           json:"item_id"`
	ImgURL string `gorm:"not null"                 json:"img_url"`
	RepImg bool   `gorm:"not null;default:false"   json:"rep_img"`
}

// Cart is created lazily on the first add for a member, never otherwise.
// The unique index keeps it at one cart per member.
type Cart struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID  uint      `gorm:"uniqueIndex;not null"     json:"member_id"`
	CreatedAt time.Time `gorm:"autoCreateTime"           json:"created_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"           json:"id"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_item;not null" json:"cart_id"`
	ItemID    uint      `gorm:"uniqueIndex:idx_cart_item;not null" json:"item_id"`
	Quantity  uint      `gorm:"not null;default:1"                 json:"quantity"`
	CreatedAt time.Time `gorm:"index;autoCreateTime"               json:"created_at"`
}

func CreateCart(member *Member) *Cart {
	return &Cart{MemberID: member.ID}
}

func CreateCartItem(cart *Cart, item *Item, quantity uint) *CartItem {
	return &CartItem{
		CartID:   cart.ID,
		ItemID:   item.ID,
		Quantity: quantity,
	}
}

// AddQuantity merges a repeated add into the existing line.
func (ci *CartItem) AddQuantity(quantity uint) {
	ci.Quantity += quantity
}

// UpdateQuantity overwrites the stored quantity, no clamping.
func (ci *CartItem) UpdateQuantity(quantity uint) {
	ci.Quantity = quantity
}
