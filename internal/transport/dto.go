package transport

// CartDetail is the read-only projection for the cart page: one row per
// cart line joined with its item and the representative image.
type CartDetail struct {
	CartItemID uint    `json:"cart_item_id"`
	ItemName   string  `json:"item_name"`
	Price      float64 `json:"price"`
	Quantity   uint    `json:"quantity"`
	ImgURL     string  `json:"img_url"`
}

// CartOrder selects one cart line for checkout.
type CartOrder struct {
	CartItemID uint `json:"cart_item_id"`
}

// OrderLine is what the order subsystem receives; never persisted here.
type OrderLine struct {
	ItemID   uint `json:"item_id"`
	Quantity uint `json:"quantity"`
}

type AddToCartRequest struct {
	ItemID   uint `json:"item_id"`
	Quantity uint `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity uint `json:"quantity"`
}

type OrderCartRequest struct {
	Orders []CartOrder `json:"orders"`
}
