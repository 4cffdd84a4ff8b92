package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kkorolev/shop-cart/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "cart_test.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Member{},
		&models.Item{},
		&models.ItemImage{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func TestFindCartDetails(t *testing.T) {
	db := newTestDB(t)
	r := &GormRepo{DB: db}
	ctx := context.Background()

	member := models.Member{Email: "user@shop.test", Name: "user"}
	require.NoError(t, db.Create(&member).Error)
	cart := models.Cart{MemberID: member.ID}
	require.NoError(t, db.Create(&cart).Error)

	apple := models.Item{Name: "apple", Price: 1.5}
	pear := models.Item{Name: "pear", Price: 2.0}
	require.NoError(t, db.Create(&apple).Error)
	require.NoError(t, db.Create(&pear).Error)

	// apple has two images, only one representative
	require.NoError(t, db.Create(&models.ItemImage{ItemID: apple.ID, ImgURL: "/img/apple_main.jpg", RepImg: true}).Error)
	require.NoError(t, db.Create(&models.ItemImage{ItemID: apple.ID, ImgURL: "/img/apple_side.jpg", RepImg: false}).Error)
	require.NoError(t, db.Create(&models.ItemImage{ItemID: pear.ID, ImgURL: "/img/pear_main.jpg", RepImg: true}).Error)

	now := time.Now().UTC()
	older := models.CartItem{CartID: cart.ID, ItemID: apple.ID, Quantity: 2, CreatedAt: now.Add(-time.Hour)}
	newer := models.CartItem{CartID: cart.ID, ItemID: pear.ID, Quantity: 1, CreatedAt: now}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	details, err := r.FindCartDetails(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)

	require.Equal(t, newer.ID, details[0].CartItemID)
	require.Equal(t, "pear", details[0].ItemName)
	require.Equal(t, 2.0, details[0].Price)
	require.Equal(t, uint(1), details[0].Quantity)
	require.Equal(t, "/img/pear_main.jpg", details[0].ImgURL)

	require.Equal(t, older.ID, details[1].CartItemID)
	require.Equal(t, "apple", details[1].ItemName)
	require.Equal(t, "/img/apple_main.jpg", details[1].ImgURL)
}

func TestFindCartDetailsEmptyCart(t *testing.T) {
	db := newTestDB(t)
	r := &GormRepo{DB: db}

	member := models.Member{Email: "empty@shop.test", Name: "empty"}
	require.NoError(t, db.Create(&member).Error)
	cart := models.Cart{MemberID: member.ID}
	require.NoError(t, db.Create(&cart).Error)

	details, err := r.FindCartDetails(context.Background(), cart.ID)
	require.NoError(t, err)
	require.Len(t, details, 0)
}

func TestSingleRowLookupsNotFound(t *testing.T) {
	db := newTestDB(t)
	r := &GormRepo{DB: db}
	ctx := context.Background()

	_, err := r.FindCartByMember(ctx, 42)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = r.FindCartItem(ctx, 1, 1)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = r.FindCartItemByID(ctx, 7)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = r.FindMemberByEmail(ctx, "ghost@shop.test")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
