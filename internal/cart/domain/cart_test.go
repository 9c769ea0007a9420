package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	catalog "github.com/wyfcoding/ecommerce/internal/catalog/domain"
)

func testProduct(id, name, price string) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Image: "/static/products/" + id + ".jpg",
	}
}

func TestAddItemMergesDuplicates(t *testing.T) {
	cart := NewCart("user-1")
	product := testProduct("1", "Elegant Gold Bracelet", "89.99")

	cart.AddItem(product)
	cart.AddItem(product)
	cart.AddItem(product)

	assert.Equal(t, 1, cart.ItemCount())
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.TotalQuantity())
}

func TestAddItemCopiesSnapshot(t *testing.T) {
	cart := NewCart("user-1")
	product := testProduct("1", "Elegant Gold Bracelet", "89.99")

	cart.AddItem(product)

	item := cart.Items[0]
	assert.Equal(t, "1", item.ProductID)
	assert.Equal(t, "Elegant Gold Bracelet", item.Name)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("89.99")))
	assert.Equal(t, 1, item.Quantity)
}

func TestUpdateQuantityZeroRemovesItem(t *testing.T) {
	cart := NewCart("user-1")
	cart.AddItem(testProduct("1", "A", "10.00"))
	cart.AddItem(testProduct("2", "B", "20.00"))

	cart.UpdateQuantity("1", 0)

	assert.Equal(t, 1, cart.ItemCount())
	assert.Equal(t, "2", cart.Items[0].ProductID)

	cart.UpdateQuantity("2", -3)
	assert.True(t, cart.IsEmpty())
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	cart := NewCart("user-1")
	cart.AddItem(testProduct("1", "A", "10.00"))

	cart.UpdateQuantity("1", 7)

	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateQuantityUnknownProductIsNoop(t *testing.T) {
	cart := NewCart("user-1")
	cart.AddItem(testProduct("1", "A", "10.00"))

	cart.UpdateQuantity("missing", 5)

	assert.Equal(t, 1, cart.ItemCount())
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestRemoveItemUnknownProductIsNoop(t *testing.T) {
	cart := NewCart("user-1")
	cart.AddItem(testProduct("1", "A", "10.00"))

	cart.RemoveItem("missing")

	assert.Equal(t, 1, cart.ItemCount())
}

func TestClearEmptiesCart(t *testing.T) {
	cart := NewCart("user-1")
	cart.AddItem(testProduct("1", "A", "10.00"))
	cart.AddItem(testProduct("2", "B", "20.00"))

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.TotalQuantity())
}

func TestSubtotalSumsPriceTimesQuantity(t *testing.T) {
	cart := NewCart("user-1")
	cart.AddItem(testProduct("1", "A", "10.50"))
	cart.AddItem(testProduct("1", "A", "10.50"))
	cart.AddItem(testProduct("2", "B", "5.25"))

	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("26.25")))
}
