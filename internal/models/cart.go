package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ImageURL     string          `json:"image_url,omitempty"`
	SelectedSize string          `json:"selected_size,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	WeightGrams  int             `json:"weight_grams,omitempty"`
}

// CartItemKey is the uniqueness key of a cart line: product plus selected size.
func CartItemKey(productID uuid.UUID, size string) string {
	return productID.String() + "|" + size
}

func (i CartItem) Key() string {
	return CartItemKey(i.ProductID, i.SelectedSize)
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (c *Cart) find(key string) int {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			return i
		}
	}

	return -1
}

// Add merges item into the cart; an existing (product, size) line has its quantity increased.
func (c *Cart) Add(item CartItem) CartItem {
	if idx := c.find(item.Key()); idx >= 0 {
		c.Items[idx].Quantity += item.Quantity
		c.Items[idx].UnitPrice = item.UnitPrice
		c.Recalculate()

		return c.Items[idx]
	}

	c.Items = append(c.Items, item)
	c.Recalculate()

	return item
}

// SetQuantity changes a line's quantity; zero or less removes it. Returns false if the line is absent.
func (c *Cart) SetQuantity(productID uuid.UUID, size string, quantity int) bool {
	idx := c.find(CartItemKey(productID, size))
	if idx < 0 {
		return false
	}

	if quantity <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	} else {
		c.Items[idx].Quantity = quantity
	}

	c.Recalculate()

	return true
}

func (c *Cart) Remove(productID uuid.UUID, size string) bool {
	return c.SetQuantity(productID, size, 0)
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Recalculate()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal is the sum of unit price times quantity over every line.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}

	return total
}

func (c *Cart) Recalculate() {
	c.Total = c.Subtotal()
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

// WeightGrams sums line weights, using fallback for products without a registered weight.
func (c *Cart) WeightGrams(fallback int) int {
	total := 0
	for _, item := range c.Items {
		w := item.WeightGrams
		if w <= 0 {
			w = fallback
		}
		total += w * item.Quantity
	}

	return total
}

type AddItemRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"required"`
	Quantity     int       `json:"quantity"   validate:"required,min=1,max=99"`
	SelectedSize string    `json:"selected_size,omitempty" validate:"omitempty,max=10"`
}

type UpdateQuantityRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"required"`
	SelectedSize string    `json:"selected_size,omitempty" validate:"omitempty,max=10"`
	Quantity     int       `json:"quantity"   validate:"min=0,max=99"`
}

type RemoveItemRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"required"`
	SelectedSize string    `json:"selected_size,omitempty"`
}
