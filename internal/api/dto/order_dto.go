package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/spec-kit/food-order-service/internal/domain"
)

// ErrInvalidOrderData marks an orderData value that is neither an object nor a JSON string.
var ErrInvalidOrderData = errors.New("invalid orderData")

// ErrQuantityOutOfRange rejects quantities that do not fit in an int32.
var ErrQuantityOutOfRange = errors.New("quantity out of range")

// FlexFloat accepts a JSON number or a numeric string.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	v, err := flexNumber(data)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt accepts a JSON number or a numeric string and truncates fractions.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	v, err := flexNumber(data)
	if err != nil {
		return err
	}
	q := toQuantity(v)
	if q == 0 && math.Trunc(v) != 0 {
		return ErrQuantityOutOfRange
	}
	*i = FlexInt(q)
	return nil
}

// toQuantity truncates v and maps values outside the int32 range to 0, which
// callers treat as invalid.
func toQuantity(v float64) int {
	t := math.Trunc(v)
	if t > math.MaxInt32 || t < math.MinInt32 {
		return 0
	}
	return int(t)
}

func flexNumber(data []byte) (float64, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		return parseNumber(s), nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// parseNumber returns 0 for anything that is not a number.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CartItemPayload is the item object carried in orderData.
type CartItemPayload struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Price FlexFloat `json:"price"`
	Image string    `json:"image"`
	Type  string    `json:"type"`
}

// Snapshot converts the payload into the stored item shape.
func (p CartItemPayload) Snapshot() domain.ItemSnapshot {
	return domain.ItemSnapshot{
		Title: strings.TrimSpace(p.Title),
		Price: float64(p.Price),
		Image: strings.TrimSpace(p.Image),
		Type:  strings.TrimSpace(p.Type),
	}
}

// AddToCartRequest is the JSON body for adding one item to the cart.
type AddToCartRequest struct {
	OrderData json.RawMessage `json:"orderData"`
	Quantity  json.RawMessage `json:"quantity"`
}

// CartAddition is a decoded add-to-cart submission. A Quantity of zero means
// the submitted value was missing or not a number.
type CartAddition struct {
	MenuItemID string
	Item       domain.ItemSnapshot
	Quantity   int
}

// Decode resolves orderData, which may be an object or a JSON-encoded string.
func (r AddToCartRequest) Decode() (CartAddition, error) {
	item, err := decodeOrderData(r.OrderData)
	if err != nil {
		return CartAddition{}, err
	}
	var qty FlexInt
	if err := qty.UnmarshalJSON(r.Quantity); err != nil {
		qty = 0
	}
	return CartAddition{MenuItemID: strings.TrimSpace(item.ID), Item: item.Snapshot(), Quantity: int(qty)}, nil
}

func decodeOrderData(raw json.RawMessage) (CartItemPayload, error) {
	var item CartItemPayload
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return item, ErrInvalidOrderData
	}
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return item, ErrInvalidOrderData
		}
		raw = []byte(encoded)
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, ErrInvalidOrderData
	}
	return item, nil
}

// CartFormFields is the multipart rendition of an add-to-cart submission.
type CartFormFields struct {
	OrderData string
	ID        string
	Title     string
	Price     string
	Image     string
	Type      string
	Quantity  string
	// ImageFile is the filename of an uploaded image part, if any.
	ImageFile string
}

// Decode prefers an orderData field and falls back to the flat fields.
func (f CartFormFields) Decode() (CartAddition, error) {
	qty := toQuantity(parseNumber(f.Quantity))
	if strings.TrimSpace(f.OrderData) != "" {
		item, err := decodeOrderData(json.RawMessage(f.OrderData))
		if err != nil {
			return CartAddition{}, err
		}
		snap := item.Snapshot()
		if snap.Image == "" {
			snap.Image = f.ImageFile
		}
		return CartAddition{MenuItemID: strings.TrimSpace(item.ID), Item: snap, Quantity: qty}, nil
	}

	image := strings.TrimSpace(f.Image)
	if image == "" {
		image = f.ImageFile
	}
	return CartAddition{
		MenuItemID: strings.TrimSpace(f.ID),
		Item: domain.ItemSnapshot{
			Title: strings.TrimSpace(f.Title),
			Price: parseNumber(f.Price),
			Image: image,
			Type:  strings.TrimSpace(f.Type),
		},
		Quantity: qty,
	}, nil
}

// OrderItemPayload is one entry of a placed order.
type OrderItemPayload struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Price    FlexFloat `json:"price"`
	Image    string    `json:"image"`
	Type     string    `json:"type"`
	Quantity FlexInt   `json:"quantity"`
}

// PlaceOrderRequest is the body for placing an order.
type PlaceOrderRequest struct {
	Items []OrderItemPayload `json:"items"`
}

// OrderItem converts the payload into the stored item shape.
func (p OrderItemPayload) OrderItem() domain.OrderItem {
	return domain.OrderItem{
		Title:    strings.TrimSpace(p.Title),
		Price:    float64(p.Price),
		Image:    strings.TrimSpace(p.Image),
		Type:     strings.TrimSpace(p.Type),
		Quantity: int(p.Quantity),
	}
}
