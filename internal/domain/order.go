package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultItemStatus is stamped on snapshots that arrive without a status.
const DefaultItemStatus = "success"

// OrderStrategy names how placed items are persisted.
type OrderStrategy string

const (
	// OrderStrategyEmbedded appends lines to the cart array inside the user document.
	OrderStrategyEmbedded OrderStrategy = "embedded"
	// OrderStrategyReferenced stores each order as its own document referenced from the user.
	OrderStrategyReferenced OrderStrategy = "referenced"
)

// PriceSource names where item display fields and price come from.
type PriceSource string

const (
	PriceSourceClient  PriceSource = "client"
	PriceSourceCatalog PriceSource = "catalog"
)

// ItemSnapshot is a point-in-time copy of a menu item's display fields.
type ItemSnapshot struct {
	Title  string  `bson:"title" json:"title"`
	Price  float64 `bson:"price" json:"price"`
	Image  string  `bson:"image" json:"image"`
	Type   string  `bson:"type" json:"type"`
	Status string  `bson:"status" json:"status"`
}

// CartLine is one embedded cart entry.
type CartLine struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Item      ItemSnapshot       `bson:"item" json:"item"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// OrderItem is a snapshot with its quantity inside a referenced order.
type OrderItem struct {
	Title    string  `bson:"title" json:"title"`
	Price    float64 `bson:"price" json:"price"`
	Image    string  `bson:"image" json:"image"`
	Type     string  `bson:"type" json:"type"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// Snapshot returns the display fields of the item.
func (i OrderItem) Snapshot() ItemSnapshot {
	return ItemSnapshot{Title: i.Title, Price: i.Price, Image: i.Image, Type: i.Type}
}

// Order is an immutable, independently stored order.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []OrderItem        `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserCart is one row of the admin order report.
type UserCart struct {
	UserID primitive.ObjectID `json:"userId"`
	Name   string             `json:"name"`
	Orders []CartLine         `json:"orders"`
}
