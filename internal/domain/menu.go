package domain

// MenuItem is a catalog entry. ID is the slug of the title.
type MenuItem struct {
	ID       string  `bson:"_id" json:"id"`
	Title    string  `bson:"title" json:"title"`
	Price    float64 `bson:"price" json:"price"`
	Image    string  `bson:"image" json:"image"`
	Category string  `bson:"category" json:"category"`
}

// Snapshot captures the item for a cart line or order.
func (m MenuItem) Snapshot() ItemSnapshot {
	return ItemSnapshot{
		Title:  m.Title,
		Price:  m.Price,
		Image:  m.Image,
		Type:   m.Category,
		Status: DefaultItemStatus,
	}
}
