package entity

// ItemKind distinguishes resource drops from healing drops
type ItemKind int

const (
	// ItemGem is a resource drop: score and experience
	ItemGem ItemKind = iota
	// ItemTuna is a healing drop
	ItemTuna
)

// String returns the config name of the item kind
func (k ItemKind) String() string {
	switch k {
	case ItemGem:
		return "gem"
	case ItemTuna:
		return "tuna"
	default:
		return "unknown"
	}
}

// ParseItemKind maps a config name to an ItemKind
func ParseItemKind(s string) (ItemKind, bool) {
	switch s {
	case "gem":
		return ItemGem, true
	case "tuna":
		return ItemTuna, true
	default:
		return 0, false
	}
}

// Item is a pickup dropped by a removed enemy
type Item struct {
	ID   EntityID
	Pos  Vec2 // center
	Kind ItemKind
	Size float64
}

// NewItem creates an item centered on pos
func NewItem(id EntityID, pos Vec2, kind ItemKind, size float64) *Item {
	return &Item{ID: id, Pos: pos, Kind: kind, Size: size}
}

// Rect returns the item's pickup rect
func (i *Item) Rect() Rect {
	return RectAround(i.Pos, i.Size, i.Size)
}
