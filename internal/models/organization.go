package models

// Organization is the top-level grouping entity (stored as a "Dao" document).
type Organization struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	OwnerID     *string  `json:"ownerId"`
	Members     []Member `json:"members"`
	CreatedAt   string   `json:"createdAt"`
}
