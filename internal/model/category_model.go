package model

// Category represents a row in the categories table. The tree is a plain
// parent-pointer table; children are looked up on demand.
type Category struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ParentID *int64 `json:"-"`
}

func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// CategoryNode is a root category with its direct children, as returned by
// GET /api/categories.
type CategoryNode struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Subcategories []Category `json:"subcategories"`
}
