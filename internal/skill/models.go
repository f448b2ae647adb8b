package skill

import "time"

// Skill is one technical skill category with its list of skill names.
type Skill struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Skills    []string  `json:"skills"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Order     int       `json:"order"`
	IsVisible bool      `json:"is_visible"`
	CreatedAt time.Time `json:"-"`
}
