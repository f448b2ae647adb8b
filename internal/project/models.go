package project

import (
	"time"

	"github.com/mehmetcc/folio/internal/dbx"
)

type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tech        []string  `json:"tech"`
	Links       []Link    `json:"links"`
	Image       string    `json:"image"`
	Gallery     []string  `json:"gallery"`
	ProjectType string    `json:"project_type"`
	StartDate   dbx.Date  `json:"start_date"`
	EndDate     dbx.Date  `json:"end_date"`
	Role        string    `json:"role"`
	TeamSize    *int      `json:"team_size"`
	Categories  []string  `json:"categories"`
	IsVisible   bool      `json:"is_visible"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}
