package blog

import "time"

type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	CoverImage  string    `json:"cover_image"`
	Date        time.Time `json:"date"`
	ReadingTime *int      `json:"reading_time"`
	Featured    bool      `json:"featured"`
	IsVisible   bool      `json:"is_visible"`
	Author      *Author   `json:"author"`
	Tags        []string  `json:"tags"`
}
