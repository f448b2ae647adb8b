package about

import "github.com/mehmetcc/folio/internal/dbx"

// About is the single profile record shown on the landing page.
type About struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Headline    string            `json:"headline"`
	Bio         string            `json:"bio"`
	Photo       string            `json:"photo"`
	CoverImage  string            `json:"cover_image"`
	Location    string            `json:"location"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Birthday    dbx.Date          `json:"birthday"`
	ResumeURL   string            `json:"resume_url"`
	SocialLinks map[string]string `json:"social_links"`
}
