package contact

import "time"

type Message struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	Subject                string    `json:"subject"`
	Message                string    `json:"message"`
	Phone                  string    `json:"phone"`
	PreferredContactMethod string    `json:"preferred_contact_method"`
	IsRead                 bool      `json:"is_read"`
	CreatedAt              time.Time `json:"created_at"`
}
