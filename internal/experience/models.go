package experience

import (
	"encoding/json"
	"time"

	"github.com/mehmetcc/folio/internal/dbx"
)

type Experience struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	StartDate        dbx.Date  `json:"start_date"`
	EndDate          dbx.Date  `json:"end_date"`
	IsCurrent        bool      `json:"is_current"`
	Duration         string    `json:"duration"`
	Responsibilities []string  `json:"responsibilities"`
	Achievements     []string  `json:"achievements"`
	Technologies     []string  `json:"technologies"`
	Color            string    `json:"color"`
	Order            int       `json:"order"`
	IsVisible        bool      `json:"is_visible"`
	CreatedAt        time.Time `json:"-"`
}

const periodLayout = "01/2006"

// Period renders the date range as "MM/YYYY - MM/YYYY". A current role ends in
// "Present" and a missing date renders empty.
func (e Experience) Period() string {
	var start, end string
	if !e.StartDate.IsZero() {
		start = e.StartDate.Format(periodLayout)
	}
	switch {
	case e.IsCurrent:
		end = "Present"
	case !e.EndDate.IsZero():
		end = e.EndDate.Format(periodLayout)
	}
	return start + " - " + end
}

func (e Experience) MarshalJSON() ([]byte, error) {
	type plain Experience
	return json.Marshal(struct {
		plain
		Period string `json:"period"`
	}{plain: plain(e), Period: e.Period()})
}
