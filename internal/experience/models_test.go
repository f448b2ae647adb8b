package experience

import (
	"encoding/json"
	"testing"

	"github.com/mehmetcc/folio/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	cases := []struct {
		name string
		exp  Experience
		want string
	}{
		{"closed range", Experience{StartDate: dbx.NewDate(2020, 3, 1), EndDate: dbx.NewDate(2022, 11, 30)}, "03/2020 - 11/2022"},
		{"current wins over end", Experience{StartDate: dbx.NewDate(2023, 1, 1), EndDate: dbx.NewDate(2024, 1, 1), IsCurrent: true}, "01/2023 - Present"},
		{"no end", Experience{StartDate: dbx.NewDate(2019, 7, 15)}, "07/2019 - "},
		{"no dates", Experience{}, " - "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.exp.Period())
		})
	}
}

func TestMarshalIncludesPeriod(t *testing.T) {
	b, err := json.Marshal(Experience{ID: 1, Title: "Engineer", StartDate: dbx.NewDate(2021, 5, 1), IsCurrent: true})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "05/2021 - Present", out["period"])
	assert.Equal(t, "2021-05-01", out["start_date"])
	assert.Nil(t, out["end_date"])
	assert.NotContains(t, out, "created_at")
}
