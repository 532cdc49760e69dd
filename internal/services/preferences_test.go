package services

import (
	"testing"

	"github.com/mverner/teambook/internal/models"
)

func TestCoercePreferences(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]string
		want models.Preferences
	}{
		{
			name: "empty input takes all defaults",
			raw:  map[string]string{},
			want: models.Preferences{Limit: 15, OrderBy: "date", Sort: "desc", Lang: "en_GB"},
		},
		{
			name: "valid values pass through",
			raw: map[string]string{
				"limit":                "25",
				"orderby":              "cat",
				"sort":                 "asc",
				"single_column_layout": "1",
				"show_team":            "on",
				"close_warning":        "true",
				"lang":                 "fr_FR",
			},
			want: models.Preferences{Limit: 25, OrderBy: "cat", Sort: "asc", SingleColumn: true, ShowTeam: true, CloseWarning: true, Lang: "fr_FR"},
		},
		{
			name: "limit bounds",
			raw:  map[string]string{"limit": "0"},
			want: models.Preferences{Limit: 15, OrderBy: "date", Sort: "desc", Lang: "en_GB"},
		},
		{
			name: "limit above maximum",
			raw:  map[string]string{"limit": "501"},
			want: models.Preferences{Limit: 15, OrderBy: "date", Sort: "desc", Lang: "en_GB"},
		},
		{
			name: "limit at maximum",
			raw:  map[string]string{"limit": "500"},
			want: models.Preferences{Limit: 500, OrderBy: "date", Sort: "desc", Lang: "en_GB"},
		},
		{
			name: "non-numeric limit",
			raw:  map[string]string{"limit": "lots"},
			want: models.Preferences{Limit: 15, OrderBy: "date", Sort: "desc", Lang: "en_GB"},
		},
		{
			name: "bogus choices fall back",
			raw:  map[string]string{"orderby": "random", "sort": "up", "lang": "tlh"},
			want: models.Preferences{Limit: 15, OrderBy: "date", Sort: "desc", Lang: "en_GB"},
		},
		{
			name: "checkbox off values stay false",
			raw:  map[string]string{"show_team": "0", "close_warning": "off"},
			want: models.Preferences{Limit: 15, OrderBy: "date", Sort: "desc", Lang: "en_GB"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CoercePreferences(tc.raw, "en_GB")
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
