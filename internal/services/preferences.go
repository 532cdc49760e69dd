package services

import (
	"strconv"

	"github.com/mverner/teambook/internal/models"
)

// Display preference inputs arrive as raw form strings. Each option is
// coerced against a whitelist; anything unrecognized falls back to the
// option's default instead of failing the whole update.

const (
	defaultLimit = 15
	maxLimit     = 500

	defaultOrderBy = "date"
	defaultSort    = "desc"
)

var (
	orderByChoices = map[string]bool{
		"cat":     true,
		"date":    true,
		"title":   true,
		"comment": true,
	}

	sortChoices = map[string]bool{
		"asc":  true,
		"desc": true,
	}

	langChoices = map[string]bool{
		"ca_ES": true,
		"de_DE": true,
		"en_GB": true,
		"es_ES": true,
		"fr_FR": true,
		"it_IT": true,
		"ja_JP": true,
		"nl_BE": true,
		"pl_PL": true,
		"pt_BR": true,
		"ru_RU": true,
		"sl_SI": true,
		"zh_CN": true,
	}
)

func coerceChoice(raw string, choices map[string]bool, fallback string) string {
	if choices[raw] {
		return raw
	}
	return fallback
}

func coerceLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxLimit {
		return defaultLimit
	}
	return n
}

// coerceBool recognizes the values checkboxes and toggles submit. Anything
// else, including absence, is false.
func coerceBool(raw string) bool {
	switch raw {
	case "1", "on", "true":
		return true
	}
	return false
}

// CoercePreferences turns raw form values into a valid Preferences value.
// Unknown keys are ignored; missing or invalid values take defaults, with
// defaultLang as the language fallback.
func CoercePreferences(raw map[string]string, defaultLang string) models.Preferences {
	return models.Preferences{
		Limit:        coerceLimit(raw["limit"]),
		OrderBy:      coerceChoice(raw["orderby"], orderByChoices, defaultOrderBy),
		Sort:         coerceChoice(raw["sort"], sortChoices, defaultSort),
		SingleColumn: coerceBool(raw["single_column_layout"]),
		ShowTeam:     coerceBool(raw["show_team"]),
		CloseWarning: coerceBool(raw["close_warning"]),
		Lang:         coerceChoice(raw["lang"], langChoices, defaultLang),
	}
}
