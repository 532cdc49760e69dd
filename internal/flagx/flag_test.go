package flagx

import (
	"reflect"
	"testing"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-d", "dsn", "-x", "other"},
			allowed: []string{"-d"},
			want:    []string{"-d", "dsn"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-d=dsn"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag without value",
			args:    []string{"-v", "-d", "dsn"},
			allowed: []string{"-v"},
			want:    []string{"-v"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1", "-b", "2"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowed)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("FilterArgs(%v, %v) = %v, want %v", tc.args, tc.allowed, got, tc.want)
			}
		})
	}
}

func TestStripFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		flags []string
		want  []string
	}{
		{
			name:  "flags removed with values",
			args:  []string{"-d", "dsn", "create", "user@example.com"},
			flags: []string{"-d"},
			want:  []string{"create", "user@example.com"},
		},
		{
			name:  "equals form removed",
			args:  []string{"--config=conf.json", "validate", "7"},
			flags: []string{"--config"},
			want:  []string{"validate", "7"},
		},
		{
			name:  "unknown flags survive",
			args:  []string{"-x=1", "list", "3"},
			flags: []string{"-d"},
			want:  []string{"-x=1", "list", "3"},
		},
		{
			name:  "nothing to strip",
			args:  []string{"list-all"},
			flags: []string{"-d", "-c"},
			want:  []string{"list-all"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StripFlags(tc.args, tc.flags)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("StripFlags(%v, %v) = %v, want %v", tc.args, tc.flags, got, tc.want)
			}
		})
	}
}
