package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipant_Ranked(t *testing.T) {
	tests := []struct {
		name      string
		active    bool
		invisible bool
		want      bool
	}{
		{name: "active and visible", active: true, want: true},
		{name: "active but invisible", active: true, invisible: true, want: false},
		{name: "inactive", active: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Participant{Active: tt.active, Invisible: tt.invisible}
			assert.Equal(t, tt.want, p.Ranked())
		})
	}
}

func TestParticipant_JSONHidesPasswordHash(t *testing.T) {
	p := Participant{ID: 3, Username: "zico", PasswordHash: "$2a$10$secret", DisplayName: "Zico"}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), `"display_name":"Zico"`)
}
