package models_test

import (
	"testing"

	"github.com/liviin/homecare-api/internal/models"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := models.NewID()
		if len(id) != models.IDLength {
			t.Fatalf("Expected %d characters, got %q", models.IDLength, id)
		}
		if !models.ValidID(id) {
			t.Fatalf("Expected generated id to validate, got %q", id)
		}
		if seen[id] {
			t.Fatalf("Generated duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestValidID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"507F1F77BCF86CD799439011", true},
		{"507f1f77bcf86cd79943901", false},
		{"507f1f77bcf86cd7994390111", false},
		{"507f1f77bcf86cd79943901z", false},
		{"", false},
	}
	for _, c := range cases {
		if got := models.ValidID(c.id); got != c.want {
			t.Errorf("ValidID(%q) = %v, want %v", c.id, got, c.want)
		}
	}
}
