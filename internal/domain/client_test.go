package domain

import (
	"errors"
	"testing"
)

func TestClientValidate(t *testing.T) {
	valid := func() *Client {
		return &Client{FirstName: "Ana", LastName: "Gomez", NationalID: "12345678", Phone: "1144445555"}
	}

	t.Run("valid client", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("empty phone is allowed", func(t *testing.T) {
		c := valid()
		c.Phone = ""
		if err := c.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Client)
	}{
		{"missing first name", func(c *Client) { c.FirstName = "  " }},
		{"missing last name", func(c *Client) { c.LastName = "" }},
		{"missing national id", func(c *Client) { c.NationalID = "" }},
		{"malformed national id", func(c *Client) { c.NationalID = "12-345-678" }},
		{"malformed phone", func(c *Client) { c.Phone = "abc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestClientFullName(t *testing.T) {
	c := &Client{FirstName: "Ana", LastName: "Gomez"}
	if got := c.FullName(); got != "Ana Gomez" {
		t.Errorf("FullName() = %q, want %q", got, "Ana Gomez")
	}
}

func TestClientMapRoundTrip(t *testing.T) {
	original := &Client{
		ID:         7,
		FirstName:  "Ana",
		LastName:   "Gomez",
		NationalID: "12345678",
		Phone:      "1144445555",
		Inactive:   true,
	}

	got := ClientFromMap(original.ToMap())
	if *got != *original {
		t.Errorf("round trip = %+v, want %+v", got, original)
	}
}

func TestClientFromMapDefaults(t *testing.T) {
	c := ClientFromMap(map[string]any{"first_name": "Ana"})
	if c.FirstName != "Ana" {
		t.Errorf("FirstName = %q, want Ana", c.FirstName)
	}
	if c.ID != 0 || c.Phone != "" || c.Inactive {
		t.Errorf("missing keys should default to zero values, got %+v", c)
	}
}
