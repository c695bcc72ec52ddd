package domain

import "strings"

type Client struct {
	ID         int64
	FirstName  string
	LastName   string
	NationalID string
	Phone      string
	Inactive   bool
}

// NewClient creates a new client with required fields
func NewClient(firstName, lastName, nationalID string) *Client {
	return &Client{
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		NationalID: strings.TrimSpace(nationalID),
	}
}

// FullName returns the display name used by lists and reports.
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate returns an error wrapping ErrInvalid if the client is invalid
func (c *Client) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return invalidf("first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return invalidf("last name is required")
	}
	if strings.TrimSpace(c.NationalID) == "" {
		return invalidf("national id is required")
	}
	if !ValidNationalID(c.NationalID) {
		return invalidf("national id %q is malformed", c.NationalID)
	}
	if c.Phone != "" && !ValidPhone(c.Phone) {
		return invalidf("phone %q is malformed", c.Phone)
	}
	return nil
}

// ToMap serializes the client for the reporting boundary.
func (c *Client) ToMap() map[string]any {
	return map[string]any{
		"id":          c.ID,
		"first_name":  c.FirstName,
		"last_name":   c.LastName,
		"national_id": c.NationalID,
		"phone":       c.Phone,
		"inactive":    c.Inactive,
	}
}

// ClientFromMap rebuilds a client from a ToMap-shaped mapping. Missing
// optional keys default to the zero value.
func ClientFromMap(data map[string]any) *Client {
	return &Client{
		ID:         intField(data, "id"),
		FirstName:  stringField(data, "first_name"),
		LastName:   stringField(data, "last_name"),
		NationalID: stringField(data, "national_id"),
		Phone:      stringField(data, "phone"),
		Inactive:   boolField(data, "inactive"),
	}
}
