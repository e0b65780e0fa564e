package project

import (
	"fmt"
	"time"
)

// Status is the production state of a project. Transitions are unrestricted;
// Shipped and Cancelled are terminal only in the sense that no later state
// follows them in the workflow.
type Status string

const (
	StatusReceived   Status = "Received"
	StatusInProgress Status = "InProgress"
	StatusOnHold     Status = "OnHold"
	StatusShipped    Status = "Shipped"
	StatusCancelled  Status = "Cancelled"
)

// ParseStatus validates a status string at the API boundary.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusReceived, StatusInProgress, StatusOnHold, StatusShipped, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

// Terminal reports whether the status ends the production workflow.
// Terminal projects remain fully queryable and editable.
func (s Status) Terminal() bool {
	return s == StatusShipped || s == StatusCancelled
}

// ShippingAddress is the customer's delivery address.
type ShippingAddress struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

func (a ShippingAddress) String() string {
	return fmt.Sprintf("%s, %s %s, %s", a.Street, a.PostalCode, a.City, a.Country)
}

// Customer identifies who ordered the job.
type Customer struct {
	Name     string           `json:"name"`
	Shipping *ShippingAddress `json:"shipping,omitempty"`
}

// Comment is one timestamped note on a project. Comments keep their own
// ordered trail; edits and removals are recorded in the change log instead.
type Comment struct {
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
}

// ChangeEntry is one field-level mutation in the audit trail.
type ChangeEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	Actor     string    `json:"actor"`
}

// FileVersion describes one archived revision of the project's print file.
// Entries are immutable once appended; numbers increase strictly from 1.
type FileVersion struct {
	Number           int       `json:"number"`
	ContentHash      string    `json:"content_hash"`
	ArchivedAt       time.Time `json:"archived_at"`
	OriginalFilename string    `json:"original_filename"`
}

// Record is the full mutable state of one 3D-printing job.
type Record struct {
	ID          string              `json:"id"`
	Name        string              `json:"name,omitempty"`
	Status      Status              `json:"status"`
	Responsible string              `json:"responsible"`
	Roles       map[string][]string `json:"roles,omitempty"`
	Customer    Customer            `json:"customer"`
	Quantity    int                 `json:"quantity"`
	Comments    []Comment           `json:"comments"`
	ChangeLog   []ChangeEntry       `json:"change_log"`
	Versions    []FileVersion       `json:"versions"`
	CreatedAt   time.Time           `json:"created_at"`
}

// Summary is the index row kept per record: enough to list and filter
// projects without loading their full blobs.
type Summary struct {
	ID           string    `json:"id"`
	Status       Status    `json:"status"`
	Responsible  string    `json:"responsible"`
	LastModified time.Time `json:"last_modified"`
	StorageKey   string    `json:"storage_key"`
}
