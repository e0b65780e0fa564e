package project

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// New creates a record with empty comment, change-log, and version histories.
// An empty status defaults to Received.
func New(id string, customer Customer, responsible string, status Status) *Record {
	if status == "" {
		status = StatusReceived
	}
	return &Record{
		ID:          id,
		Status:      status,
		Responsible: responsible,
		Customer:    customer,
		Quantity:    1,
		CreatedAt:   time.Now().UTC(),
	}
}

// logChange appends one audit entry. The change log is append-only; nothing
// in this package ever rewrites or drops an entry.
func (r *Record) logChange(field, oldValue, newValue, actor string) {
	r.ChangeLog = append(r.ChangeLog, ChangeEntry{
		Timestamp: time.Now().UTC(),
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		Actor:     actor,
	})
}

// SetStatus updates the status and logs the transition. Setting the current
// value still logs: every call is an audit event.
func (r *Record) SetStatus(status Status, actor string) {
	old := r.Status
	r.Status = status
	r.logChange("status", string(old), string(status), actor)
}

// AddComment appends a timestamped comment. Comments have their own ordered
// trail, so adding one produces no change-log entry.
func (r *Record) AddComment(author, text string) Comment {
	c := Comment{Timestamp: time.Now().UTC(), Author: author, Text: text}
	r.Comments = append(r.Comments, c)
	return c
}

// EditComment replaces the text of the comment at index i and logs the prior
// text. Returns ErrCommentIndex without touching any state if i is invalid.
func (r *Record) EditComment(i int, text, actor string) error {
	if i < 0 || i >= len(r.Comments) {
		return fmt.Errorf("%w: %d (have %d comments)", ErrCommentIndex, i, len(r.Comments))
	}
	old := r.Comments[i].Text
	r.Comments[i].Text = text
	r.logChange("comments["+strconv.Itoa(i)+"]", old, text, actor)
	return nil
}

// RemoveComment deletes the comment at index i and logs the removed text.
func (r *Record) RemoveComment(i int, actor string) error {
	if i < 0 || i >= len(r.Comments) {
		return fmt.Errorf("%w: %d (have %d comments)", ErrCommentIndex, i, len(r.Comments))
	}
	old := r.Comments[i].Text
	r.Comments = append(r.Comments[:i], r.Comments[i+1:]...)
	r.logChange("comments["+strconv.Itoa(i)+"]", old, "", actor)
	return nil
}

// ArchiveVersion appends a version entry for the given file content and
// returns its content hash. Pure append: prior versions are never overwritten
// or deleted, so old file content stays retrievable indefinitely.
func (r *Record) ArchiveVersion(content []byte, originalFilename string) string {
	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])
	next := 1
	if n := len(r.Versions); n > 0 {
		next = r.Versions[n-1].Number + 1
	}
	r.Versions = append(r.Versions, FileVersion{
		Number:           next,
		ContentHash:      hash,
		ArchivedAt:       time.Now().UTC(),
		OriginalFilename: originalFilename,
	})
	return hash
}

// Rename sets the display name.
func (r *Record) Rename(name, actor string) {
	old := r.Name
	r.Name = name
	r.logChange("name", old, name, actor)
}

// SetResponsible sets the owning person or team.
func (r *Record) SetResponsible(responsible, actor string) {
	old := r.Responsible
	r.Responsible = responsible
	r.logChange("responsible", old, responsible, actor)
}

// SetQuantity sets the number of copies to produce.
func (r *Record) SetQuantity(quantity int, actor string) {
	old := r.Quantity
	r.Quantity = quantity
	r.logChange("quantity", strconv.Itoa(old), strconv.Itoa(quantity), actor)
}

// SetCustomer replaces the customer contact.
func (r *Record) SetCustomer(customer Customer, actor string) {
	old := r.Customer.Name
	r.Customer = customer
	r.logChange("customer", old, customer.Name, actor)
}

// SetShipping replaces the customer's shipping address.
func (r *Record) SetShipping(addr *ShippingAddress, actor string) {
	old := ""
	if r.Customer.Shipping != nil {
		old = r.Customer.Shipping.String()
	}
	r.Customer.Shipping = addr
	next := ""
	if addr != nil {
		next = addr.String()
	}
	r.logChange("shipping", old, next, actor)
}

// SetRole assigns the people responsible for one responsibility type,
// e.g. Design or Production. An empty people list removes the role.
func (r *Record) SetRole(role string, people []string, actor string) {
	old := strings.Join(r.Roles[role], ", ")
	if len(people) == 0 {
		delete(r.Roles, role)
	} else {
		if r.Roles == nil {
			r.Roles = make(map[string][]string)
		}
		r.Roles[role] = people
	}
	r.logChange("roles."+role, old, strings.Join(people, ", "), actor)
}
