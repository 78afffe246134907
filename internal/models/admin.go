package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// RegistrationStatus is the lifecycle state of a pending admin registration.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// ErrRegistrationProcessed is returned when a terminal registration is approved or rejected again.
var ErrRegistrationProcessed = errors.New("registration already processed")

// Valid reports whether the status is one of the three known states.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationApproved, RegistrationRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s RegistrationStatus) Terminal() bool {
	return s == RegistrationApproved || s == RegistrationRejected
}

// Scan implements sql.Scanner and refuses values outside the state set.
func (s *RegistrationStatus) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("registration status: unsupported type %T", src)
	}
	status := RegistrationStatus(raw)
	if !status.Valid() {
		return fmt.Errorf("registration status: unknown value %q", raw)
	}
	*s = status
	return nil
}

// Value implements driver.Valuer.
func (s RegistrationStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("registration status: unknown value %q", string(s))
	}
	return string(s), nil
}

// Admin is a trusted administrator. Rows are only created by approving a PendingAdmin.
type Admin struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PhoneNumber  string    `db:"phone_number" json:"phoneNumber"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// PendingAdmin is a registration request awaiting confirmation by e-mail.
type PendingAdmin struct {
	ID            string             `db:"id" json:"id"`
	Name          string             `db:"name" json:"name"`
	Email         string             `db:"email" json:"email"`
	PhoneNumber   string             `db:"phone_number" json:"phoneNumber"`
	PasswordHash  string             `db:"password_hash" json:"-"`
	Status        RegistrationStatus `db:"status" json:"status"`
	ProcessedDate *time.Time         `db:"processed_date" json:"processedDate,omitempty"`
	CreatedAt     time.Time          `db:"created_at" json:"createdAt"`
}

// Approve moves a pending registration to approved.
func (p *PendingAdmin) Approve(at time.Time) error {
	return p.transition(RegistrationApproved, at)
}

// Reject moves a pending registration to rejected.
func (p *PendingAdmin) Reject(at time.Time) error {
	return p.transition(RegistrationRejected, at)
}

func (p *PendingAdmin) transition(to RegistrationStatus, at time.Time) error {
	if p.Status != RegistrationPending {
		return ErrRegistrationProcessed
	}
	at = at.UTC()
	p.Status = to
	p.ProcessedDate = &at
	return nil
}

// ToAdmin copies the identity and password hash into a new Admin.
func (p *PendingAdmin) ToAdmin(id string, at time.Time) *Admin {
	return &Admin{
		ID:           id,
		Name:         p.Name,
		Email:        p.Email,
		PhoneNumber:  p.PhoneNumber,
		PasswordHash: p.PasswordHash,
		CreatedAt:    at.UTC(),
	}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// RegisterResponse carries the identifier of the new pending registration.
type RegisterResponse struct {
	PendingAdminID string `json:"pendingAdminId"`
}

// VerificationResult is returned after a confirm or deny link was followed.
type VerificationResult struct {
	PendingAdminID string             `json:"pendingAdminId"`
	Status         RegistrationStatus `json:"status"`
	ProcessedDate  time.Time          `json:"processedDate"`
	Admin          *Admin             `json:"admin,omitempty"`
}
