// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

/*
Package auth implements the identity model of Fashion Fiesta and the flows
that create or authenticate it.

# Architecture

  - User: the identity record, including the embedded designer application
    and designer details.
  - Repositories: Postgres for identities, Redis for signup codes and OAuth state.
  - Service: signup with an emailed code, password login, Google login.

Other packages (account, designer, cart) read and write identities through
[UserRepository]; nothing outside this package touches the users table.
*/
package auth

import (
	"strings"
	"time"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
)

// # Domain Entities

// Provider records how an identity authenticates.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

// ApplicationStatus is the review state of a designer application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// DesignerApplication is submitted by a customer asking to become a designer.
//
// It is present while the identity is pending_designer, and kept as a
// rejected record after a rejection.
type DesignerApplication struct {
	BrandName       string            `json:"brandName"`
	Message         string            `json:"message"`
	PortfolioLink   string            `json:"portfolioLink,omitempty"`
	YearsExperience int               `json:"yearsExperience"`
	Specializations []string          `json:"specializations,omitempty"`
	WhyYou          string            `json:"whyYou,omitempty"`
	AppliedAt       time.Time         `json:"appliedAt"`
	Status          ApplicationStatus `json:"status"`
	ReviewedBy      string            `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time        `json:"reviewedAt,omitempty"`
	RejectionReason string            `json:"rejectionReason,omitempty"`
}

// DesignerDetails is the public designer profile created on approval.
type DesignerDetails struct {
	BrandName       string    `json:"brandName"`
	Bio             string    `json:"bio,omitempty"`
	PortfolioLink   string    `json:"portfolioLink,omitempty"`
	Specializations []string  `json:"specializations,omitempty"`
	YearsExperience int       `json:"yearsExperience"`
	Verified        bool      `json:"verified"`
	TotalSales      int       `json:"totalSales"`
	ApprovedAt      time.Time `json:"approvedAt"`
}

// User is a registered identity.
//
// PasswordHash is nil exactly when AuthProvider is not [ProviderLocal].
type User struct {
	ID                  string               `json:"id"`
	Email               string               `json:"email"`
	PasswordHash        *string              `json:"-"`
	FirstName           string               `json:"firstName"`
	LastName            string               `json:"lastName"`
	ProfilePhoto        string               `json:"profilePhoto,omitempty"`
	Role                sec.Role             `json:"role"`
	AuthProvider        Provider             `json:"authProvider"`
	DesignerApplication *DesignerApplication `json:"designerApplication,omitempty"`
	DesignerDetails     *DesignerDetails     `json:"designerDetails,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// DisplayName joins the first and last name.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasPassword reports whether the identity can log in with a password.
func (u *User) HasPassword() bool {
	return u.AuthProvider == ProviderLocal && u.PasswordHash != nil
}

// Subject is the token subject for u.
func (u *User) Subject() sec.Subject {
	return sec.Subject{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// NormalizeEmail is the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
