// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

/*
Package designer implements the designer application workflow.

A customer applies, an admin reviews, and the identity ends up either as a
verified designer or back as a customer with the rejection on record. The
role changes follow a fixed transition table (see [CanTransition]); review
outcomes are emailed without waiting for delivery.
*/
package designer

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/mail"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/auth"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/pointer"
)

// Notifier queues an email without waiting for delivery.
type Notifier interface {
	Dispatch(ctx context.Context, msg mail.Message)
}

// Service runs the application workflow.
type Service struct {
	users    auth.UserRepository
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes a [Service].
type Option func(*Service)

// WithClock injects the time source for appliedAt, reviewedAt and approvedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a [Service].
func NewService(users auth.UserRepository, notifier Notifier, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		users:    users,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ApplicationInput is what a customer submits.
type ApplicationInput struct {
	BrandName       string
	Message         string
	PortfolioLink   string
	YearsExperience int
	Specializations []string
	WhyYou          string
}

/*
Submit records an application and moves the caller to pending_designer.

Description: only a customer may apply. A pending applicant or an existing
designer gets INVALID_STATE. A previously rejected application is replaced.

Parameters:
  - ctx: context.Context
  - userID: string
  - input: ApplicationInput

Returns:
  - *auth.User: The updated identity
  - error: InvalidInput, InvalidState, NotFound or storage failures
*/
func (service *Service) Submit(ctx context.Context, userID string, input ApplicationInput) (*auth.User, error) {
	if strings.TrimSpace(input.BrandName) == "" {
		return nil, apperr.InvalidInput("Brand name is required")
	}
	if input.YearsExperience < 0 {
		return nil, apperr.InvalidInput("Years of experience cannot be negative")
	}

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("designer_service_submit_lookup_failed: %w", err)
	}
	if err := checkTransition(user.Role, sec.RolePendingDesigner); err != nil {
		return nil, err
	}

	user.Role = sec.RolePendingDesigner
	user.DesignerApplication = &auth.DesignerApplication{
		BrandName:       strings.TrimSpace(input.BrandName),
		Message:         strings.TrimSpace(input.Message),
		PortfolioLink:   strings.TrimSpace(input.PortfolioLink),
		YearsExperience: input.YearsExperience,
		Specializations: slices.Clone(input.Specializations),
		WhyYou:          strings.TrimSpace(input.WhyYou),
		AppliedAt:       service.now().UTC(),
		Status:          auth.ApplicationPending,
	}

	if err := service.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("designer_service_submit_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "designer_application_submitted", slog.String("user_id", userID))
	return user, nil
}

/*
Approve promotes a pending applicant to a verified designer.

Description: the designer details are built from the application, keeping
the sales counter of any earlier details. The application is cleared and an
approval email is queued; a delivery failure does not undo the approval.

Returns:
  - *auth.User: The updated identity
  - error: InvalidState unless the identity is pending_designer
*/
func (service *Service) Approve(ctx context.Context, adminID, userID string) (*auth.User, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("designer_service_approve_lookup_failed: %w", err)
	}
	if err := checkTransition(user.Role, sec.RoleDesigner); err != nil {
		return nil, err
	}

	application := user.DesignerApplication
	if application == nil {
		application = &auth.DesignerApplication{}
	}

	totalSales := 0
	if user.DesignerDetails != nil {
		totalSales = user.DesignerDetails.TotalSales
	}

	user.Role = sec.RoleDesigner
	user.DesignerDetails = &auth.DesignerDetails{
		BrandName:       application.BrandName,
		Bio:             application.Message,
		PortfolioLink:   application.PortfolioLink,
		Specializations: slices.Clone(application.Specializations),
		YearsExperience: application.YearsExperience,
		Verified:        true,
		TotalSales:      totalSales,
		ApprovedAt:      service.now().UTC(),
	}
	user.DesignerApplication = nil

	if err := service.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("designer_service_approve_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "designer_application_approved",
		slog.String("user_id", userID),
		slog.String("admin_id", adminID),
	)
	service.notifier.Dispatch(ctx, mail.DesignerApproved(user.Email, user.DisplayName(), user.DesignerDetails.BrandName))
	return user, nil
}

/*
Reject returns a pending applicant to customer and keeps the application as
a rejected record.

Description: the reason is checked before anything is read, so a blank reason
is INVALID_INPUT regardless of the identity's state.

Returns:
  - *auth.User: The updated identity
  - error: InvalidInput for a blank reason, InvalidState unless pending_designer
*/
func (service *Service) Reject(ctx context.Context, adminID, userID, reason string) (*auth.User, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.InvalidInput("A rejection reason is required")
	}

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("designer_service_reject_lookup_failed: %w", err)
	}
	if err := checkTransition(user.Role, sec.RoleCustomer); err != nil {
		return nil, err
	}

	if user.DesignerApplication == nil {
		user.DesignerApplication = &auth.DesignerApplication{}
	}
	user.DesignerApplication.Status = auth.ApplicationRejected
	user.DesignerApplication.ReviewedBy = adminID
	user.DesignerApplication.ReviewedAt = pointer.To(service.now().UTC())
	user.DesignerApplication.RejectionReason = reason
	user.Role = sec.RoleCustomer

	if err := service.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("designer_service_reject_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "designer_application_rejected",
		slog.String("user_id", userID),
		slog.String("admin_id", adminID),
	)
	service.notifier.Dispatch(ctx, mail.DesignerRejected(user.Email, user.DisplayName(), reason))
	return user, nil
}

// ListPending returns every identity awaiting review.
func (service *Service) ListPending(ctx context.Context) ([]*auth.User, error) {
	users, err := service.users.ListByRole(ctx, sec.RolePendingDesigner)
	if err != nil {
		return nil, fmt.Errorf("designer_service_list_pending_failed: %w", err)
	}
	return users, nil
}
