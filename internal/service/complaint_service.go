package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Ru28/complaint-management-system/internal/domain"
	"github.com/Ru28/complaint-management-system/internal/events"
	"github.com/Ru28/complaint-management-system/internal/repository"
	apperrors "github.com/Ru28/complaint-management-system/pkg/util"
)

// ComplaintService coordinates the complaint lifecycle: creation,
// ownership-scoped retrieval and resolution.
type ComplaintService struct {
	complaints  repository.ComplaintRepository
	resolutions repository.ResolutionRepository
	uow         repository.UnitOfWork
	dispatcher  events.Dispatcher
}

// ComplaintDependencies bundles requirements for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	ResolutionRepo repository.ResolutionRepository
	UnitOfWork     repository.UnitOfWork
	Dispatcher     events.Dispatcher
}

// RaiseComplaintInput describes complaint creation payload. The contact
// fields are snapshotted onto the complaint as submitted.
type RaiseComplaintInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Detail      string
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints:  deps.ComplaintRepo,
		resolutions: deps.ResolutionRepo,
		uow:         deps.UnitOfWork,
		dispatcher:  deps.Dispatcher,
	}
}

// Raise creates a complaint owned by the authenticated user. The owner
// always comes from the verified identity, never from the payload.
func (s *ComplaintService) Raise(ctx context.Context, userID string, input RaiseComplaintInput) (*domain.Complaint, error) {
	missing := map[string]any{}
	for field, value := range map[string]string{
		"firstName":       input.FirstName,
		"lastName":        input.LastName,
		"email":           input.Email,
		"phoneNumber":     input.PhoneNumber,
		"complaintDetail": input.Detail,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("firstName, lastName, email, phoneNumber and complaintDetail required", missing)
	}

	complaint := &domain.Complaint{
		UserID:      userID,
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       strings.TrimSpace(input.Email),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Detail:      strings.TrimSpace(input.Detail),
		Status:      domain.ComplaintStatusOpen,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventComplaintRaised,
		ActorID: userID,
		Payload: events.ComplaintRaisedPayload{
			ComplaintID: complaint.ID,
			UserID:      userID,
			Email:       complaint.Email,
		},
	})
	return complaint, nil
}

// ListForUser returns every complaint owned by the caller. No
// complaints yet is a valid outcome, not an error.
func (s *ComplaintService) ListForUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	complaints, err := s.complaints.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if complaints == nil {
		complaints = []domain.Complaint{}
	}
	return complaints, nil
}

// ListAll returns every complaint joined with its latest resolution,
// newest first, for the admin overview.
func (s *ComplaintService) ListAll(ctx context.Context) ([]domain.ComplaintWithResolution, error) {
	items, err := s.complaints.ListWithLatestResolution(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ComplaintWithResolution{}
	}
	return items, nil
}

// Resolve appends a resolution record and marks the complaint resolved.
// Both writes run in one transaction where the store supports it; the
// resolution insert always precedes the status flip, so a partial
// failure leaves an orphaned resolution rather than a resolved
// complaint with no recorded response.
func (s *ComplaintService) Resolve(ctx context.Context, actorID, complaintID, response string) (*domain.Complaint, *domain.Resolution, error) {
	if strings.TrimSpace(complaintID) == "" {
		return nil, nil, apperrors.NewValidationError("complaint id required", nil)
	}
	if strings.TrimSpace(response) == "" {
		return nil, nil, apperrors.NewValidationError("response text required", nil)
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, nil, err
	}

	resolution := &domain.Resolution{
		ComplaintID: complaint.ID,
		Response:    strings.TrimSpace(response),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.resolutions.Create(ctx, resolution); err != nil {
			return err
		}
		return s.complaints.SetStatus(ctx, complaint.ID, domain.ComplaintStatusResolved)
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, nil, err
	}
	complaint.Status = domain.ComplaintStatusResolved

	s.publishEvent(ctx, events.Event{
		Type:    events.EventComplaintResolved,
		ActorID: actorID,
		Payload: events.ComplaintResolvedPayload{
			ComplaintID:  complaint.ID,
			ResolutionID: resolution.ID,
			Response:     resolution.Response,
		},
	})
	return complaint, resolution, nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
