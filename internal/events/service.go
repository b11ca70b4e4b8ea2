package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"club-events/internal/logger"
	"club-events/internal/models"
)

type EventDBLayer interface {
	ListAll(ctx context.Context) ([]models.Event, error)
	ListByClub(ctx context.Context, clubID string) ([]models.Event, error)
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, event models.Event) error
	UpdateEvent(ctx context.Context, event models.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

type ClubDBLayer interface {
	GetClubByID(ctx context.Context, id string) (*models.Club, error)
}

// Publisher streams event lifecycle messages. A nil publisher disables
// streaming entirely.
type Publisher interface {
	Publish(topic, key string, value []byte) error
}

type Topics struct {
	Created string
	Updated string
	Deleted string
}

type Service struct {
	DB       EventDBLayer
	Clubs    ClubDBLayer
	Producer Publisher
	Topics   Topics
	Logger   *logger.Logger
}

func NewService(db EventDBLayer, clubs ClubDBLayer, producer Publisher, topics Topics, log *logger.Logger) *Service {
	return &Service{DB: db, Clubs: clubs, Producer: producer, Topics: topics, Logger: log}
}

// ListAll is the public read path: every club's events ascending by date,
// with the owning club's display name. Dates are re-normalized on read so
// rows stored before normalization existed still serve canonically.
func (s *Service) ListAll(ctx context.Context) ([]models.Event, error) {
	evts, err := s.DB.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	for i := range evts {
		evts[i].Date = NormalizeDate(evts[i].Date)
	}
	return evts, nil
}

// ListOwn returns the session club's events ascending by date.
func (s *Service) ListOwn(ctx context.Context, clubID string) ([]models.Event, error) {
	evts, err := s.DB.ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for club %s: %w", clubID, err)
	}
	for i := range evts {
		evts[i].Date = NormalizeDate(evts[i].Date)
	}
	return evts, nil
}

// Create inserts a new event owned by the session's club. Owner id and
// organizer name come from the club row, never from client input.
func (s *Service) Create(ctx context.Context, clubID string, req models.EventRequest) (*models.Event, error) {
	title := deref(req.Title)
	date := deref(req.Date)
	eventTime := deref(req.Time)
	venue := deref(req.Venue)
	category := deref(req.Category)

	if strings.TrimSpace(title) == "" || strings.TrimSpace(date) == "" ||
		strings.TrimSpace(eventTime) == "" || strings.TrimSpace(venue) == "" ||
		strings.TrimSpace(category) == "" {
		return nil, ErrValidation
	}

	club, err := s.Clubs.GetClubByID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load club %s: %w", clubID, err)
	}

	registration := deref(req.Registration)
	if registration == "" {
		registration = "#"
	}

	// Description is nullable on the wire: an omitted or empty value is
	// stored as NULL and serialized as null, not "".
	var description *string
	if d := deref(req.Description); d != "" {
		description = &d
	}

	now := time.Now().UTC()
	event := models.Event{
		ID:           uuid.NewString(),
		ClubID:       club.ID,
		Title:        title,
		Date:         NormalizeDate(date),
		Time:         eventTime,
		Venue:        venue,
		Category:     category,
		Organizer:    club.Name,
		Registration: registration,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.DB.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.publish(s.Topics.Created, event)
	return &event, nil
}

// Update merges the provided fields into the stored row. Existence is checked
// before ownership so a non-owner probing a missing id still gets NotFound.
// Absent or empty fields keep their stored values, except description, where
// an explicitly provided empty value clears it.
func (s *Service) Update(ctx context.Context, clubID, eventID string, req models.EventRequest) (*models.Event, error) {
	event, err := s.DB.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load event %s: %w", eventID, err)
	}
	if event.ClubID != clubID {
		return nil, ErrForbidden
	}

	if v := deref(req.Title); v != "" {
		event.Title = v
	}
	if v := deref(req.Date); v != "" {
		event.Date = v
	}
	// Normalize whichever date survives the merge, so an update that leaves
	// the date alone still canonicalizes a legacy stored value.
	event.Date = NormalizeDate(event.Date)
	if v := deref(req.Time); v != "" {
		event.Time = v
	}
	if v := deref(req.Venue); v != "" {
		event.Venue = v
	}
	if v := deref(req.Category); v != "" {
		event.Category = v
	}
	if v := deref(req.Registration); v != "" {
		event.Registration = v
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.DB.UpdateEvent(ctx, *event); err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", eventID, err)
	}
	s.publish(s.Topics.Updated, *event)
	return event, nil
}

// Delete removes the row after the same existence/ownership checks as Update.
func (s *Service) Delete(ctx context.Context, clubID, eventID string) error {
	event, err := s.DB.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load event %s: %w", eventID, err)
	}
	if event.ClubID != clubID {
		return ErrForbidden
	}

	if err := s.DB.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	s.publish(s.Topics.Deleted, *event)
	return nil
}

// GetPublic loads a single event for the public calendar and QR endpoints.
func (s *Service) GetPublic(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.DB.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load event %s: %w", eventID, err)
	}
	event.Date = NormalizeDate(event.Date)
	return event, nil
}

// publish streams a lifecycle message; failures are logged, never surfaced.
func (s *Service) publish(topic string, event models.Event) {
	if s.Producer == nil || topic == "" {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("Failed to marshal event %s: %v", event.ID, err))
		}
		return
	}
	if err := s.Producer.Publish(topic, event.ID, value); err != nil && s.Logger != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish to %s: %v", topic, err))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
