package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"societyhub/internal/events"
	"societyhub/internal/model"
	"societyhub/internal/monitoring"
	"societyhub/pkg/generic"

	"gorm.io/gorm"
)

var ErrAlreadyCheckedOut = errors.New("visitor already checked out")

// VisitorPublisher receives gate events for live subscribers
type VisitorPublisher interface {
	Publish(societyID uint, eventType string, visitor interface{})
}

// VisitorService logs visitors at the gate
type VisitorService struct {
	visitors  *generic.ScopedRepository[model.Visitor, *model.Visitor]
	flats     *generic.ScopedRepository[model.Flat, *model.Flat]
	publisher VisitorPublisher
	now       func() time.Time
}

func NewVisitorService(db *gorm.DB, publisher VisitorPublisher) *VisitorService {
	return &VisitorService{
		visitors:  generic.NewScopedRepository[model.Visitor](db),
		flats:     generic.NewScopedRepository[model.Flat](db),
		publisher: publisher,
		now:       time.Now,
	}
}

// List returns visitors visible to sc, newest first, optionally filtered by
// status. Personal scopes see visitors they hosted.
func (s *VisitorService) List(ctx context.Context, sc generic.Scope, status string, page, size int) ([]model.Visitor, error) {
	queries := []generic.Query{
		func(db *gorm.DB) *gorm.DB { return db.Order("check_in_at DESC") },
		generic.Paginate(page, size),
	}
	if status = strings.TrimSpace(status); status != "" {
		queries = append(queries, generic.Where("status = ?", status))
	}
	return s.visitors.List(ctx, sc, queries...)
}

// CheckIn records a visitor as IN. When a flat is given it must belong to
// the guard's society and its owner becomes the host.
func (s *VisitorService) CheckIn(ctx context.Context, sc generic.Scope, req *model.CheckInRequest) (*model.Visitor, error) {
	v := &model.Visitor{
		Name:          req.Name,
		Phone:         req.Phone,
		Purpose:       req.Purpose,
		VehicleNumber: req.VehicleNumber,
		Status:        model.VisitorStatusIn,
		CheckInAt:     s.now(),
		LoggedBy:      sc.UserID,
	}
	if req.FlatID != nil {
		flat, err := s.flats.Get(ctx, sc, *req.FlatID)
		if err != nil {
			if errors.Is(err, generic.ErrNotFound) {
				return nil, fmt.Errorf("%w: flat %d not found in society", model.ErrInvalid, *req.FlatID)
			}
			return nil, err
		}
		v.FlatID = &flat.ID
		v.HostID = flat.OwnerID
	}
	if err := s.visitors.Create(ctx, sc, v); err != nil {
		return nil, err
	}
	s.publish(v.SocietyID, events.VisitorCheckIn, v)
	return v, nil
}

// CheckOut marks a visitor as OUT once.
func (s *VisitorService) CheckOut(ctx context.Context, sc generic.Scope, id uint) (*model.Visitor, error) {
	v, err := s.visitors.Update(ctx, sc, id, func(v *model.Visitor) error {
		if v.CheckOutAt != nil {
			return ErrAlreadyCheckedOut
		}
		now := s.now()
		v.Status = model.VisitorStatusOut
		v.CheckOutAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(v.SocietyID, events.VisitorCheckOut, v)
	return v, nil
}

func (s *VisitorService) publish(societyID uint, eventType string, v *model.Visitor) {
	monitoring.VisitorEvents.WithLabelValues(eventType).Inc()
	if s.publisher != nil {
		s.publisher.Publish(societyID, eventType, v)
	}
}
