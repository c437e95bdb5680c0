package exhibitions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/domain/events"
	"chitrakalakar-app/internal/domain/exhibitions"
	"chitrakalakar-app/internal/domain/works"
	"chitrakalakar-app/internal/service"
	"chitrakalakar-app/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store interface {
	FindArtworks(ctx context.Context, ids []string) (map[string]works.Artwork, error)
	MarkArtworksForExhibition(ctx context.Context, ids []string) error
	CreateExhibition(ctx context.Context, e *exhibitions.Exhibition) error
	FindExhibition(ctx context.Context, id string) (*exhibitions.Exhibition, error)
	ListExhibitions(ctx context.Context, f store.ExhibitionFilter) ([]exhibitions.Exhibition, error)
	ArchiveExhibition(ctx context.Context, id string, from exhibitions.Status, archivedAt, expiresAt time.Time) (bool, error)
	TransitionExhibition(ctx context.Context, id string, from, to exhibitions.Status) (bool, error)
}

type CreateInput struct {
	ArtistID    string
	Name        string
	Description *string
	StartDate   time.Time
	// EndDate defaults to StartDate plus DaysPaid days.
	EndDate    time.Time
	ArtworkIDs []string
	DaysPaid   int
}

type AdvanceReport struct {
	Activated int
	Completed int
}

// Scheduler owns exhibition fees, the display schedule and the archive window.
type Scheduler struct {
	store Store
	fees  exhibitions.FeeSchedule
	deps  service.Deps
}

func New(st Store, fees exhibitions.FeeSchedule, deps service.Deps) *Scheduler {
	return &Scheduler{store: st, fees: fees, deps: deps.WithDefaults()}
}

// Create registers an unapproved upcoming exhibition. Fees are priced from
// days paid once, here.
func (s *Scheduler) Create(ctx context.Context, in CreateInput) (*exhibitions.Exhibition, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: exhibition name is required", domain.ErrInvalidInput)
	}
	fees, err := s.fees.FeesFor(in.DaysPaid)
	if err != nil {
		return nil, err
	}
	if in.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", domain.ErrInvalidInput)
	}
	end := in.EndDate
	if end.IsZero() {
		end = in.StartDate.Add(time.Duration(in.DaysPaid) * exhibitions.Day)
	}
	if !end.After(in.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}

	ids := dedupe(in.ArtworkIDs)
	found, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (map[string]works.Artwork, error) {
		return s.store.FindArtworks(c, ids)
	})
	if err != nil {
		return nil, fmt.Errorf("load exhibition artworks: %w", err)
	}
	for _, id := range ids {
		aw, ok := found[id]
		if !ok || aw.ArtistID != in.ArtistID {
			return nil, fmt.Errorf("artwork %s: %w", id, domain.ErrNotFound)
		}
	}

	e := &exhibitions.Exhibition{
		ID:          uuid.NewString(),
		ArtistID:    in.ArtistID,
		Name:        name,
		Description: in.Description,
		StartDate:   in.StartDate.UTC(),
		EndDate:     end.UTC(),
		ArtworkIDs:  ids,
		Status:      exhibitions.StatusUpcoming,
		DaysPaid:    in.DaysPaid,
		Fees:        fees,
	}
	if err := domain.Do(ctx, s.deps.Timeout, func(c context.Context) error {
		return s.store.CreateExhibition(c, e)
	}); err != nil {
		return nil, fmt.Errorf("create exhibition: %w", err)
	}
	if err := domain.Do(ctx, s.deps.Timeout, func(c context.Context) error {
		return s.store.MarkArtworksForExhibition(c, ids)
	}); err != nil {
		s.deps.Log.Warn("flag exhibition artworks", zap.String("exhibition_id", e.ID), zap.Error(err))
	}

	s.deps.Metrics.ExhibitionCreated()
	s.deps.Log.Info("exhibition created",
		zap.String("exhibition_id", e.ID), zap.Int("days_paid", e.DaysPaid), zap.Int64("fees", e.Fees))
	s.deps.Emit(ctx, events.ExhibitionCreated, e.ID, map[string]string{"artist_id": e.ArtistID})
	return e, nil
}

// Archive closes an exhibition and opens its free archive window, as long as
// the days it was paid for.
func (s *Scheduler) Archive(ctx context.Context, exhibitionID string) (*exhibitions.Exhibition, error) {
	e, err := s.Get(ctx, exhibitionID)
	if err != nil {
		return nil, err
	}
	if !exhibitions.CanArchive(e.Status) {
		return nil, fmt.Errorf("%w: exhibition %s is %s", domain.ErrInvalidTransition, e.ID, e.Status)
	}

	archivedAt, expiresAt := exhibitions.ArchiveWindow(s.deps.Now(), e.DaysPaid)
	from := e.Status
	ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
		return s.store.ArchiveExhibition(c, e.ID, from, archivedAt, expiresAt)
	})
	if err != nil {
		return nil, fmt.Errorf("archive exhibition %s: %w", e.ID, err)
	}
	if !ok {
		if _, err := s.Get(ctx, exhibitionID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: exhibition %s changed concurrently", domain.ErrInvalidTransition, e.ID)
	}

	e.Status = exhibitions.StatusArchived
	e.ArchivedAt = &archivedAt
	e.ArchiveExpiresAt = &expiresAt

	s.deps.Metrics.ExhibitionTransition(string(exhibitions.StatusArchived))
	s.deps.Log.Info("exhibition archived",
		zap.String("exhibition_id", e.ID), zap.Time("archive_expires_at", expiresAt))
	s.deps.Emit(ctx, events.ExhibitionArchived, e.ID, map[string]string{
		"archive_expires_at": expiresAt.Format(time.RFC3339),
	})
	return e, nil
}

// Advance moves paid approved exhibitions through their display schedule:
// upcoming to active once started, active to completed once ended.
func (s *Scheduler) Advance(ctx context.Context) (AdvanceReport, error) {
	var rep AdvanceReport
	yes := true
	live, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]exhibitions.Exhibition, error) {
		return s.store.ListExhibitions(c, store.ExhibitionFilter{
			Statuses:   []exhibitions.Status{exhibitions.StatusUpcoming, exhibitions.StatusActive},
			IsApproved: &yes,
		})
	})
	if err != nil {
		return rep, fmt.Errorf("list scheduled exhibitions: %w", err)
	}

	now := s.deps.Now()
	var errs []error
	for _, e := range live {
		var to exhibitions.Status
		var typ string
		switch {
		case e.ShouldActivate(now):
			to, typ = exhibitions.StatusActive, events.ExhibitionActivated
		case e.ShouldComplete(now):
			to, typ = exhibitions.StatusCompleted, events.ExhibitionCompleted
		default:
			continue
		}

		ok, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (bool, error) {
			return s.store.TransitionExhibition(c, e.ID, e.Status, to)
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("exhibition %s: %w", e.ID, err))
			continue
		}
		if !ok {
			continue
		}
		if to == exhibitions.StatusActive {
			rep.Activated++
		} else {
			rep.Completed++
		}
		s.deps.Metrics.ExhibitionTransition(string(to))
		s.deps.Emit(ctx, typ, e.ID, map[string]string{"from": string(e.Status), "to": string(to)})
	}
	return rep, errors.Join(errs...)
}

func (s *Scheduler) Get(ctx context.Context, id string) (*exhibitions.Exhibition, error) {
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) (*exhibitions.Exhibition, error) {
		return s.store.FindExhibition(c, id)
	})
}

// GetPublic hides unapproved exhibitions and archives whose window closed.
func (s *Scheduler) GetPublic(ctx context.Context, id string) (*exhibitions.Exhibition, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.IsApproved || (e.Status == exhibitions.StatusArchived && !e.IsArchiveVisible(s.deps.Now())) {
		return nil, fmt.Errorf("exhibition %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

// ListArchived returns archived exhibitions whose archive window is still open.
func (s *Scheduler) ListArchived(ctx context.Context) ([]exhibitions.Exhibition, error) {
	all, err := s.list(ctx, store.ExhibitionFilter{Statuses: []exhibitions.Status{exhibitions.StatusArchived}})
	if err != nil {
		return nil, err
	}
	now := s.deps.Now()
	out := make([]exhibitions.Exhibition, 0, len(all))
	for _, e := range all {
		if e.IsArchiveVisible(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Scheduler) ListActive(ctx context.Context) ([]exhibitions.Exhibition, error) {
	yes := true
	return s.list(ctx, store.ExhibitionFilter{
		Statuses:   []exhibitions.Status{exhibitions.StatusActive},
		IsApproved: &yes,
	})
}

// ListPublic returns approved exhibitions that are running or about to.
func (s *Scheduler) ListPublic(ctx context.Context) ([]exhibitions.Exhibition, error) {
	yes := true
	return s.list(ctx, store.ExhibitionFilter{
		Statuses:   []exhibitions.Status{exhibitions.StatusUpcoming, exhibitions.StatusActive},
		IsApproved: &yes,
	})
}

func (s *Scheduler) ListForArtist(ctx context.Context, artistID string) ([]exhibitions.Exhibition, error) {
	return s.list(ctx, store.ExhibitionFilter{ArtistID: artistID})
}

func (s *Scheduler) list(ctx context.Context, f store.ExhibitionFilter) ([]exhibitions.Exhibition, error) {
	return domain.Call(ctx, s.deps.Timeout, func(c context.Context) ([]exhibitions.Exhibition, error) {
		return s.store.ListExhibitions(c, f)
	})
}

// Artworks resolves an exhibition's artwork list in order. Ids of deleted or
// unapproved artworks are skipped.
func (s *Scheduler) Artworks(ctx context.Context, e exhibitions.Exhibition) ([]works.Artwork, error) {
	found, err := domain.Call(ctx, s.deps.Timeout, func(c context.Context) (map[string]works.Artwork, error) {
		return s.store.FindArtworks(c, e.ArtworkIDs)
	})
	if err != nil {
		return nil, err
	}
	out := make([]works.Artwork, 0, len(e.ArtworkIDs))
	for _, id := range e.ArtworkIDs {
		if aw, ok := found[id]; ok && aw.PubliclyVisible() {
			out = append(out, aw)
		}
	}
	return out, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
