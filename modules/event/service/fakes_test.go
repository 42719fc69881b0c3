package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	calendarService "vfd-portal/modules/calendar/service"
	"vfd-portal/modules/event/entity"

	"github.com/google/uuid"
)

type memoryEventRepo struct {
	mu        sync.Mutex
	events    map[uuid.UUID]*entity.Event
	locations map[uuid.UUID]*entity.Location

	createErr error
	setExtErr error
	deleteErr error
}

func newMemoryEventRepo() *memoryEventRepo {
	return &memoryEventRepo{
		events:    map[uuid.UUID]*entity.Event{},
		locations: map[uuid.UUID]*entity.Location{},
	}
}

func (r *memoryEventRepo) addLocation(name string) uuid.UUID {
	id := uuid.New()
	r.locations[id] = &entity.Location{ID: id, Name: name, CreatedAt: time.Now()}
	return id
}

func (r *memoryEventRepo) Create(_ context.Context, f entity.EventFields, owner uuid.UUID) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	ev := &entity.Event{
		Title: f.Title, Description: f.Description, StartTime: f.StartTime, EndTime: f.EndTime,
		LocationID: f.LocationID, IsPublic: f.IsPublic, CreatedBy: owner,
	}
	ev.ID = uuid.New()
	ev.CreatedAt = time.Now()
	ev.UpdatedAt = ev.CreatedAt
	stored := *ev
	r.events[ev.ID] = &stored
	return ev, nil
}

func (r *memoryEventRepo) Update(_ context.Context, id uuid.UUID, f entity.EventFields) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	ev.Title, ev.Description, ev.StartTime, ev.EndTime = f.Title, f.Description, f.StartTime, f.EndTime
	ev.LocationID, ev.IsPublic = f.LocationID, f.IsPublic
	out := *ev
	return &out, nil
}

func (r *memoryEventRepo) SetExternalID(_ context.Context, id uuid.UUID, externalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setExtErr != nil {
		return r.setExtErr
	}
	if ev, ok := r.events[id]; ok {
		ev.GCalEventID = &externalID
	}
	return nil
}

func (r *memoryEventRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	if _, ok := r.events[id]; !ok {
		return false, nil
	}
	delete(r.events, id)
	return true, nil
}

func (r *memoryEventRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	out := *ev
	return &out, nil
}

func (r *memoryEventRepo) details(ev *entity.Event) entity.EventDetails {
	d := entity.EventDetails{Event: *ev}
	if ev.LocationID != nil {
		if loc, ok := r.locations[*ev.LocationID]; ok {
			name := loc.Name
			d.LocationName = &name
		}
	}
	return d
}

func (r *memoryEventRepo) GetDetails(_ context.Context, id uuid.UUID) (*entity.EventDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	d := r.details(ev)
	return &d, nil
}

func (r *memoryEventRepo) List(_ context.Context, includePrivate bool) ([]entity.EventDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.EventDetails{}
	for _, ev := range r.events {
		if ev.IsPublic || includePrivate {
			out = append(out, r.details(ev))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memoryEventRepo) ListLocations(context.Context) ([]entity.Location, error) {
	out := []entity.Location{}
	for _, l := range r.locations {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryEventRepo) GetLocation(_ context.Context, id uuid.UUID) (*entity.Location, error) {
	if l, ok := r.locations[id]; ok {
		return l, nil
	}
	return nil, nil
}

var errMirrorDown = errors.New("google calendar unreachable")

type fakeMirror struct {
	nextID string
	fail   bool

	created []calendarService.EventInput
	updated map[string]calendarService.EventInput
	deleted []string
}

func newFakeMirror(nextID string) *fakeMirror {
	return &fakeMirror{nextID: nextID, updated: map[string]calendarService.EventInput{}}
}

func (m *fakeMirror) CreateCalendarEvent(_ context.Context, in calendarService.EventInput) (*calendarService.MirrorEvent, error) {
	m.created = append(m.created, in)
	if m.fail {
		return nil, errMirrorDown
	}
	return &calendarService.MirrorEvent{ID: m.nextID, Title: in.Title, Start: in.Start, End: in.End}, nil
}

func (m *fakeMirror) UpdateCalendarEvent(_ context.Context, externalID string, in calendarService.EventInput) (*calendarService.MirrorEvent, error) {
	m.updated[externalID] = in
	if m.fail {
		return nil, errMirrorDown
	}
	return &calendarService.MirrorEvent{ID: externalID}, nil
}

func (m *fakeMirror) DeleteCalendarEvent(_ context.Context, externalID string) error {
	m.deleted = append(m.deleted, externalID)
	if m.fail {
		return errMirrorDown
	}
	return nil
}
