package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	coreErrors "vfd-portal/core/errors"
	announcementDto "vfd-portal/modules/announcement/dto"
	announcementEntity "vfd-portal/modules/announcement/entity"
	eventEntity "vfd-portal/modules/event/entity"
	memberEntity "vfd-portal/modules/member/entity"
	"vfd-portal/modules/signup/entity"
	"vfd-portal/modules/signup/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type memorySheetRepo struct {
	mu     sync.Mutex
	sheets map[uuid.UUID]*entity.SignUpSheet
	names  map[uuid.UUID]string

	createErr error
	deleteErr error
	// loseSwaps makes every conditional write report a lost race.
	loseSwaps bool
	swaps     atomic.Int32
}

func newMemorySheetRepo() *memorySheetRepo {
	return &memorySheetRepo{
		sheets: map[uuid.UUID]*entity.SignUpSheet{},
		names:  map[uuid.UUID]string{},
	}
}

// seed stores a sheet directly and returns its id.
func (r *memorySheetRepo) seed(sheet entity.SignUpSheet) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sheet.ID == uuid.Nil {
		sheet.ID = uuid.New()
	}
	sheet.Groups = sheet.Groups.Clone()
	r.sheets[sheet.ID] = &sheet
	return sheet.ID
}

func (r *memorySheetRepo) snapshot(id uuid.UUID) *entity.SignUpSheet {
	r.mu.Lock()
	defer r.mu.Unlock()
	sheet, ok := r.sheets[id]
	if !ok {
		return nil
	}
	out := *sheet
	out.Groups = sheet.Groups.Clone()
	return &out
}

func (r *memorySheetRepo) Create(_ context.Context, f entity.SheetFields) (*entity.SignUpSheet, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	contacts := pq.StringArray{}
	for _, id := range f.PointOfContact {
		contacts = append(contacts, id.String())
	}
	sheet := entity.SignUpSheet{
		Title: f.Title, Status: f.Status, EventDate: f.EventDate, StartTime: f.StartTime,
		EndTime: f.EndTime, SignUpBy: f.SignUpBy, PointOfContact: contacts, LocationID: f.LocationID,
		Memo: f.Memo, PushToCalendar: f.PushToCalendar, AllowNotes: f.AllowNotes,
		AllowRemoval: f.AllowRemoval, DisplaySlotNumbers: f.DisplaySlotNumbers,
		Groups: f.Groups, CreatedBy: f.CreatedBy, CalendarID: f.CalendarID,
	}
	sheet.CreatedAt = time.Now()
	sheet.UpdatedAt = sheet.CreatedAt
	id := r.seed(sheet)
	return r.snapshot(id), nil
}

func (r *memorySheetRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.SignUpSheet, error) {
	if sheet := r.snapshot(id); sheet != nil {
		return sheet, nil
	}
	return nil, repository.ErrSheetNotFound
}

func (r *memorySheetRepo) List(_ context.Context, current bool, now time.Time) ([]entity.SignUpSheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.SignUpSheet{}
	for _, sheet := range r.sheets {
		if !sheet.SignUpBy.Before(now) == current {
			out = append(out, *sheet)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if current {
			return out[i].SignUpBy.Before(out[j].SignUpBy)
		}
		return out[i].SignUpBy.After(out[j].SignUpBy)
	})
	return out, nil
}

func (r *memorySheetRepo) GetGroups(_ context.Context, id uuid.UUID) (entity.Groups, int64, error) {
	sheet := r.snapshot(id)
	if sheet == nil {
		return nil, 0, repository.ErrSheetNotFound
	}
	return sheet.Groups, sheet.Version, nil
}

func (r *memorySheetRepo) CompareAndSwapGroups(_ context.Context, id uuid.UUID, groups entity.Groups, version int64) (bool, error) {
	r.swaps.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loseSwaps {
		return false, nil
	}
	sheet, ok := r.sheets[id]
	if !ok || sheet.Version != version {
		return false, nil
	}
	sheet.Groups = groups.Clone()
	sheet.Version++
	return true, nil
}

func (r *memorySheetRepo) GetCalendarID(_ context.Context, id uuid.UUID) (*uuid.UUID, error) {
	sheet := r.snapshot(id)
	if sheet == nil {
		return nil, repository.ErrSheetNotFound
	}
	return sheet.CalendarID, nil
}

func (r *memorySheetRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	if _, ok := r.sheets[id]; !ok {
		return false, nil
	}
	delete(r.sheets, id)
	return true, nil
}

func (r *memorySheetRepo) MemberNames(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := map[uuid.UUID]string{}
	for _, id := range ids {
		if name, ok := r.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

type fakeEvents struct {
	mu        sync.Mutex
	created   []eventEntity.EventFields
	deleted   []uuid.UUID
	locations map[uuid.UUID]string

	createErr *coreErrors.AppError
	deleteErr *coreErrors.AppError
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{locations: map[uuid.UUID]string{}}
}

func (f *fakeEvents) Create(_ context.Context, _ *memberEntity.Actor, fields eventEntity.EventFields) (*eventEntity.Event, *coreErrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, fields)
	ev := &eventEntity.Event{Title: fields.Title, StartTime: fields.StartTime, EndTime: fields.EndTime, IsPublic: fields.IsPublic}
	ev.ID = uuid.New()
	return ev, nil
}

func (f *fakeEvents) Delete(_ context.Context, _ *memberEntity.Actor, id uuid.UUID) *coreErrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEvents) GetLocation(_ context.Context, id uuid.UUID) (*eventEntity.Location, *coreErrors.AppError) {
	name, ok := f.locations[id]
	if !ok {
		return nil, coreErrors.NewAppError(coreErrors.ErrNotFound, "Location not found", nil)
	}
	return &eventEntity.Location{ID: id, Name: name}, nil
}

type fakeAnnouncements struct {
	published []announcementDto.CreateAnnouncementRequest
	fail      bool
}

func (f *fakeAnnouncements) Publish(_ context.Context, author *memberEntity.Actor, req *announcementDto.CreateAnnouncementRequest) (*announcementEntity.Announcement, *coreErrors.AppError) {
	if f.fail {
		return nil, coreErrors.NewAppError(coreErrors.ErrCreateFailed, "Failed to create announcement", errors.New("insert failed"))
	}
	f.published = append(f.published, *req)
	return &announcementEntity.Announcement{ID: uuid.New(), Title: req.Title, Content: req.Content, UserID: author.AuthID}, nil
}
