package service

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"vfd-portal/core/constants"
	"vfd-portal/core/errors"
	"vfd-portal/core/logger"
	"vfd-portal/core/utils"
	announcementDto "vfd-portal/modules/announcement/dto"
	announcementEntity "vfd-portal/modules/announcement/entity"
	eventEntity "vfd-portal/modules/event/entity"
	memberEntity "vfd-portal/modules/member/entity"
	"vfd-portal/modules/signup/dto"
	"vfd-portal/modules/signup/entity"
	"vfd-portal/modules/signup/repository"

	"github.com/google/uuid"
)

// EventSynchronizer creates and removes the companion event of a sheet.
type EventSynchronizer interface {
	Create(ctx context.Context, actor *memberEntity.Actor, fields eventEntity.EventFields) (*eventEntity.Event, *errors.AppError)
	Delete(ctx context.Context, actor *memberEntity.Actor, id uuid.UUID) *errors.AppError
	GetLocation(ctx context.Context, id uuid.UUID) (*eventEntity.Location, *errors.AppError)
}

type AnnouncementPublisher interface {
	Publish(ctx context.Context, author *memberEntity.Actor, req *announcementDto.CreateAnnouncementRequest) (*announcementEntity.Announcement, *errors.AppError)
}

const announcementWarning = "Sign-up sheet created but failed to create announcement"

type SignUpService struct {
	repo          repository.SignUpRepositoryInterface
	events        EventSynchronizer
	announcements AnnouncementPublisher
	loc           *time.Location
	maxAttempts   int
	now           func() time.Time
}

func NewSignUpService(repo repository.SignUpRepositoryInterface, events EventSynchronizer, announcements AnnouncementPublisher, loc *time.Location) *SignUpService {
	if loc == nil {
		loc = time.UTC
	}
	return &SignUpService{
		repo:          repo,
		events:        events,
		announcements: announcements,
		loc:           loc,
		maxAttempts:   constants.SignUpMaxAttempts,
		now:           time.Now,
	}
}

// SignUp adds the actor to one position. Each attempt reads the groups fresh,
// re-checks capacity and writes only if no other sign-up landed in between.
func (s *SignUpService) SignUp(ctx context.Context, actor *memberEntity.Actor, sheetID uuid.UUID, req *dto.SignUpRequest) (*entity.SignUpSheet, *errors.AppError) {
	if !actor.Can(memberEntity.CapSignUp) {
		return nil, errors.NewAppError(errors.ErrForbidden, "You are not allowed to sign up", nil)
	}
	if strings.TrimSpace(req.Group) == "" || strings.TrimSpace(req.Position) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Please select a group and position", nil)
	}

	sheet, appErr := s.getSheet(ctx, sheetID)
	if appErr != nil {
		return nil, appErr
	}
	if !sheet.Open(s.now()) {
		return nil, errors.NewAppError(errors.ErrSignUpClosed, "Sign-ups for this sheet are closed", nil)
	}

	member := entity.SlotMember{MemberID: actor.MemberID, RemindMe: req.RemindMe}
	if sheet.AllowNotes {
		member.Note = strings.TrimSpace(req.Note)
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		groups, version, err := s.repo.GetGroups(ctx, sheetID)
		if stderrors.Is(err, repository.ErrSheetNotFound) {
			return nil, errors.NewAppError(errors.ErrNotFound, "Sign-up sheet not found", nil)
		}
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch current sheet: "+err.Error(), err)
		}

		if groups.HasMember(req.Group, req.Position, actor.MemberID) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "You are already signed up for this position", nil)
		}
		updated, appErr := groups.WithMember(req.Group, req.Position, member)
		if appErr != nil {
			return nil, appErr
		}

		swapped, err := s.repo.CompareAndSwapGroups(ctx, sheetID, updated, version)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update sheet: "+err.Error(), err)
		}
		if swapped {
			sheet.Groups = updated
			sheet.Version = version + 1
			return sheet, nil
		}
		logger.Debug("SignUpService:SignUp:VersionConflict", "sheet_id", sheetID, "attempt", attempt)
	}

	logger.Warn("SignUpService:SignUp:GaveUp", "sheet_id", sheetID, "attempts", s.maxAttempts)
	return nil, errors.NewAppError(errors.ErrConcurrentUpdate, "The sign-up sheet is busy, please try again", nil)
}

// Create validates the request, creates the companion event, inserts the sheet
// and optionally posts an announcement. The returned warning is set when the
// sheet exists but the announcement could not be posted.
func (s *SignUpService) Create(ctx context.Context, actor *memberEntity.Actor, req *dto.CreateSheetRequest) (*entity.SignUpSheet, string, *errors.AppError) {
	if !actor.Can(memberEntity.CapCreateSignUpSheet) {
		return nil, "", errors.NewAppError(errors.ErrForbidden, "You are not allowed to create sign-up sheets", nil)
	}

	fields, appErr := s.sheetFields(actor, req)
	if appErr != nil {
		return nil, "", appErr
	}

	var expiresAt *time.Time
	if req.CreateAnnouncement {
		expiry, appErr := s.announcementExpiry(req, fields.EndTime)
		if appErr != nil {
			return nil, "", appErr
		}
		expiresAt = &expiry
	}

	eventFields := eventEntity.EventFields{
		Title:      fields.Title,
		StartTime:  fields.StartTime,
		EndTime:    fields.EndTime,
		LocationID: fields.LocationID,
		IsPublic:   true,
	}
	if fields.Memo != "" {
		memo := fields.Memo
		eventFields.Description = &memo
	}
	event, appErr := s.events.Create(ctx, actor, eventFields)
	if appErr != nil {
		return nil, "", appErr
	}
	fields.CalendarID = &event.ID

	sheet, err := s.repo.Create(ctx, fields)
	if err != nil {
		if delErr := s.events.Delete(ctx, actor, event.ID); delErr != nil {
			logger.Error("SignUpService:Create:Compensate:Error", delErr, "event_id", event.ID)
		}
		return nil, "", errors.NewAppError(errors.ErrCreateFailed, "Failed to create sign-up sheet: "+err.Error(), err)
	}

	if !req.CreateAnnouncement || s.announcements == nil {
		return sheet, "", nil
	}

	locationName := ""
	if fields.LocationID != nil {
		if location, appErr := s.events.GetLocation(ctx, *fields.LocationID); appErr == nil {
			locationName = location.Name
		}
	}
	_, appErr = s.announcements.Publish(ctx, actor, &announcementDto.CreateAnnouncementRequest{
		Title:     AnnouncementTitle(sheet.Title),
		Content:   AnnouncementContent(sheet, locationName, s.loc),
		ExpiresAt: expiresAt,
	})
	if appErr != nil {
		logger.Warn("SignUpService:Create:Announcement:Error", appErr, "sheet_id", sheet.ID)
		return sheet, announcementWarning, nil
	}
	return sheet, "", nil
}

// Delete removes the companion event first. If that fails the sheet is kept
// so the two never drift apart.
func (s *SignUpService) Delete(ctx context.Context, actor *memberEntity.Actor, sheetID uuid.UUID) *errors.AppError {
	sheet, appErr := s.getSheet(ctx, sheetID)
	if appErr != nil {
		return appErr
	}
	if !actor.CanModify(sheet.CreatedBy, memberEntity.CapManageAnySignUpSheet) {
		return errors.NewAppError(errors.ErrForbidden, "You can only delete sign-up sheets you created", nil)
	}

	calendarID, err := s.repo.GetCalendarID(ctx, sheetID)
	if err != nil && !stderrors.Is(err, repository.ErrSheetNotFound) {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to fetch sign-up sheet: "+err.Error(), err)
	}
	if calendarID != nil {
		appErr := s.events.Delete(ctx, actor, *calendarID)
		if appErr != nil && appErr.Code != errors.ErrNotFound {
			return errors.NewAppError(errors.ErrCascadeDelete, "Failed to delete the sheet's calendar event: "+appErr.Message, appErr)
		}
	}

	found, err := s.repo.Delete(ctx, sheetID)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete sign-up sheet: "+err.Error(), err)
	}
	if !found {
		return errors.NewAppError(errors.ErrNotFound, "Sign-up sheet not found", nil)
	}
	return nil
}

func (s *SignUpService) Get(ctx context.Context, sheetID uuid.UUID) (*entity.SignUpSheet, map[uuid.UUID]string, *errors.AppError) {
	sheet, appErr := s.getSheet(ctx, sheetID)
	if appErr != nil {
		return nil, nil, appErr
	}
	names, err := s.repo.MemberNames(ctx, sheet.Groups.MemberIDs())
	if err != nil {
		logger.Warn("SignUpService:Get:MemberNames:Error", err, "sheet_id", sheetID)
		names = map[uuid.UUID]string{}
	}
	return sheet, names, nil
}

// List returns open sheets when current is set and closed ones otherwise.
func (s *SignUpService) List(ctx context.Context, current bool) ([]entity.SignUpSheet, *errors.AppError) {
	sheets, err := s.repo.List(ctx, current, s.now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch sign-up sheets", err)
	}
	return sheets, nil
}

func (s *SignUpService) getSheet(ctx context.Context, id uuid.UUID) (*entity.SignUpSheet, *errors.AppError) {
	sheet, err := s.repo.GetByID(ctx, id)
	if stderrors.Is(err, repository.ErrSheetNotFound) {
		return nil, errors.NewAppError(errors.ErrNotFound, "Sign-up sheet not found", nil)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch sign-up sheet: "+err.Error(), err)
	}
	return sheet, nil
}

func (s *SignUpService) sheetFields(actor *memberEntity.Actor, req *dto.CreateSheetRequest) (entity.SheetFields, *errors.AppError) {
	var fields entity.SheetFields

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fields, errors.NewAppError(errors.ErrInvalidInput, "Title is required", nil)
	}
	status := req.Status
	if status == "" {
		status = entity.StatusOnline
	}
	if !status.Valid() {
		return fields, errors.NewAppError(errors.ErrInvalidInput, "Status must be Online or Offline", nil)
	}

	start, err := utils.CombineDateAndTime(req.EventDate, req.StartTime, s.loc)
	if err != nil {
		return fields, errors.NewAppError(errors.ErrInvalidInput, "Invalid date format", err)
	}
	end, err := utils.CombineDateAndTime(req.EventDate, req.EndTime, s.loc)
	if err != nil {
		return fields, errors.NewAppError(errors.ErrInvalidInput, "Invalid date format", err)
	}
	signUpBy, err := utils.StartOfDay(req.SignUpBy, s.loc)
	if err != nil {
		return fields, errors.NewAppError(errors.ErrInvalidInput, "Invalid date format", err)
	}
	if !end.After(start) {
		return fields, errors.NewAppError(errors.ErrInvalidInput, "End time must be after start time", nil)
	}

	if appErr := entity.ValidateGroups(req.Groups); appErr != nil {
		return fields, appErr
	}
	groups := req.Groups.Clone()
	for gi := range groups {
		groups[gi].Name = strings.TrimSpace(groups[gi].Name)
		for pi := range groups[gi].Positions {
			groups[gi].Positions[pi].Name = strings.TrimSpace(groups[gi].Positions[pi].Name)
			groups[gi].Positions[pi].Members = []entity.SlotMember{}
		}
	}

	return entity.SheetFields{
		Title:              title,
		Status:             status,
		EventDate:          start,
		StartTime:          start,
		EndTime:            end,
		SignUpBy:           signUpBy,
		PointOfContact:     req.PointOfContact,
		LocationID:         req.LocationID,
		Memo:               strings.TrimSpace(req.Memo),
		PushToCalendar:     req.PushToCalendar,
		AllowNotes:         req.AllowNotes,
		AllowRemoval:       req.AllowRemoval,
		DisplaySlotNumbers: req.DisplaySlotNumbers,
		Groups:             groups,
		CreatedBy:          actor.AuthID,
	}, nil
}

// announcementExpiry defaults to the end of the activity.
func (s *SignUpService) announcementExpiry(req *dto.CreateSheetRequest, end time.Time) (time.Time, *errors.AppError) {
	if strings.TrimSpace(req.AnnouncementExpiresOn) == "" {
		return end, nil
	}
	expiry, err := utils.StartOfDay(req.AnnouncementExpiresOn, s.loc)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Please select a valid expiration date for the announcement", err)
	}
	if !expiry.After(s.now()) {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Announcement expiration date must be in the future", nil)
	}
	return expiry, nil
}
