package service

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"time"

	"vfd-portal/core/cache"
	"vfd-portal/core/errors"
	"vfd-portal/core/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	DefaultTokenURL    = "https://oauth2.googleapis.com/token"
	DefaultAPIEndpoint = "https://www.googleapis.com/calendar/v3/"
	CalendarEventScope = "https://www.googleapis.com/auth/calendar.events"

	upcomingLimit = 250
)

// BridgeConfig carries everything the bridge needs; nothing is read from the
// environment after construction.
type BridgeConfig struct {
	ServiceAccountEmail string
	PrivateKeyPEM       string
	CalendarID          string
	TimeZone            string
	TokenURL            string
	APIEndpoint         string
	Scope               string
}

func (c *BridgeConfig) applyDefaults() {
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.APIEndpoint == "" {
		c.APIEndpoint = DefaultAPIEndpoint
	}
	if c.Scope == "" {
		c.Scope = CalendarEventScope
	}
	if c.TimeZone == "" {
		c.TimeZone = "America/New_York"
	}
}

// EventInput is the field set mirrored to the external calendar.
type EventInput struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// MirrorEvent is an event as stored by the external calendar.
type MirrorEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status,omitempty"`
	HTMLLink    string    `json:"html_link,omitempty"`
}

// Bridge mirrors events into one Google calendar using a service account.
type Bridge struct {
	cfg      BridgeConfig
	loc      *time.Location
	svc      *calendar.Service
	notifier *Notifier
	now      func() time.Time
}

// NewBridge validates cfg and prepares an authenticated calendar client.
// tokenCache and notifier may be nil.
func NewBridge(ctx context.Context, cfg BridgeConfig, tokenCache cache.Cache, httpClient *http.Client, notifier *Notifier) (*Bridge, error) {
	cfg.applyDefaults()

	if cfg.ServiceAccountEmail == "" {
		return nil, fmt.Errorf("calendar bridge: service account email is required")
	}
	if cfg.CalendarID == "" {
		return nil, fmt.Errorf("calendar bridge: calendar id is required")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("calendar bridge: invalid private key: %w", err)
	}
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("calendar bridge: invalid time zone %q: %w", cfg.TimeZone, err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	b := &Bridge{cfg: cfg, loc: loc, notifier: notifier, now: time.Now}

	src := oauth2.ReuseTokenSource(nil, b.tokenSource(key, httpClient, tokenCache))
	client := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, httpClient), src)

	svc, err := calendar.NewService(ctx,
		option.WithHTTPClient(client),
		option.WithEndpoint(cfg.APIEndpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar bridge: failed to create calendar service: %w", err)
	}
	b.svc = svc

	logger.Info("Calendar bridge initialized",
		"service_account", cfg.ServiceAccountEmail,
		"calendar_id", cfg.CalendarID,
		"time_zone", cfg.TimeZone,
	)
	return b, nil
}

func (b *Bridge) tokenSource(key *rsa.PrivateKey, httpClient *http.Client, tokenCache cache.Cache) *serviceAccountSource {
	return &serviceAccountSource{
		email:      b.cfg.ServiceAccountEmail,
		scope:      b.cfg.Scope,
		tokenURL:   b.cfg.TokenURL,
		key:        key,
		httpClient: httpClient,
		cache:      tokenCache,
		now:        func() time.Time { return b.now() },
	}
}

func (b *Bridge) CreateCalendarEvent(ctx context.Context, in EventInput) (*MirrorEvent, error) {
	created, err := b.svc.Events.Insert(b.cfg.CalendarID, b.toGoogleEvent(in)).Context(ctx).Do()
	if err != nil {
		return nil, b.wrap("create", err)
	}
	b.publish(ChangeCreated, created.Id)
	return b.fromGoogleEvent(created), nil
}

func (b *Bridge) UpdateCalendarEvent(ctx context.Context, externalID string, in EventInput) (*MirrorEvent, error) {
	ev := b.toGoogleEvent(in)
	// cleared fields must still reach the API
	ev.ForceSendFields = []string{"Description", "Location"}

	updated, err := b.svc.Events.Patch(b.cfg.CalendarID, externalID, ev).Context(ctx).Do()
	if err != nil {
		return nil, b.wrap("update", err)
	}
	b.publish(ChangeUpdated, externalID)
	return b.fromGoogleEvent(updated), nil
}

func (b *Bridge) DeleteCalendarEvent(ctx context.Context, externalID string) error {
	if err := b.svc.Events.Delete(b.cfg.CalendarID, externalID).Context(ctx).Do(); err != nil {
		return b.wrap("delete", err)
	}
	b.publish(ChangeDeleted, externalID)
	return nil
}

func (b *Bridge) GetCalendarEvent(ctx context.Context, externalID string) (*MirrorEvent, error) {
	ev, err := b.svc.Events.Get(b.cfg.CalendarID, externalID).Context(ctx).Do()
	if err != nil {
		return nil, b.wrap("get", err)
	}
	return b.fromGoogleEvent(ev), nil
}

// ListCalendarEvents returns upcoming single events ordered by start time.
func (b *Bridge) ListCalendarEvents(ctx context.Context) ([]MirrorEvent, error) {
	res, err := b.svc.Events.List(b.cfg.CalendarID).
		TimeMin(b.now().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(upcomingLimit).
		Context(ctx).
		Do()
	if err != nil {
		return nil, b.wrap("list", err)
	}

	events := make([]MirrorEvent, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, *b.fromGoogleEvent(item))
	}
	return events, nil
}

func (b *Bridge) publish(kind ChangeKind, externalID string) {
	if b.notifier == nil {
		return
	}
	b.notifier.Publish(Change{Kind: kind, ExternalID: externalID, At: b.now()})
}

func (b *Bridge) toGoogleEvent(in EventInput) *calendar.Event {
	return &calendar.Event{
		Summary:     in.Title,
		Description: in.Description,
		Location:    in.Location,
		Start: &calendar.EventDateTime{
			DateTime: in.Start.In(b.loc).Format(time.RFC3339),
			TimeZone: b.cfg.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: in.End.In(b.loc).Format(time.RFC3339),
			TimeZone: b.cfg.TimeZone,
		},
	}
}

func (b *Bridge) fromGoogleEvent(ev *calendar.Event) *MirrorEvent {
	return &MirrorEvent{
		ID:          ev.Id,
		Title:       ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       b.parseEventTime(ev.Start),
		End:         b.parseEventTime(ev.End),
		Status:      ev.Status,
		HTMLLink:    ev.HtmlLink,
	}
}

func (b *Bridge) parseEventTime(dt *calendar.EventDateTime) time.Time {
	if dt == nil {
		return time.Time{}
	}
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return t
		}
	}
	if dt.Date != "" {
		if t, err := time.ParseInLocation("2006-01-02", dt.Date, b.loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// wrap turns API and token failures into an AppError carrying the upstream message.
func (b *Bridge) wrap(op string, err error) *errors.AppError {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := err.Error()
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		msg = gErr.Message
		if msg == "" {
			msg = http.StatusText(gErr.Code)
		}
	}
	return errors.NewAppError(errors.ErrExternalCalendar,
		fmt.Sprintf("Google Calendar %s failed: %s", op, msg), err)
}
