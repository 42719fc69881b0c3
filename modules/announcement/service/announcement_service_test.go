package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"vfd-portal/core/errors"
	"vfd-portal/modules/announcement/dto"
	"vfd-portal/modules/announcement/entity"
	memberEntity "vfd-portal/modules/member/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAnnouncementRepo struct {
	items     []entity.Announcement
	createErr error
}

func (r *memoryAnnouncementRepo) Create(_ context.Context, a *entity.Announcement) error {
	if r.createErr != nil {
		return r.createErr
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	r.items = append(r.items, *a)
	return nil
}

func (r *memoryAnnouncementRepo) ListActive(_ context.Context, now time.Time) ([]entity.Announcement, error) {
	var out []entity.Announcement
	for i := range r.items {
		if r.items[i].Active(now) {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *memoryAnnouncementRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestCreateAnnouncement(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	admin := &memberEntity.Actor{AuthID: uuid.New(), Email: "chief@coolspringsvfd.org", Role: memberEntity.RoleAdmin}
	member := &memberEntity.Actor{AuthID: uuid.New(), Role: memberEntity.RoleMember}

	tests := []struct {
		name     string
		actor    *memberEntity.Actor
		req      dto.CreateAnnouncementRequest
		wantCode errors.ErrorCode
	}{
		{name: "admin posts", actor: admin, req: dto.CreateAnnouncementRequest{Title: "Drill", Content: "<p>Tuesday</p>", ExpiresAt: &tomorrow}},
		{name: "no expiry", actor: admin, req: dto.CreateAnnouncementRequest{Title: "Drill", Content: "<p>Tuesday</p>"}},
		{name: "member forbidden", actor: member, req: dto.CreateAnnouncementRequest{Title: "Drill", Content: "x"}, wantCode: errors.ErrForbidden},
		{name: "missing title", actor: admin, req: dto.CreateAnnouncementRequest{Content: "x"}, wantCode: errors.ErrInvalidInput},
		{name: "expired", actor: admin, req: dto.CreateAnnouncementRequest{Title: "Drill", Content: "x", ExpiresAt: &yesterday}, wantCode: errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAnnouncementService(&memoryAnnouncementRepo{})
			svc.now = func() time.Time { return now }

			got, appErr := svc.Create(context.Background(), tt.actor, &tt.req)
			if tt.wantCode != "" {
				require.NotNil(t, appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
				return
			}
			require.Nil(t, appErr)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.actor.AuthID, got.UserID)
			assert.Equal(t, tt.actor.Email, got.CreatedBy)
		})
	}
}

func TestPublishStoreFailure(t *testing.T) {
	svc := NewAnnouncementService(&memoryAnnouncementRepo{createErr: stderrors.New("connection reset")})
	author := &memberEntity.Actor{AuthID: uuid.New(), Role: memberEntity.RoleMember}

	_, appErr := svc.Publish(context.Background(), author, &dto.CreateAnnouncementRequest{Title: "t", Content: "c"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCreateFailed, appErr.Code)
	assert.Contains(t, appErr.Message, "connection reset")
}

func TestListActiveHidesExpired(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	repo := &memoryAnnouncementRepo{items: []entity.Announcement{
		{ID: uuid.New(), Title: "old", ExpiresAt: &past},
		{ID: uuid.New(), Title: "current", ExpiresAt: &future},
		{ID: uuid.New(), Title: "forever"},
	}}
	svc := NewAnnouncementService(repo)
	svc.now = func() time.Time { return now }

	got, appErr := svc.ListActive(context.Background())
	require.Nil(t, appErr)
	require.Len(t, got, 2)
	assert.Equal(t, "current", got[0].Title)
	assert.Equal(t, "forever", got[1].Title)
}

func TestDeleteAnnouncement(t *testing.T) {
	repo := &memoryAnnouncementRepo{}
	svc := NewAnnouncementService(repo)
	admin := &memberEntity.Actor{AuthID: uuid.New(), Role: memberEntity.RoleWebmaster}

	created, appErr := svc.Create(context.Background(), admin, &dto.CreateAnnouncementRequest{Title: "t", Content: "c"})
	require.Nil(t, appErr)

	member := &memberEntity.Actor{AuthID: uuid.New(), Role: memberEntity.RoleMember}
	appErr = svc.Delete(context.Background(), member, created.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	require.Nil(t, svc.Delete(context.Background(), admin, created.ID))

	appErr = svc.Delete(context.Background(), admin, created.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
