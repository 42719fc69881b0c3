package entity

import (
	"testing"

	"vfd-portal/core/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGroups() Groups {
	return Groups{
		{Name: "Kitchen Crew", Positions: []Position{
			{Name: "Griddle", MaxSlots: 2, Members: []SlotMember{{MemberID: uuid.New()}}},
			{Name: "Dishes", MaxSlots: -1},
		}},
		{Name: "Front of House", Positions: []Position{
			{Name: "Cashier", MaxSlots: 1, Members: []SlotMember{{MemberID: uuid.New()}}},
			{Name: "Greeter", MaxSlots: 0, Members: []SlotMember{{MemberID: uuid.New()}, {MemberID: uuid.New()}}},
		}},
	}
}

func TestPositionAvailable(t *testing.T) {
	one := []SlotMember{{MemberID: uuid.New()}}
	tests := []struct {
		name      string
		position  Position
		available bool
		remaining int
	}{
		{name: "unlimited negative", position: Position{MaxSlots: -1, Members: one}, available: true, remaining: -1},
		{name: "unlimited zero", position: Position{MaxSlots: 0, Members: one}, available: true, remaining: -1},
		{name: "room left", position: Position{MaxSlots: 2, Members: one}, available: true, remaining: 1},
		{name: "full", position: Position{MaxSlots: 1, Members: one}, available: false, remaining: 0},
		{name: "over capacity from legacy data", position: Position{MaxSlots: 1, Members: append(one, SlotMember{})}, available: false, remaining: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.available, tt.position.Available())
			assert.Equal(t, tt.remaining, tt.position.Remaining())
		})
	}
}

func TestWithMember(t *testing.T) {
	newcomer := SlotMember{MemberID: uuid.New(), Note: "early shift", RemindMe: true}

	t.Run("appends to a copy", func(t *testing.T) {
		groups := sampleGroups()
		updated, appErr := groups.WithMember("Kitchen Crew", "Griddle", newcomer)
		require.Nil(t, appErr)

		assert.Len(t, groups[0].Positions[0].Members, 1, "source must not change")
		require.Len(t, updated[0].Positions[0].Members, 2)
		assert.Equal(t, newcomer, updated[0].Positions[0].Members[1])
		assert.Equal(t, groups[1], updated[1])
	})

	tests := []struct {
		name     string
		group    string
		position string
		wantCode errors.ErrorCode
	}{
		{name: "full", group: "Front of House", position: "Cashier", wantCode: errors.ErrNoSlotsAvailable},
		{name: "unknown group", group: "Engine 2", position: "Cashier", wantCode: errors.ErrPositionNotFound},
		{name: "unknown position", group: "Kitchen Crew", position: "Coffee", wantCode: errors.ErrPositionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := sampleGroups()
			updated, appErr := groups.WithMember(tt.group, tt.position, newcomer)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Nil(t, updated)
		})
	}
}

func TestTotalsAndAvailability(t *testing.T) {
	groups := sampleGroups()

	total, filled := groups.Totals()
	assert.Equal(t, 3, total)
	assert.Equal(t, 4, filled)

	open := groups.AvailablePositions("Front of House")
	require.Len(t, open, 1)
	assert.Equal(t, "Greeter", open[0].Name)
	assert.Len(t, groups.AvailablePositions("Kitchen Crew"), 2)
	assert.Empty(t, groups.AvailablePositions("Engine 2"))

	assert.Len(t, groups.MemberIDs(), 4)
}

func TestValidateGroups(t *testing.T) {
	tests := []struct {
		name    string
		groups  Groups
		wantErr bool
	}{
		{name: "valid", groups: Groups{{Name: "Kitchen", Positions: []Position{{Name: "Griddle", MaxSlots: 2}, {Name: "Dishes", MaxSlots: -1}}}}},
		{name: "empty", groups: Groups{}, wantErr: true},
		{name: "unnamed group", groups: Groups{{Name: " ", Positions: []Position{{Name: "Griddle"}}}}, wantErr: true},
		{name: "group without positions", groups: Groups{{Name: "Kitchen"}}, wantErr: true},
		{name: "unnamed position", groups: Groups{{Name: "Kitchen", Positions: []Position{{Name: ""}}}}, wantErr: true},
		{name: "duplicate group", groups: Groups{{Name: "Kitchen", Positions: []Position{{Name: "A"}}}, {Name: "Kitchen", Positions: []Position{{Name: "B"}}}}, wantErr: true},
		{name: "duplicate position", groups: Groups{{Name: "Kitchen", Positions: []Position{{Name: "A"}, {Name: "A"}}}}, wantErr: true},
		{name: "bad limit", groups: Groups{{Name: "Kitchen", Positions: []Position{{Name: "A", MaxSlots: -2}}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ValidateGroups(tt.groups)
			if tt.wantErr {
				require.NotNil(t, appErr)
				assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
				return
			}
			assert.Nil(t, appErr)
		})
	}
}

func TestGroupsScanStoredDocument(t *testing.T) {
	memberID := uuid.MustParse("6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f")
	stored := `[{"name":"Kitchen Crew","positions":[{"name":"Griddle","maxSlots":2,` +
		`"members":[{"id":"6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f","note":"early","remindMe":true}]}]}]`

	var groups Groups
	require.NoError(t, groups.Scan([]byte(stored)))
	require.Len(t, groups, 1)
	position := groups[0].Positions[0]
	assert.Equal(t, 2, position.MaxSlots)
	assert.Equal(t, SlotMember{MemberID: memberID, Note: "early", RemindMe: true}, position.Members[0])

	var empty Groups
	require.NoError(t, empty.Scan(nil))
	assert.NotNil(t, empty)

	assert.Error(t, groups.Scan(42))

	value, err := Groups(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}
