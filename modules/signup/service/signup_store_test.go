package service

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"vfd-portal/core/database"
	"vfd-portal/core/errors"
	memberEntity "vfd-portal/modules/member/entity"
	"vfd-portal/modules/signup/entity"
	"vfd-portal/modules/signup/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sign-up against the SQL repository: the conditional UPDATE decides the
// winner and a lost swap re-reads the groups before writing again.

var (
	sheetQuery  = regexp.QuoteMeta(`SELECT id, title, status`)
	groupsQuery = regexp.QuoteMeta(`SELECT groups, version FROM signup_sheets WHERE id = $1`)
	swapQuery   = regexp.QuoteMeta(`UPDATE signup_sheets SET groups = $1, version = version + 1, updated_at = NOW() WHERE id = $2 AND version = $3`)
)

func newSQLService(t *testing.T) (*SignUpService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewSignUpRepository(database.NewDatabase(sqlx.NewDb(db, "postgres")))
	svc := NewSignUpService(repo, newFakeEvents(), &fakeAnnouncements{}, time.UTC)
	svc.now = func() time.Time { return fixedNow }
	return svc, mock
}

func groupsJSON(t *testing.T, groups entity.Groups) []byte {
	t.Helper()
	raw, err := json.Marshal(groups)
	require.NoError(t, err)
	return raw
}

func expectSheet(t *testing.T, mock sqlmock.Sqlmock, id uuid.UUID, groups entity.Groups, version int64) {
	mock.ExpectQuery(sheetQuery).WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "sign_up_by", "groups", "version"}).
			AddRow(id.String(), "Pancake Breakfast", fixedNow.Add(72*time.Hour), groupsJSON(t, groups), version))
}

func expectGroups(t *testing.T, mock sqlmock.Sqlmock, id uuid.UUID, groups entity.Groups, version int64) {
	mock.ExpectQuery(groupsQuery).WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"groups", "version"}).AddRow(groupsJSON(t, groups), version))
}

func withMembers(maxSlots int, ids ...uuid.UUID) entity.Groups {
	groups := kitchenCrew(maxSlots)
	for _, id := range ids {
		groups[0].Positions[0].Members = append(groups[0].Positions[0].Members, entity.SlotMember{MemberID: id})
	}
	return groups
}

func TestSignUpRetriesLostSwapAgainstStore(t *testing.T) {
	svc, mock := newSQLService(t)
	sheetID := uuid.New()
	rival := uuid.New()
	actor := newMember(memberEntity.RoleMember)

	expectSheet(t, mock, sheetID, withMembers(2), 3)
	expectGroups(t, mock, sheetID, withMembers(2), 3)
	mock.ExpectExec(swapQuery).WithArgs(sqlmock.AnyArg(), sheetID.String(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	expectGroups(t, mock, sheetID, withMembers(2, rival), 4)
	mock.ExpectExec(swapQuery).WithArgs(sqlmock.AnyArg(), sheetID.String(), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sheet, appErr := svc.SignUp(context.Background(), actor, sheetID, griddle())
	require.Nil(t, appErr)
	assert.EqualValues(t, 5, sheet.Version)
	members := sheet.Groups[0].Positions[0].Members
	require.Len(t, members, 2)
	assert.Equal(t, rival, members[0].MemberID)
	assert.Equal(t, actor.MemberID, members[1].MemberID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignUpStopsWhenRivalTookLastSlot(t *testing.T) {
	svc, mock := newSQLService(t)
	sheetID := uuid.New()
	rival := uuid.New()

	expectSheet(t, mock, sheetID, withMembers(1), 1)
	expectGroups(t, mock, sheetID, withMembers(1), 1)
	mock.ExpectExec(swapQuery).WithArgs(sqlmock.AnyArg(), sheetID.String(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	expectGroups(t, mock, sheetID, withMembers(1, rival), 2)

	_, appErr := svc.SignUp(context.Background(), newMember(memberEntity.RoleMember), sheetID, griddle())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNoSlotsAvailable, appErr.Code)
	// no second UPDATE is issued once the re-check fails
	assert.NoError(t, mock.ExpectationsWereMet())
}
