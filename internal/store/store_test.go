package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// A failure on a floor insert after the dorm insert must roll the
// whole provisioning transaction back.
func TestGormStore_CreateDorm_RollsBackOnFloorInsertFailure(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "dormitories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "dorm_rooms"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	dormID, err := s.CreateDorm(context.Background(), DormInput{
		Name:          "Sunrise",
		TotalFloors:   3,
		RoomsPerFloor: []int{2, 3, 1},
	})

	assert.Error(t, err)
	assert.Zero(t, dormID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Layout validation failures must be reported before any statement is
// issued, on both create and update.
func TestGormStore_LayoutValidationHappensBeforeAnyWrite(t *testing.T) {
	testCases := []struct {
		name        string
		input       DormInput
		expectedErr error
	}{
		{
			name:        "Create with short room count array",
			input:       DormInput{Name: "Sunrise", TotalFloors: 3, RoomsPerFloor: []int{2, 3}},
			expectedErr: ErrFloorCountMismatch,
		},
		{
			name:        "Create with long room count array",
			input:       DormInput{Name: "Sunrise", TotalFloors: 1, RoomsPerFloor: []int{2, 3}},
			expectedErr: ErrFloorCountMismatch,
		},
		{
			name:        "Create with negative room count",
			input:       DormInput{Name: "Sunrise", TotalFloors: 2, RoomsPerFloor: []int{2, -1}},
			expectedErr: ErrNegativeRoomCount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			s := NewGormStore(gormDB)

			// No expectations registered: any SQL at all fails the test.
			_, err := s.CreateDorm(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.expectedErr)

			err = s.UpdateDorm(context.Background(), 1, tc.input)
			assert.ErrorIs(t, err, tc.expectedErr)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_MoveOut_UnknownContract(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contracts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := s.MoveOut(context.Background(), 42, time.Now())
	assert.ErrorIs(t, err, ErrContractNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
