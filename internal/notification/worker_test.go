package notification

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dormitory-backend/internal/model"
)

// mockSender is a mock implementation of the NotificationSender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newSQLiteDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Dorm{},
		&model.FloorAllocation{},
		&model.Contract{},
		&model.PushSubscription{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedEndedContract(t *testing.T, db *gorm.DB, endpoint string) model.Contract {
	t.Helper()
	dorm := model.Dorm{Name: "Sunrise", TotalFloors: 1}
	require.NoError(t, db.Create(&dorm).Error)

	contract := model.Contract{
		DormID:      dorm.ID,
		RoomLabel:   "101",
		TenantName:  "Ariya K.",
		MonthlyRent: 3500,
		StartDate:   time.Now().Add(-90 * 24 * time.Hour),
		Status:      model.ContractStatusEnded,
	}
	require.NoError(t, db.Create(&contract).Error)

	sub := model.PushSubscription{
		Endpoint: endpoint,
		P256DH:   "test_p256dh",
		Auth:     "test_auth",
	}
	require.NoError(t, db.Create(&sub).Error)
	require.NoError(t, db.Model(&sub).Association("Dorms").Append(&dorm))

	return contract
}

func TestWorkerPool_Dispatch(t *testing.T) {
	db := newSQLiteDB(t, "worker_dispatch")
	wp := NewWorkerPool(1, db, &webpush.Options{})

	wp.Dispatch(123)

	select {
	case job := <-wp.jobs:
		assert.Equal(t, int64(123), job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_SendsRoomFreedNotification(t *testing.T) {
	db := newSQLiteDB(t, "worker_send")
	contract := seedEndedContract(t, db, "https://example.com/push")

	wp := NewWorkerPool(1, db, &webpush.Options{})

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			assert.Equal(t, "https://example.com/push", sub.Endpoint)
			assert.Equal(t, "Room 101 in Sunrise is available again", string(payload))
			wg.Done()
			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(contract.ID)
	wg.Wait()
}

func TestWorkerPool_DeletesExpiredSubscription(t *testing.T) {
	db := newSQLiteDB(t, "worker_expired")
	contract := seedEndedContract(t, db, "https://example.com/expired")

	wp := NewWorkerPool(1, db, &webpush.Options{})

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			wg.Done()
			return &http.Response{
				StatusCode: http.StatusGone,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(contract.ID)
	wg.Wait()

	// The 410 should have removed the subscription. The delete happens
	// after the sender returns, so poll briefly.
	assert.Eventually(t, func() bool {
		var count int64
		db.Model(&model.PushSubscription{}).
			Where("endpoint = ?", "https://example.com/expired").
			Count(&count)
		return count == 0
	}, 2*time.Second, 20*time.Millisecond)
}
