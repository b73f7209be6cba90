package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub-api/internal/domain"
)

func TestAdminService_GetDashboardStats(t *testing.T) {
	eventRepo := newFakeEventRepo()
	for _, status := range []string{"Active", "Active", "Completed"} {
		_, err := eventRepo.Create(context.Background(), domain.Event{Title: "e", Status: status})
		require.NoError(t, err)
	}

	regRepo := newFakeRegistrationRepo()
	first, err := regRepo.Create(context.Background(), domain.Registration{EventID: 1, StudentEmail: "a@example.com"})
	require.NoError(t, err)
	_, err = regRepo.Create(context.Background(), domain.Registration{EventID: 1, StudentEmail: "b@example.com"})
	require.NoError(t, err)
	_, err = regRepo.UpdateStatus(context.Background(), first.ID, domain.RegistrationStatusApproved)
	require.NoError(t, err)

	svc := NewAdminService(eventRepo, regRepo, &fakeActivityRecorder{})

	stats, err := svc.GetDashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalEvents)
	assert.Equal(t, int64(2), stats.ActiveEvents)
	assert.Equal(t, int64(2), stats.TotalRegistrations)
	assert.Equal(t, int64(1), stats.PendingApprovals)
}

func TestAdminService_GetRecentActivity(t *testing.T) {
	recorder := &fakeActivityRecorder{}
	for i := 0; i < 7; i++ {
		_, err := recorder.Record(context.Background(), "Tech Fest", "Event Updated")
		require.NoError(t, err)
	}

	svc := NewAdminService(newFakeEventRepo(), newFakeRegistrationRepo(), recorder)

	activities, err := svc.GetRecentActivity(context.Background())

	require.NoError(t, err)
	assert.Len(t, activities, 5)
}
