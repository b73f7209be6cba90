package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub-api/internal/api/handler/v1/response"
	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/service"
)

type stubRegistrationService struct {
	registerFn     func(ctx context.Context, eventID uint, name, email, college string) (domain.Registration, error)
	updateStatusFn func(ctx context.Context, id uint, status string) (domain.Registration, error)
	countPendingFn func(ctx context.Context) (int64, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, eventID uint, name, email, college string) (domain.Registration, error) {
	return s.registerFn(ctx, eventID, name, email, college)
}

func (s *stubRegistrationService) ListAll(_ context.Context) ([]domain.Registration, error) {
	return nil, nil
}

func (s *stubRegistrationService) ListForStudent(_ context.Context, _ string) ([]domain.Registration, error) {
	return nil, nil
}

func (s *stubRegistrationService) ListPending(_ context.Context) ([]domain.PendingRegistration, error) {
	return nil, nil
}

func (s *stubRegistrationService) CountPending(ctx context.Context) (int64, error) {
	return s.countPendingFn(ctx)
}

func (s *stubRegistrationService) UpdateStatus(ctx context.Context, id uint, status string) (domain.Registration, error) {
	return s.updateStatusFn(ctx, id, status)
}

func (s *stubRegistrationService) Delete(_ context.Context, _ uint) error {
	return nil
}

func setupRegistrationRouter(svc RegistrationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewRegistrationHandler(svc)
	router.POST("/registrations", handler.HandleRegister)
	router.GET("/registrations/pending/count", handler.HandleGetPendingCount)
	router.PUT("/registrations/:registrationID/status", handler.HandleUpdateRegistrationStatus)

	return router
}

func TestRegistrationHandler_HandleRegister(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		router := setupRegistrationRouter(&stubRegistrationService{
			registerFn: func(_ context.Context, eventID uint, name, email, college string) (domain.Registration, error) {
				return domain.Registration{
					ID:           1,
					EventID:      eventID,
					StudentName:  name,
					StudentEmail: email,
					CollegeName:  college,
					Status:       domain.RegistrationStatusPending,
				}, nil
			},
		})

		body := `{"eventId":1,"name":"Jane","email":"jane@example.com","college":"Engineering"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp response.RegistrationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, domain.RegistrationStatusPending, resp.Registration.Status)
	})

	t.Run("returns 400 on a validation error", func(t *testing.T) {
		router := setupRegistrationRouter(&stubRegistrationService{})

		body := `{"eventId":1,"name":"Jane","email":"not-an-email","college":"Engineering"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for an unknown event", func(t *testing.T) {
		router := setupRegistrationRouter(&stubRegistrationService{
			registerFn: func(_ context.Context, _ uint, _, _, _ string) (domain.Registration, error) {
				return domain.Registration{}, service.ErrEventNotFound
			},
		})

		body := `{"eventId":999,"name":"Jane","email":"jane@example.com","college":"Engineering"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 409 for a duplicate registration", func(t *testing.T) {
		router := setupRegistrationRouter(&stubRegistrationService{
			registerFn: func(_ context.Context, _ uint, _, _, _ string) (domain.Registration, error) {
				return domain.Registration{}, service.ErrRegistrationExists
			},
		})

		body := `{"eventId":1,"name":"Jane","email":"jane@example.com","college":"Engineering"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRegistrationHandler_HandleUpdateRegistrationStatus(t *testing.T) {
	t.Run("returns 200 on approval", func(t *testing.T) {
		router := setupRegistrationRouter(&stubRegistrationService{
			updateStatusFn: func(_ context.Context, id uint, status string) (domain.Registration, error) {
				return domain.Registration{ID: id, Status: status}, nil
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/registrations/1/status", strings.NewReader(`{"status":"Approved"}`))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("returns 400 for an invalid status", func(t *testing.T) {
		router := setupRegistrationRouter(&stubRegistrationService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/registrations/1/status", strings.NewReader(`{"status":"Pending"}`))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 409 when already decided", func(t *testing.T) {
		router := setupRegistrationRouter(&stubRegistrationService{
			updateStatusFn: func(_ context.Context, _ uint, _ string) (domain.Registration, error) {
				return domain.Registration{}, service.ErrRegistrationDecided
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/registrations/1/status", strings.NewReader(`{"status":"Rejected"}`))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRegistrationHandler_HandleGetPendingCount(t *testing.T) {
	router := setupRegistrationRouter(&stubRegistrationService{
		countPendingFn: func(_ context.Context) (int64, error) {
			return 3, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/registrations/pending/count", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp response.PendingCountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Count)
}
