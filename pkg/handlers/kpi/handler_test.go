package kpi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	kpisvc "github.com/de-tools/sales-atlas/pkg/services/kpi"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDashboard struct {
	mock.Mock
}

func (m *mockDashboard) Periods(ctx context.Context) ([]domain.PeriodConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodConfig), args.Error(1)
}

func (m *mockDashboard) Snapshot(ctx context.Context, period string, week *int) (domain.KPISnapshot, error) {
	args := m.Called(ctx, period, week)
	return args.Get(0).(domain.KPISnapshot), args.Error(1)
}

func router(svc dashboard.Service) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()
	r.Get("/periods", h.ListPeriods)
	r.Get("/periods/{period}/kpis", h.GetSnapshot)
	return r
}

func q2() domain.PeriodConfig {
	return domain.PeriodConfig{
		Name:       "q2",
		StartWeek:  18,
		EndWeek:    19,
		Year:       2024,
		GoalAmount: decimal.NewFromInt(1000),
	}
}

func TestHandler_ListPeriods(t *testing.T) {
	svc := new(mockDashboard)
	svc.On("Periods", mock.Anything).Return([]domain.PeriodConfig{q2()}, nil)

	rec := httptest.NewRecorder()
	router(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/periods", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []api.Period
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "q2", got[0].Name)
	assert.Equal(t, "period", got[0].TotalsScope)
	assert.Equal(t, []string{}, got[0].Products)
	assert.True(t, decimal.NewFromInt(1000).Equal(got[0].Goal))
}

func TestHandler_ListPeriods_Error(t *testing.T) {
	svc := new(mockDashboard)
	svc.On("Periods", mock.Anything).Return(nil, errors.New("broken ini"))

	rec := httptest.NewRecorder()
	router(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/periods", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_GetSnapshot(t *testing.T) {
	week := 18
	snap, _, err := kpisvc.ComputeFromRows([]domain.RawRow{
		{Product: "Cookie", Price: "100", Status: "Godkendt", EventDate: "2024-05-01"},
		{Product: "Cookie", Price: "50", Status: "Godkendt", EventDate: "2024-05-03"},
		{Product: "SEO", Price: "200", Status: "Tilbud", EventDate: "2024-05-08"},
	}, q2(), week)
	require.NoError(t, err)

	tests := []struct {
		name           string
		path           string
		setupMocks     func(svc *mockDashboard)
		expectedStatus int
	}{
		{
			name: "explicit week",
			path: "/periods/q2/kpis?week=18",
			setupMocks: func(svc *mockDashboard) {
				svc.On("Snapshot", mock.Anything, "q2", &week).Return(snap, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "clock week",
			path: "/periods/q2/kpis",
			setupMocks: func(svc *mockDashboard) {
				svc.On("Snapshot", mock.Anything, "q2", (*int)(nil)).Return(snap, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad week",
			path:           "/periods/q2/kpis?week=abc",
			setupMocks:     func(*mockDashboard) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "week out of range",
			path:           "/periods/q2/kpis?week=54",
			setupMocks:     func(*mockDashboard) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown period",
			path: "/periods/q9/kpis",
			setupMocks: func(svc *mockDashboard) {
				svc.On("Snapshot", mock.Anything, "q9", (*int)(nil)).
					Return(domain.KPISnapshot{}, fmt.Errorf("%w: q9", config.ErrPeriodNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "invalid config",
			path: "/periods/q2/kpis",
			setupMocks: func(svc *mockDashboard) {
				svc.On("Snapshot", mock.Anything, "q2", (*int)(nil)).
					Return(domain.KPISnapshot{}, fmt.Errorf("%w \"q2\": end_week", kpisvc.ErrInvalidPeriodConfig))
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "source failure",
			path: "/periods/q2/kpis",
			setupMocks: func(svc *mockDashboard) {
				svc.On("Snapshot", mock.Anything, "q2", (*int)(nil)).
					Return(domain.KPISnapshot{}, fmt.Errorf("%w: missing file", dashboard.ErrSourceUnavailable))
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockDashboard)
			tc.setupMocks(svc)

			rec := httptest.NewRecorder()
			router(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedStatus != http.StatusOK {
				var body api.Error
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body.Error)
				return
			}

			var got api.KPISnapshot
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.Len(t, got.Weekly.Sold, 2)
			assert.Equal(t, 18, got.Weekly.Sold[0].Week)
			assert.True(t, decimal.NewFromInt(150).Equal(got.Weekly.Sold[0].Amount))
			assert.True(t, decimal.NewFromInt(150).Equal(got.Goal.SoldAmount))
			assert.InDelta(t, 0.15, got.Goal.Pct, 1e-9)
			assert.Equal(t, 2, got.HitRate.Approved)
			assert.Equal(t, 1, got.HitRate.Pending)
			assert.InDelta(t, 66.67, got.HitRate.Pct, 0.01)
			svc.AssertExpectations(t)
		})
	}
}
