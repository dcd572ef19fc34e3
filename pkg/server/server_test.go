package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/procurement-atlas/pkg/models/api"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/de-tools/procurement-atlas/pkg/services/analytics"
	"github.com/de-tools/procurement-atlas/pkg/services/source"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) GetProfiles(ctx context.Context) ([]domain.SourceProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SourceProfile), args.Error(1)
}

func (m *mockProfiles) GetProfile(ctx context.Context, name string) (domain.SourceProfile, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.SourceProfile), args.Error(1)
}

type stubSource struct{}

func (stubSource) Records(context.Context) ([]domain.ProcurementRecord, error) {
	return []domain.ProcurementRecord{
		{ObjectName: "Fuel", ValueExclTax: 1000, ValueInclTax: 1190, FinancingSource: "Buget local"},
	}, nil
}

func (stubSource) Categories(context.Context) (domain.CategoryTable, error) {
	return domain.CategoryTable{}, nil
}

func (stubSource) Close() error { return nil }

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	profiles := new(mockProfiles)
	profiles.On("GetProfiles", mock.Anything).
		Return([]domain.SourceProfile{{Name: "fuel", Type: domain.SourceTypeFile}}, nil)
	profiles.On("GetProfile", mock.Anything, "fuel").
		Return(domain.SourceProfile{Name: "fuel", Type: "stub"}, nil)

	sources := source.NewRegistry()
	require.NoError(t, sources.Register("stub", func(context.Context, domain.SourceProfile) (source.Source, error) {
		return stubSource{}, nil
	}))

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Profiles:  profiles,
			Sources:   sources,
			Generator: analytics.NewGenerator(analytics.DefaultSettings()),
			Logger:    logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:           "ListProfiles",
			method:         http.MethodGet,
			path:           "/api/v1/profiles",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got []api.Profile
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, []api.Profile{{Name: "fuel", Type: "file"}}, got)
			},
		},
		{
			name:           "ProfileReport",
			method:         http.MethodGet,
			path:           "/api/v1/profiles/fuel/report",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				text := string(body)
				assert.True(t, strings.HasPrefix(text, strings.Repeat("=", 60)))
				assert.Contains(t, text, "7. FINANCING SOURCES")
				assert.Contains(t, text, "Buget local")
			},
		},
		{
			name:           "CreateReport",
			method:         http.MethodPost,
			path:           "/api/v1/reports",
			body:           `{"records":[],"categories":[]}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got api.Report
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Len(t, got.Sections, 9)
				assert.Contains(t, got.Sections[0].Text, "No procurement records available for analysis.")
			},
		},
		{
			name:           "UnknownRoute",
			method:         http.MethodGet,
			path:           "/api/v1/workspaces",
			expectedStatus: http.StatusNotFound,
			check:          func(*testing.T, []byte) {},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")
			tc.check(t, body)
		})
	}
}

func TestNewWebAPI_DefaultShutdownTimeout(t *testing.T) {
	web := NewWebAPI(Config{Addr: "127.0.0.1:0", Dependencies: Dependencies{Logger: zerolog.Nop()}})

	assert.Equal(t, defaultShutdownTimeout, web.shutdownTimeout)
	assert.Equal(t, "127.0.0.1:0", web.server.Addr)
}
