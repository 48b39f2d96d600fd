package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/kundli/internal/domain/chart"
	"github.com/yanqian/kundli/internal/domain/horoscope"
	"github.com/yanqian/kundli/internal/domain/matchmaking"
	"github.com/yanqian/kundli/internal/infra/config"
	apperrors "github.com/yanqian/kundli/pkg/errors"
	"github.com/yanqian/kundli/pkg/metrics"
)

func TestRouter_BirthChartSuccess(t *testing.T) {
	svc := &stubChart{
		computeFn: func(ctx context.Context, req chart.Request) (chart.Response, error) {
			require.Equal(t, "1990-05-15", req.Date)
			require.NotNil(t, req.Latitude)
			require.InDelta(t, 28.61, float64(*req.Latitude), 1e-9)
			return chart.Response{Metadata: chart.Metadata{Name: req.Name, Ayanamsa: "23.7200"}}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/charts",
		`{"name":"Asha","date":"1990-05-15","latitude":"28.61","longitude":77.2}`,
		newRouterUnderTest(t, svc, nil, nil, config.RateLimitConfig{}))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotEmpty(t, recorder.Header().Get(requestIDHeader))

	var got chart.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "Asha", got.Metadata.Name)
	require.Equal(t, "23.7200", got.Metadata.Ayanamsa)
}

func TestRouter_BirthChartInvalidJSON(t *testing.T) {
	recorder := performRequest(http.MethodPost, "/api/v1/charts", `{"latitude":"north"}`,
		newRouterUnderTest(t, &stubChart{}, nil, nil, config.RateLimitConfig{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_DomainErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.Wrap(apperrors.CodeInvalidInput, "latitude must be within [-90, 90]", nil), http.StatusBadRequest, apperrors.CodeInvalidInput},
		{apperrors.Wrap(apperrors.CodeUpstreamUnavailable, "ephemeris lookup failed", errors.New("down")), http.StatusBadGateway, apperrors.CodeUpstreamUnavailable},
		{apperrors.Wrap(apperrors.CodeInternalInconsistency, "missing bodies", nil), http.StatusInternalServerError, apperrors.CodeInternalInconsistency},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		svc := &stubChart{computeFn: func(context.Context, chart.Request) (chart.Response, error) {
			return chart.Response{}, tc.err
		}}
		recorder := performRequest(http.MethodPost, "/api/v1/charts", `{"date":"2000-01-01"}`,
			newRouterUnderTest(t, svc, nil, nil, config.RateLimitConfig{}))
		require.Equal(t, tc.status, recorder.Code, tc.code)
		errBody := decodeErrorBody(t, recorder.Body.Bytes())
		require.Equal(t, tc.code, errBody["error"]["code"])
	}
}

func TestRouter_InvalidInputMessageIsReadable(t *testing.T) {
	svc := &stubChart{computeFn: func(context.Context, chart.Request) (chart.Response, error) {
		return chart.Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", errors.New("parsing time"))
	}}
	recorder := performRequest(http.MethodPost, "/api/v1/charts", `{}`,
		newRouterUnderTest(t, svc, nil, nil, config.RateLimitConfig{}))
	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "date must be formatted as YYYY-MM-DD", errBody["error"]["message"])
}

func TestRouter_Matchmaking(t *testing.T) {
	match := &stubMatch{matchFn: func(ctx context.Context, req matchmaking.Request) (matchmaking.Result, error) {
		require.Equal(t, "1990-01-01", req.BoyDate)
		require.Equal(t, "1992-02-02", req.GirlDate)
		return matchmaking.Result{TotalScore: 27.5, MaxScore: 36, Verdict: matchmaking.VerdictHigh}, nil
	}}
	recorder := performRequest(http.MethodPost, "/api/v1/matchmaking", `{"boyDate":"1990-01-01","girlDate":"1992-02-02"}`,
		newRouterUnderTest(t, nil, match, nil, config.RateLimitConfig{}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got matchmaking.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, 27.5, got.TotalScore)
	require.Equal(t, matchmaking.VerdictHigh, got.Verdict)
}

func TestRouter_Horoscope(t *testing.T) {
	horo := &stubHoroscope{dailyFn: func(ctx context.Context, req horoscope.Request) (horoscope.Response, error) {
		require.Equal(t, "leo", req.Sign)
		require.Equal(t, "2024-03-10", req.Date)
		require.Equal(t, "travel", req.Category)
		return horoscope.Response{Sign: "Leo", MoonHouse: 9}, nil
	}}
	recorder := performRequest(http.MethodGet, "/api/v1/horoscope?sign=leo&date=2024-03-10&category=travel", "",
		newRouterUnderTest(t, nil, nil, horo, config.RateLimitConfig{}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Data horoscope.Response `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, 9, got.Data.MoonHouse)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	server := newRouterUnderTest(t, nil, nil, nil, config.RateLimitConfig{})

	recorder := performRequest(http.MethodGet, "/healthz", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())

	recorder = performRequest(http.MethodGet, "/metrics", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `kundli_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestRouter_RateLimit(t *testing.T) {
	server := newRouterUnderTest(t, &stubChart{}, nil, nil, config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 2})

	for i := 0; i < 2; i++ {
		recorder := performRequest(http.MethodPost, "/api/v1/charts", `{}`, server)
		require.Equal(t, http.StatusOK, recorder.Code)
	}
	recorder := performRequest(http.MethodPost, "/api/v1/charts", `{}`, server)
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])

	// Health checks are not limited.
	recorder = performRequest(http.MethodGet, "/healthz", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_RequestIDIsPropagated(t *testing.T) {
	server := newRouterUnderTest(t, nil, nil, nil, config.RateLimitConfig{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRouter_CORSPreflight(t *testing.T) {
	server := newRouterUnderTest(t, nil, nil, nil, config.RateLimitConfig{})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/charts", nil)
	req.Header.Set("Origin", "https://kundli.example")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://kundli.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSRejectsUnknownOrigin(t *testing.T) {
	server := newRouterUnderTest(t, nil, nil, nil, config.RateLimitConfig{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestIPRateLimiterForgetsIdleVisitors(t *testing.T) {
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 1})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.allow("10.0.0.1"))
	require.False(t, limiter.allow("10.0.0.1"))
	require.True(t, limiter.allow("10.0.0.2"))

	now = now.Add(10 * time.Minute)
	require.True(t, limiter.allow("10.0.0.2"))
	require.Len(t, limiter.visitors, 1)
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, chartSvc chart.Service, matchSvc matchmaking.Service, horoSvc horoscope.Service, limit config.RateLimitConfig) *http.Server {
	t.Helper()
	if chartSvc == nil {
		chartSvc = &stubChart{}
	}
	if matchSvc == nil {
		matchSvc = &stubMatch{}
	}
	if horoSvc == nil {
		horoSvc = &stubHoroscope{}
	}
	handler := NewHandler(chartSvc, matchSvc, horoSvc, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:        ":0",
			ReadTimeout:    time.Second,
			WriteTimeout:   time.Second,
			AllowedOrigins: []string{"https://kundli.example"},
			RateLimit:      limit,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	return NewRouter(cfg, handler, metrics.New())
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubChart struct {
	computeFn func(ctx context.Context, req chart.Request) (chart.Response, error)
}

func (s *stubChart) Compute(ctx context.Context, req chart.Request) (chart.Response, error) {
	if s.computeFn != nil {
		return s.computeFn(ctx, req)
	}
	return chart.Response{}, nil
}

type stubMatch struct {
	matchFn func(ctx context.Context, req matchmaking.Request) (matchmaking.Result, error)
}

func (s *stubMatch) Match(ctx context.Context, req matchmaking.Request) (matchmaking.Result, error) {
	if s.matchFn != nil {
		return s.matchFn(ctx, req)
	}
	return matchmaking.Result{}, nil
}

type stubHoroscope struct {
	dailyFn func(ctx context.Context, req horoscope.Request) (horoscope.Response, error)
}

func (s *stubHoroscope) Daily(ctx context.Context, req horoscope.Request) (horoscope.Response, error) {
	if s.dailyFn != nil {
		return s.dailyFn(ctx, req)
	}
	return horoscope.Response{}, nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
