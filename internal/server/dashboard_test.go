package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthdash/internal/dashboardv1"
	"healthdash/internal/domain"
	"healthdash/internal/latency"
	"healthdash/internal/mockapi"
	"healthdash/internal/preferences"
	"healthdash/internal/querycache"
	"healthdash/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	api := mockapi.NewWithData(mockapi.Seed(time.Now()), latency.None{}, zerolog.Nop())
	cache := querycache.New(time.Minute, zerolog.Nop())
	prefs := preferences.NewStore(preferences.NewMemoryBackend(), zerolog.Nop())
	svc := service.NewDashboardService(api, cache, prefs, zerolog.Nop())
	require.NoError(t, svc.Bootstrap(context.Background()))

	path, handler := NewDashboardServer(svc).Handler()
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, procedure, body string, out any) int {
	t.Helper()
	resp, err := http.Post(srv.URL+procedure, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestGetSummary(t *testing.T) {
	srv := setupServer(t)

	var summary domain.DashboardSummary
	status := post(t, srv, dashboardv1.GetSummaryProcedure, `{}`, &summary)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Anna Kowalska", summary.User.Name)
	assert.Equal(t, 2, summary.UnreadMessages)
	assert.Len(t, summary.Recommendations, 3)
}

func TestEmptyBodyIsAccepted(t *testing.T) {
	srv := setupServer(t)

	var res dashboardv1.TeamsResponse
	status := post(t, srv, dashboardv1.ListTeamsProcedure, ``, &res)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, res.Teams, 4)
}

func TestMarkMessageAsReadRoundTrip(t *testing.T) {
	srv := setupServer(t)

	var empty dashboardv1.Empty
	require.Equal(t, http.StatusOK, post(t, srv, dashboardv1.MarkMessageAsReadProcedure, `{"id":"1"}`, &empty))

	var msg domain.Message
	require.Equal(t, http.StatusOK, post(t, srv, dashboardv1.GetMessageProcedure, `{"id":"1"}`, &msg))
	assert.False(t, msg.Unread)
}

func TestRedeemRewardRejectionIsNotAnError(t *testing.T) {
	srv := setupServer(t)

	var result domain.Redemption
	require.Equal(t, http.StatusOK, post(t, srv, dashboardv1.RedeemRewardProcedure, `{"id":"r404"}`, &result))
	assert.False(t, result.Redeemed)
	assert.Equal(t, domain.RedeemNotFound, result.Reason)
	assert.Equal(t, 1250, result.Balance)
}

func TestErrorCodes(t *testing.T) {
	srv := setupServer(t)

	cases := []struct {
		name      string
		procedure string
		body      string
		code      string
	}{
		{"unknown message", dashboardv1.GetMessageProcedure, `{"id":"404"}`, "not_found"},
		{"unknown team", dashboardv1.GetTeamProcedure, `{"id":"team-x"}`, "not_found"},
		{"bad severity", dashboardv1.SubmitSymptomReportProcedure, `{"symptoms":["fever"],"severity":11}`, "invalid_argument"},
		{"no symptoms", dashboardv1.TriageSymptomsProcedure, `{"symptoms":[]}`, "invalid_argument"},
		{"bad theme", dashboardv1.SetThemeProcedure, `{"theme":"sepia"}`, "invalid_argument"},
		{"bad event date", dashboardv1.AddPreventiveEventProcedure, `{"name":"Dental","date":"soon"}`, "invalid_argument"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body errorBody
			status := post(t, srv, tc.procedure, tc.body, &body)
			assert.NotEqual(t, http.StatusOK, status)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestPreferencesProcedures(t *testing.T) {
	srv := setupServer(t)

	var res dashboardv1.PreferencesResponse
	require.Equal(t, http.StatusOK, post(t, srv, dashboardv1.GetPreferencesProcedure, `{}`, &res))
	assert.Equal(t, preferences.Defaults(), res.Preferences)
	assert.Empty(t, res.Classes)
	require.NotNil(t, res.User)
	assert.Equal(t, "1", res.User.ID)

	require.Equal(t, http.StatusOK, post(t, srv, dashboardv1.ToggleThemeProcedure, `{}`, &res))
	assert.Equal(t, preferences.ThemeDark, res.Preferences.Theme)

	require.Equal(t, http.StatusOK, post(t, srv, dashboardv1.SetFontSizeProcedure, `{"fontSize":"xlarge"}`, &res))
	assert.Equal(t, []string{"dark", "font-xlarge"}, res.Classes)
}

func TestToConnectError(t *testing.T) {
	cases := []struct {
		err  error
		code connect.Code
	}{
		{fmt.Errorf("message %q: %w", "9", domain.ErrNotFound), connect.CodeNotFound},
		{domain.ErrValidation, connect.CodeInvalidArgument},
		{domain.ErrInsufficientBalance, connect.CodeFailedPrecondition},
		{domain.ErrRewardUnavailable, connect.CodeFailedPrecondition},
		{domain.ErrCapacityExceeded, connect.CodeResourceExhausted},
		{context.Canceled, connect.CodeCanceled},
		{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{errors.New("boom"), connect.CodeInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, connect.CodeOf(toConnectError(tc.err)), tc.err.Error())
	}
}
