package mockapi

import (
	"context"
	"sync"
	"testing"
	"time"

	"healthdash/internal/domain"
	"healthdash/internal/latency"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, mutate ...func(d *Dataset)) *Service {
	t.Helper()
	data := Seed(time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC))
	for _, m := range mutate {
		m(&data)
	}
	return NewWithData(data, latency.None{}, zerolog.Nop())
}

func TestSeedProgressIsDerived(t *testing.T) {
	svc := newTestService(t)
	plan, err := svc.GetTreatmentPlan(context.Background())
	require.NoError(t, err)
	assert.Len(t, plan.Tasks, 6)
	assert.Equal(t, 50, plan.Progress)
}

func TestUpdateTaskStatusRecomputesProgress(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateTaskStatus(ctx, "3", true))
	plan, err := svc.GetTreatmentPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 67, plan.Progress)
	assert.Equal(t, domain.Progress(plan.Tasks), plan.Progress)

	require.NoError(t, svc.UpdateTaskStatus(ctx, "1", false))
	require.NoError(t, svc.UpdateTaskStatus(ctx, "1", false))
	plan, err = svc.GetTreatmentPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, plan.Progress)
}

func TestUpdateTaskStatusUnknownTask(t *testing.T) {
	svc := newTestService(t)
	err := svc.UpdateTaskStatus(context.Background(), "missing", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	plan, err := svc.GetTreatmentPlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, plan.Progress)
}

func TestMarkMessageAsReadIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.MarkMessageAsRead(ctx, "1"))
	once, err := svc.GetMessages(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.MarkMessageAsRead(ctx, "1"))
	twice, err := svc.GetMessages(ctx)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	msg, err := svc.GetMessage(ctx, "1")
	require.NoError(t, err)
	assert.False(t, msg.Unread)
}

func TestMarkMessageAsReadUnknown(t *testing.T) {
	svc := newTestService(t)
	assert.ErrorIs(t, svc.MarkMessageAsRead(context.Background(), "404"), domain.ErrNotFound)
}

func TestGetMessageUnknown(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.GetMessage(context.Background(), "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReadsReturnCopies(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	msgs, err := svc.GetMessages(ctx)
	require.NoError(t, err)
	msgs[0].Unread = false
	msgs[0].Attachments[0] = "tampered.pdf"

	plan, err := svc.GetTreatmentPlan(ctx)
	require.NoError(t, err)
	plan.Tasks[2].Done = true

	again, err := svc.GetMessages(ctx)
	require.NoError(t, err)
	assert.True(t, again[0].Unread)
	assert.Equal(t, "blood-test-results.pdf", again[0].Attachments[0])

	planAgain, err := svc.GetTreatmentPlan(ctx)
	require.NoError(t, err)
	assert.False(t, planAgain.Tasks[2].Done)
}

func TestNewWithDataDoesNotAliasInput(t *testing.T) {
	data := Seed(time.Now())
	svc := NewWithData(data, latency.None{}, zerolog.Nop())
	data.Events[0].Participants = 999

	events, err := svc.GetNeighborhoodEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, events[0].Participants)
}

func TestRedeemReward(t *testing.T) {
	cases := []struct {
		name       string
		points     int
		available  bool
		wantOK     bool
		wantErr    error
		wantPoints int
	}{
		{"success", 1250, true, true, nil, 750},
		{"exact balance", 500, true, true, nil, 0},
		{"insufficient", 100, true, false, domain.ErrInsufficientBalance, 100},
		{"unavailable", 1250, false, false, domain.ErrRewardUnavailable, 1250},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, func(d *Dataset) {
				d.User.Points = tc.points
				d.Rewards[0].Available = tc.available
			})
			ctx := context.Background()

			ok, balance, err := svc.RedeemReward(ctx, "r1")
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantPoints, balance)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}

			user, err := svc.GetUser(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPoints, user.Points)
		})
	}
}

func TestRedeemRewardUnknown(t *testing.T) {
	svc := newTestService(t)
	ok, balance, err := svc.RedeemReward(context.Background(), "nope")
	assert.False(t, ok)
	assert.Equal(t, 1250, balance)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedeemRewardNeverGoesNegative(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, _ = svc.RedeemReward(ctx, "r1")
	}
	user, err := svc.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250, user.Points)
}

func TestJoinEvent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.JoinEvent(ctx, "e1"))
	events, err := svc.GetNeighborhoodEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 13, events[0].Participants)
}

func TestJoinFullEvent(t *testing.T) {
	svc := newTestService(t, func(d *Dataset) {
		d.Events[0].Participants = 20
		d.Events[0].MaxParticipants = 20
	})
	ctx := context.Background()

	err := svc.JoinEvent(ctx, "e1")
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	events, err := svc.GetNeighborhoodEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, events[0].Participants)
}

func TestJoinEventConcurrentNeverExceedsCapacity(t *testing.T) {
	svc := newTestService(t, func(d *Dataset) {
		d.Events[1].Participants = 0
		d.Events[1].MaxParticipants = 10
	})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.JoinEvent(ctx, "e2")
		}()
	}
	wg.Wait()

	events, err := svc.GetNeighborhoodEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, events[1].Participants)
}

func TestJoinEventUnknown(t *testing.T) {
	svc := newTestService(t)
	assert.ErrorIs(t, svc.JoinEvent(context.Background(), "e99"), domain.ErrNotFound)
}

func TestRefreshRecommendationsDoesNotMutate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	refreshed, err := svc.RefreshRecommendations(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed)
	for _, r := range refreshed {
		assert.Contains(t, r.Description, " (Updated)")
	}

	stored, err := svc.GetRecommendations(ctx)
	require.NoError(t, err)
	for _, r := range stored {
		assert.NotContains(t, r.Description, "(Updated)")
	}
}

func TestSubmitSymptomReport(t *testing.T) {
	svc := newTestService(t)
	cases := []struct {
		severity int
		want     domain.Urgency
	}{
		{10, domain.UrgencyHigh},
		{8, domain.UrgencyHigh},
		{7, domain.UrgencyHigh},
		{6, domain.UrgencyMedium},
		{5, domain.UrgencyMedium},
		{4, domain.UrgencyMedium},
		{3, domain.UrgencyLow},
		{2, domain.UrgencyLow},
		{0, domain.UrgencyLow},
	}
	for _, tc := range cases {
		report, err := svc.SubmitSymptomReport(context.Background(), domain.SymptomReport{
			Symptoms: []string{"cough"},
			Severity: tc.severity,
			Duration: "2 days",
		})
		require.NoError(t, err)
		assert.Equal(t, tc.want, report.Urgency, "severity %d", tc.severity)
		assert.Len(t, report.Recommendations, 3)
		assert.NotEmpty(t, report.ID)
		assert.Equal(t, []string{"cough"}, report.Symptoms)
	}
}

func TestSubmitSymptomReportValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitSymptomReport(ctx, domain.SymptomReport{Severity: 5})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.SubmitSymptomReport(ctx, domain.SymptomReport{Symptoms: []string{"cough"}, Severity: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.SubmitSymptomReport(ctx, domain.SymptomReport{Symptoms: []string{"cough"}, Severity: 11})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTriageSymptoms(t *testing.T) {
	svc := newTestService(t)
	cases := []struct {
		name     string
		symptoms []string
		want     domain.Urgency
	}{
		{"serious", []string{"Cough", "Fever"}, domain.UrgencyEmergency},
		{"moderate with many", []string{"Headache", "Cough", "Fatigue"}, domain.UrgencyHigh},
		{"moderate", []string{"Nausea"}, domain.UrgencyMedium},
		{"mild", []string{"Runny nose"}, domain.UrgencyLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report, err := svc.TriageSymptoms(context.Background(), tc.symptoms)
			require.NoError(t, err)
			assert.Equal(t, tc.want, report.Urgency)
			assert.Contains(t, report.Analysis, string(tc.want))
			assert.Len(t, report.Recommendations, 1)
		})
	}

	_, err := svc.TriageSymptoms(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddPreventiveEvent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	event, err := svc.AddPreventiveEvent(ctx, domain.NewPreventiveEvent{Name: "Eye exam", Date: "2026-01-15"})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, domain.PreventiveUpcoming, event.Status)

	calendar, err := svc.GetPreventiveCalendar(ctx)
	require.NoError(t, err)
	require.Len(t, calendar, 5)
	assert.Equal(t, event, calendar[4])

	second, err := svc.AddPreventiveEvent(ctx, domain.NewPreventiveEvent{Name: "Eye exam", Date: "2026-01-15", Status: domain.PreventiveDone})
	require.NoError(t, err)
	assert.NotEqual(t, event.ID, second.ID)
	assert.Equal(t, domain.PreventiveDone, second.Status)
}

func TestAddPreventiveEventValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, in := range []domain.NewPreventiveEvent{
		{Name: " ", Date: "2026-01-15"},
		{Name: "Eye exam", Date: "15/01/2026"},
		{Name: "Eye exam", Date: "2026-01-15", Status: "skipped"},
	} {
		_, err := svc.AddPreventiveEvent(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation, "%+v", in)
	}

	calendar, err := svc.GetPreventiveCalendar(ctx)
	require.NoError(t, err)
	assert.Len(t, calendar, 4)
}

func TestUpdatePreventiveEventStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdatePreventiveEventStatus(ctx, "3", domain.PreventiveDone))
	require.NoError(t, svc.UpdatePreventiveEventStatus(ctx, "3", domain.PreventiveDone))

	calendar, err := svc.GetPreventiveCalendar(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PreventiveDone, calendar[2].Status)

	assert.ErrorIs(t, svc.UpdatePreventiveEventStatus(ctx, "99", domain.PreventiveDone), domain.ErrNotFound)
	assert.ErrorIs(t, svc.UpdatePreventiveEventStatus(ctx, "3", "bogus"), domain.ErrValidation)
}

func TestGetTeam(t *testing.T) {
	svc := newTestService(t)
	team, err := svc.GetTeam(context.Background(), "team-2")
	require.NoError(t, err)
	assert.Equal(t, "Biegacze Bałut", team.Name)

	_, err = svc.GetTeam(context.Background(), "team-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTerritoriesAllowUnclaimed(t *testing.T) {
	svc := newTestService(t)
	territories, err := svc.GetTerritories(context.Background())
	require.NoError(t, err)
	require.Len(t, territories, 6)
	assert.Empty(t, territories[5].ControlledBy)
}

func TestSmartCityDataIsCopied(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	data, err := svc.GetSmartCityData(ctx)
	require.NoError(t, err)
	data.DistrictHealth[0].HealthScore = 0

	again, err := svc.GetSmartCityData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 85, again.DistrictHealth[0].HealthScore)
	assert.Equal(t, "2025-10-20T12:00:00Z", again.AirQuality.Timestamp)
}

func TestCancelledContextSkipsMutation(t *testing.T) {
	data := Seed(time.Now())
	svc := NewWithData(data, latency.NewRandom(time.Second, 2*time.Second), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, svc.JoinEvent(ctx, "e1"), context.Canceled)

	svc.delay = latency.None{}
	events, err := svc.GetNeighborhoodEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, events[0].Participants)
}
