package server

import (
	"context"
	"errors"
	"net/http"

	"healthdash/internal/dashboardv1"
	"healthdash/internal/domain"
	"healthdash/internal/preferences"
	"healthdash/internal/service"

	"connectrpc.com/connect"
)

type DashboardServer struct {
	svc *service.DashboardService
}

func NewDashboardServer(svc *service.DashboardService) *DashboardServer {
	return &DashboardServer{svc: svc}
}

// Handler mounts every dashboard procedure and returns the path prefix to
// register it under.
func (s *DashboardServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(loggingInterceptor()),
	}, opts...)

	mux := http.NewServeMux()
	mux.Handle(dashboardv1.GetSummaryProcedure, connect.NewUnaryHandler(dashboardv1.GetSummaryProcedure, s.GetSummary, opts...))
	mux.Handle(dashboardv1.GetUserProcedure, connect.NewUnaryHandler(dashboardv1.GetUserProcedure, s.GetUser, opts...))
	mux.Handle(dashboardv1.ListMessagesProcedure, connect.NewUnaryHandler(dashboardv1.ListMessagesProcedure, s.ListMessages, opts...))
	mux.Handle(dashboardv1.GetMessageProcedure, connect.NewUnaryHandler(dashboardv1.GetMessageProcedure, s.GetMessage, opts...))
	mux.Handle(dashboardv1.MarkMessageAsReadProcedure, connect.NewUnaryHandler(dashboardv1.MarkMessageAsReadProcedure, s.MarkMessageAsRead, opts...))
	mux.Handle(dashboardv1.ListRecommendationsProcedure, connect.NewUnaryHandler(dashboardv1.ListRecommendationsProcedure, s.ListRecommendations, opts...))
	mux.Handle(dashboardv1.RefreshRecommendationsProcedure, connect.NewUnaryHandler(dashboardv1.RefreshRecommendationsProcedure, s.RefreshRecommendations, opts...))
	mux.Handle(dashboardv1.GetTreatmentPlanProcedure, connect.NewUnaryHandler(dashboardv1.GetTreatmentPlanProcedure, s.GetTreatmentPlan, opts...))
	mux.Handle(dashboardv1.UpdateTaskStatusProcedure, connect.NewUnaryHandler(dashboardv1.UpdateTaskStatusProcedure, s.UpdateTaskStatus, opts...))
	mux.Handle(dashboardv1.GetPreventiveCalendarProcedure, connect.NewUnaryHandler(dashboardv1.GetPreventiveCalendarProcedure, s.GetPreventiveCalendar, opts...))
	mux.Handle(dashboardv1.AddPreventiveEventProcedure, connect.NewUnaryHandler(dashboardv1.AddPreventiveEventProcedure, s.AddPreventiveEvent, opts...))
	mux.Handle(dashboardv1.UpdatePreventiveEventStatusProcedure, connect.NewUnaryHandler(dashboardv1.UpdatePreventiveEventStatusProcedure, s.UpdatePreventiveEventStatus, opts...))
	mux.Handle(dashboardv1.ListVisitsProcedure, connect.NewUnaryHandler(dashboardv1.ListVisitsProcedure, s.ListVisits, opts...))
	mux.Handle(dashboardv1.ListLabResultsProcedure, connect.NewUnaryHandler(dashboardv1.ListLabResultsProcedure, s.ListLabResults, opts...))
	mux.Handle(dashboardv1.SubmitSymptomReportProcedure, connect.NewUnaryHandler(dashboardv1.SubmitSymptomReportProcedure, s.SubmitSymptomReport, opts...))
	mux.Handle(dashboardv1.TriageSymptomsProcedure, connect.NewUnaryHandler(dashboardv1.TriageSymptomsProcedure, s.TriageSymptoms, opts...))
	mux.Handle(dashboardv1.GetSmartCityDataProcedure, connect.NewUnaryHandler(dashboardv1.GetSmartCityDataProcedure, s.GetSmartCityData, opts...))
	mux.Handle(dashboardv1.ListTeamsProcedure, connect.NewUnaryHandler(dashboardv1.ListTeamsProcedure, s.ListTeams, opts...))
	mux.Handle(dashboardv1.GetTeamProcedure, connect.NewUnaryHandler(dashboardv1.GetTeamProcedure, s.GetTeam, opts...))
	mux.Handle(dashboardv1.ListTerritoriesProcedure, connect.NewUnaryHandler(dashboardv1.ListTerritoriesProcedure, s.ListTerritories, opts...))
	mux.Handle(dashboardv1.ListNeighborhoodEventsProcedure, connect.NewUnaryHandler(dashboardv1.ListNeighborhoodEventsProcedure, s.ListNeighborhoodEvents, opts...))
	mux.Handle(dashboardv1.JoinEventProcedure, connect.NewUnaryHandler(dashboardv1.JoinEventProcedure, s.JoinEvent, opts...))
	mux.Handle(dashboardv1.ListRewardsProcedure, connect.NewUnaryHandler(dashboardv1.ListRewardsProcedure, s.ListRewards, opts...))
	mux.Handle(dashboardv1.RedeemRewardProcedure, connect.NewUnaryHandler(dashboardv1.RedeemRewardProcedure, s.RedeemReward, opts...))
	mux.Handle(dashboardv1.GetPreferencesProcedure, connect.NewUnaryHandler(dashboardv1.GetPreferencesProcedure, s.GetPreferences, opts...))
	mux.Handle(dashboardv1.SetThemeProcedure, connect.NewUnaryHandler(dashboardv1.SetThemeProcedure, s.SetTheme, opts...))
	mux.Handle(dashboardv1.ToggleThemeProcedure, connect.NewUnaryHandler(dashboardv1.ToggleThemeProcedure, s.ToggleTheme, opts...))
	mux.Handle(dashboardv1.SetContrastModeProcedure, connect.NewUnaryHandler(dashboardv1.SetContrastModeProcedure, s.SetContrastMode, opts...))
	mux.Handle(dashboardv1.SetFontSizeProcedure, connect.NewUnaryHandler(dashboardv1.SetFontSizeProcedure, s.SetFontSize, opts...))

	return dashboardv1.DashboardServicePath, mux
}

func (s *DashboardServer) GetSummary(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[domain.DashboardSummary], error) {
	summary, err := s.svc.Summary(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&summary), nil
}

func (s *DashboardServer) GetUser(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[domain.User], error) {
	user, err := s.svc.User(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&user), nil
}

func (s *DashboardServer) ListMessages(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[dashboardv1.MessagesResponse], error) {
	messages, err := s.svc.Messages(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.MessagesResponse{Messages: messages}), nil
}

func (s *DashboardServer) GetMessage(ctx context.Context, req *connect.Request[dashboardv1.IDRequest]) (*connect.Response[domain.Message], error) {
	msg, err := s.svc.Message(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&msg), nil
}

func (s *DashboardServer) MarkMessageAsRead(ctx context.Context, req *connect.Request[dashboardv1.IDRequest]) (*connect.Response[dashboardv1.Empty], error) {
	if err := s.svc.MarkMessageAsRead(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.Empty{}), nil
}

func (s *DashboardServer) ListRecommendations(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[dashboardv1.RecommendationsResponse], error) {
	recs, err := s.svc.Recommendations(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.RecommendationsResponse{Recommendations: recs}), nil
}

func (s *DashboardServer) RefreshRecommendations(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[dashboardv1.RecommendationsResponse], error) {
	recs, err := s.svc.RefreshRecommendations(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.RecommendationsResponse{Recommendations: recs}), nil
}

func (s *DashboardServer) GetTreatmentPlan(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[domain.TreatmentPlan], error) {
	plan, err := s.svc.TreatmentPlan(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&plan), nil
}

func (s *DashboardServer) UpdateTaskStatus(ctx context.Context, req *connect.Request[dashboardv1.UpdateTaskStatusRequest]) (*connect.Response[dashboardv1.Empty], error) {
	if err := s.svc.UpdateTaskStatus(ctx, req.Msg.TaskID, req.Msg.Done); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.Empty{}), nil
}

func (s *DashboardServer) GetPreventiveCalendar(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[dashboardv1.PreventiveCalendarResponse], error) {
	events, err := s.svc.PreventiveCalendar(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.PreventiveCalendarResponse{Events: events}), nil
}

func (s *DashboardServer) AddPreventiveEvent(ctx context.Context, req *connect.Request[domain.NewPreventiveEvent]) (*connect.Response[domain.PreventiveEvent], error) {
	event, err := s.svc.AddPreventiveEvent(ctx, *req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&event), nil
}

func (s *DashboardServer) UpdatePreventiveEventStatus(ctx context.Context, req *connect.Request[dashboardv1.UpdatePreventiveEventStatusRequest]) (*connect.Response[dashboardv1.Empty], error) {
	if err := s.svc.UpdatePreventiveEventStatus(ctx, req.Msg.EventID, req.Msg.Status); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.Empty{}), nil
}

func (s *DashboardServer) ListVisits(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[domain.VisitSchedule], error) {
	schedule, err := s.svc.Visits(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&schedule), nil
}

func (s *DashboardServer) ListLabResults(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[dashboardv1.LabResultsResponse], error) {
	results, err := s.svc.LabResults(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.LabResultsResponse{Results: results}), nil
}

func (s *DashboardServer) SubmitSymptomReport(ctx context.Context, req *connect.Request[domain.SymptomReport]) (*connect.Response[domain.AIReport], error) {
	report, err := s.svc.SubmitSymptomReport(ctx, *req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&report), nil
}

func (s *DashboardServer) TriageSymptoms(ctx context.Context, req *connect.Request[dashboardv1.TriageSymptomsRequest]) (*connect.Response[domain.AIReport], error) {
	report, err := s.svc.TriageSymptoms(ctx, req.Msg.Symptoms)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&report), nil
}

func (s *DashboardServer) GetSmartCityData(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[domain.SmartCityData], error) {
	data, err := s.svc.SmartCity(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&data), nil
}

func (s *DashboardServer) ListTeams(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[dashboardv1.TeamsResponse], error) {
	teams, err := s.svc.Teams(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.TeamsResponse{Teams: teams}), nil
}

func (s *DashboardServer) GetTeam(ctx context.Context, req *connect.Request[dashboardv1.IDRequest]) (*connect.Response[domain.Team], error) {
	team, err := s.svc.Team(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&team), nil
}

func (s *DashboardServer) ListTerritories(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[dashboardv1.TerritoriesResponse], error) {
	territories, err := s.svc.Territories(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.TerritoriesResponse{Territories: territories}), nil
}

func (s *DashboardServer) ListNeighborhoodEvents(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[dashboardv1.NeighborhoodEventsResponse], error) {
	events, err := s.svc.NeighborhoodEvents(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.NeighborhoodEventsResponse{Events: events}), nil
}

func (s *DashboardServer) JoinEvent(ctx context.Context, req *connect.Request[dashboardv1.IDRequest]) (*connect.Response[dashboardv1.Empty], error) {
	if err := s.svc.JoinEvent(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.Empty{}), nil
}

func (s *DashboardServer) ListRewards(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[dashboardv1.RewardsResponse], error) {
	rewards, err := s.svc.Rewards(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dashboardv1.RewardsResponse{Rewards: rewards}), nil
}

func (s *DashboardServer) RedeemReward(ctx context.Context, req *connect.Request[dashboardv1.IDRequest]) (*connect.Response[domain.Redemption], error) {
	result, err := s.svc.RedeemReward(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&result), nil
}

func (s *DashboardServer) GetPreferences(_ context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[dashboardv1.PreferencesResponse], error) {
	return s.preferencesResponse(s.svc.Preferences().Snapshot()), nil
}

func (s *DashboardServer) SetTheme(ctx context.Context, req *connect.Request[dashboardv1.SetThemeRequest]) (*connect.Response[dashboardv1.PreferencesResponse], error) {
	prefs, err := s.svc.Preferences().SetTheme(ctx, req.Msg.Theme)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.preferencesResponse(prefs), nil
}

func (s *DashboardServer) ToggleTheme(ctx context.Context, _ *connect.Request[dashboardv1.Empty]) (*connect.Response[dashboardv1.PreferencesResponse], error) {
	prefs, err := s.svc.Preferences().ToggleTheme(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.preferencesResponse(prefs), nil
}

func (s *DashboardServer) SetContrastMode(ctx context.Context, req *connect.Request[dashboardv1.SetContrastModeRequest]) (*connect.Response[dashboardv1.PreferencesResponse], error) {
	prefs, err := s.svc.Preferences().SetContrastMode(ctx, req.Msg.ContrastMode)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.preferencesResponse(prefs), nil
}

func (s *DashboardServer) SetFontSize(ctx context.Context, req *connect.Request[dashboardv1.SetFontSizeRequest]) (*connect.Response[dashboardv1.PreferencesResponse], error) {
	prefs, err := s.svc.Preferences().SetFontSize(ctx, req.Msg.FontSize)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.preferencesResponse(prefs), nil
}

func (s *DashboardServer) preferencesResponse(prefs preferences.Preferences) *connect.Response[dashboardv1.PreferencesResponse] {
	res := &dashboardv1.PreferencesResponse{Preferences: prefs, Classes: prefs.Classes()}
	if user, ok := s.svc.Preferences().User(); ok {
		res.User = &user
	}
	return connect.NewResponse(res)
}

func toConnectError(err error) error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, domain.ErrValidation):
		code = connect.CodeInvalidArgument
	case errors.Is(err, domain.ErrInsufficientBalance), errors.Is(err, domain.ErrRewardUnavailable):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, domain.ErrCapacityExceeded):
		code = connect.CodeResourceExhausted
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	}
	return connect.NewError(code, err)
}
