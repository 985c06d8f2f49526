package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthdash/internal/constants"
	"healthdash/internal/domain"
	"healthdash/internal/mockapi"
	"healthdash/internal/preferences"
	"healthdash/internal/querycache"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Query keys.
const (
	KeyUser               = "user"
	KeyMessages           = "messages"
	KeyRecommendations    = "recommendations"
	KeyTreatmentPlan      = "treatmentPlan"
	KeyPreventiveCalendar = "preventiveCalendar"
	KeyVisits             = "visits"
	KeyLabResults         = "labResults"
	KeySmartCity          = "smartCity"
	KeyTeams              = "teams"
	KeyTerritories        = "territories"
	KeyNeighborhoodEvents = "neighborhoodEvents"
	KeyRewards            = "rewards"
)

func MessageKey(id string) string { return "message:" + id }
func TeamKey(id string) string { return "team:" + id }

// DashboardService reads through the query cache and keeps it coherent
// after every command.
type DashboardService struct {
	api    *mockapi.Service
	cache  *querycache.Cache
	prefs  *preferences.Store
	logger zerolog.Logger
	now    func() time.Time
}

func NewDashboardService(api *mockapi.Service, cache *querycache.Cache, prefs *preferences.Store, logger zerolog.Logger) *DashboardService {
	s := &DashboardService{api: api, cache: cache, prefs: prefs, logger: logger, now: time.Now}
	prefs.OnChange(func(p preferences.Preferences) {
		s.logger.Info().Strs("classes", p.Classes()).Msg("preferences applied")
	})
	return s
}

// Bootstrap loads persisted preferences and the current user.
func (s *DashboardService) Bootstrap(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.BootstrapTimeout)
	defer cancel()

	if err := s.prefs.Init(ctx); err != nil {
		return err
	}
	user, err := s.User(ctx)
	if err != nil {
		return fmt.Errorf("failed to load current user: %w", err)
	}
	s.prefs.SetUser(&user)
	s.logger.Info().Str("user_id", user.ID).Msg("dashboard bootstrapped")
	return nil
}

func (s *DashboardService) User(ctx context.Context) (domain.User, error) {
	return querycache.Query(ctx, s.cache, KeyUser, s.api.GetUser)
}

func (s *DashboardService) Messages(ctx context.Context) ([]domain.Message, error) {
	return cloned(querycache.Query(ctx, s.cache, KeyMessages, s.api.GetMessages))(domain.CloneMessages)
}

func (s *DashboardService) Message(ctx context.Context, id string) (domain.Message, error) {
	return cloned(querycache.Query(ctx, s.cache, MessageKey(id), func(ctx context.Context) (domain.Message, error) {
		return s.api.GetMessage(ctx, id)
	}))(domain.Message.Clone)
}

func (s *DashboardService) MarkMessageAsRead(ctx context.Context, id string) error {
	if err := s.api.MarkMessageAsRead(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(KeyMessages)
	s.cache.Invalidate(MessageKey(id))
	return nil
}

func (s *DashboardService) Recommendations(ctx context.Context) ([]domain.Recommendation, error) {
	return cloned(querycache.Query(ctx, s.cache, KeyRecommendations, s.api.GetRecommendations))(domain.CloneSlice)
}

// RefreshRecommendations replaces the cached list with a fresh analysis.
func (s *DashboardService) RefreshRecommendations(ctx context.Context) ([]domain.Recommendation, error) {
	recs, err := s.api.RefreshRecommendations(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetData(KeyRecommendations, recs)
	return domain.CloneSlice(recs), nil
}

func (s *DashboardService) TreatmentPlan(ctx context.Context) (domain.TreatmentPlan, error) {
	return cloned(querycache.Query(ctx, s.cache, KeyTreatmentPlan, s.api.GetTreatmentPlan))(domain.TreatmentPlan.Clone)
}

func (s *DashboardService) UpdateTaskStatus(ctx context.Context, taskID string, done bool) error {
	if err := s.api.UpdateTaskStatus(ctx, taskID, done); err != nil {
		return err
	}
	s.cache.Invalidate(KeyTreatmentPlan)
	return nil
}

func (s *DashboardService) PreventiveCalendar(ctx context.Context) ([]domain.PreventiveEvent, error) {
	return cloned(querycache.Query(ctx, s.cache, KeyPreventiveCalendar, s.api.GetPreventiveCalendar))(domain.CloneSlice)
}

func (s *DashboardService) AddPreventiveEvent(ctx context.Context, in domain.NewPreventiveEvent) (domain.PreventiveEvent, error) {
	event, err := s.api.AddPreventiveEvent(ctx, in)
	if err != nil {
		return domain.PreventiveEvent{}, err
	}
	s.cache.Invalidate(KeyPreventiveCalendar)
	return event, nil
}

func (s *DashboardService) UpdatePreventiveEventStatus(ctx context.Context, eventID string, status domain.PreventiveStatus) error {
	if err := s.api.UpdatePreventiveEventStatus(ctx, eventID, status); err != nil {
		return err
	}
	s.cache.Invalidate(KeyPreventiveCalendar)
	return nil
}

func (s *DashboardService) Visits(ctx context.Context) (domain.VisitSchedule, error) {
	visits, err := querycache.Query(ctx, s.cache, KeyVisits, s.api.GetVisits)
	if err != nil {
		return domain.VisitSchedule{}, err
	}
	return domain.PartitionVisits(visits, s.now()), nil
}

func (s *DashboardService) LabResults(ctx context.Context) ([]domain.LabResult, error) {
	return cloned(querycache.Query(ctx, s.cache, KeyLabResults, s.api.GetLabResults))(domain.CloneSlice)
}

func (s *DashboardService) SubmitSymptomReport(ctx context.Context, report domain.SymptomReport) (domain.AIReport, error) {
	return s.api.SubmitSymptomReport(ctx, report)
}

func (s *DashboardService) TriageSymptoms(ctx context.Context, symptoms []string) (domain.AIReport, error) {
	return s.api.TriageSymptoms(ctx, symptoms)
}

func (s *DashboardService) SmartCity(ctx context.Context) (domain.SmartCityData, error) {
	return cloned(querycache.Query(ctx, s.cache, KeySmartCity, s.api.GetSmartCityData))(domain.SmartCityData.Clone)
}

func (s *DashboardService) Teams(ctx context.Context) ([]domain.Team, error) {
	return cloned(querycache.Query(ctx, s.cache, KeyTeams, s.api.GetTeams))(domain.CloneSlice)
}

func (s *DashboardService) Team(ctx context.Context, id string) (domain.Team, error) {
	return querycache.Query(ctx, s.cache, TeamKey(id), func(ctx context.Context) (domain.Team, error) {
		return s.api.GetTeam(ctx, id)
	})
}

func (s *DashboardService) Territories(ctx context.Context) ([]domain.Territory, error) {
	return cloned(querycache.Query(ctx, s.cache, KeyTerritories, s.api.GetTerritories))(domain.CloneSlice)
}

func (s *DashboardService) NeighborhoodEvents(ctx context.Context) ([]domain.NeighborhoodEvent, error) {
	return cloned(querycache.Query(ctx, s.cache, KeyNeighborhoodEvents, s.api.GetNeighborhoodEvents))(domain.CloneSlice)
}

func (s *DashboardService) JoinEvent(ctx context.Context, eventID string) error {
	if err := s.api.JoinEvent(ctx, eventID); err != nil {
		return err
	}
	s.cache.Invalidate(KeyNeighborhoodEvents)
	return nil
}

func (s *DashboardService) Rewards(ctx context.Context) ([]domain.Reward, error) {
	return cloned(querycache.Query(ctx, s.cache, KeyRewards, s.api.GetRewards))(domain.CloneSlice)
}

// RedeemReward turns the expected rejections into a Redemption with a
// reason. Only unexpected failures come back as errors. The balance comes
// from the charge itself, so a charged redemption is always reported as one.
func (s *DashboardService) RedeemReward(ctx context.Context, rewardID string) (domain.Redemption, error) {
	ok, balance, err := s.api.RedeemReward(ctx, rewardID)
	result := domain.Redemption{Redeemed: ok, Balance: balance}
	switch {
	case ok:
		s.cache.Invalidate(KeyUser)
		if user, known := s.prefs.User(); known {
			user.Points = balance
			s.prefs.SetUser(&user)
		}
	case errors.Is(err, domain.ErrNotFound):
		result.Reason = domain.RedeemNotFound
	case errors.Is(err, domain.ErrRewardUnavailable):
		result.Reason = domain.RedeemUnavailable
	case errors.Is(err, domain.ErrInsufficientBalance):
		result.Reason = domain.RedeemInsufficientBalance
	default:
		return domain.Redemption{}, err
	}

	s.logger.Info().
		Str("reward_id", rewardID).
		Bool("redeemed", result.Redeemed).
		Str("reason", string(result.Reason)).
		Int("balance", result.Balance).
		Msg("reward redemption")
	return result, nil
}

// Summary gathers the home dashboard in parallel.
func (s *DashboardService) Summary(ctx context.Context) (domain.DashboardSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	var (
		user     domain.User
		teams    []domain.Team
		events   []domain.NeighborhoodEvent
		messages []domain.Message
		recs     []domain.Recommendation
		plan     domain.TreatmentPlan
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.User(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.Teams(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.NeighborhoodEvents(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = s.Messages(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		recs, err = s.Recommendations(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		plan, err = s.TreatmentPlan(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to build dashboard summary")
		return domain.DashboardSummary{}, fmt.Errorf("failed to build summary: %w", err)
	}

	summary := domain.DashboardSummary{
		User:            user,
		UpcomingEvents:  []domain.NeighborhoodEvent{},
		Recommendations: recs,
		PlanProgress:    plan.Progress,
	}
	for i := range teams {
		if teams[i].ID == user.TeamID {
			team := teams[i]
			summary.Team = &team
			break
		}
	}
	for _, m := range messages {
		if m.Unread {
			summary.UnreadMessages++
		}
	}
	for _, e := range events {
		if e.Status == domain.EventUpcoming {
			summary.UpcomingEvents = append(summary.UpcomingEvents, e)
		}
	}
	if len(summary.Recommendations) > constants.SummaryRecommendationLimit {
		summary.Recommendations = summary.Recommendations[:constants.SummaryRecommendationLimit]
	}
	return summary, nil
}

// cloned copies a cached value before it leaves the service. The cache
// holds the only reference it shares between callers.
func cloned[T any](v T, err error) func(clone func(T) T) (T, error) {
	return func(clone func(T) T) (T, error) {
		if err != nil {
			return v, err
		}
		return clone(v), nil
	}
}

// Preferences exposes the preference store to the transport layer.
func (s *DashboardService) Preferences() *preferences.Store {
	return s.prefs
}
