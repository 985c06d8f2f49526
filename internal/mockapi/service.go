// Package mockapi is the in-memory data service behind the dashboard. Every
// call waits on a Delayer before touching state, standing in for a network
// round trip.
package mockapi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"healthdash/internal/constants"
	"healthdash/internal/domain"
	"healthdash/internal/latency"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type Service struct {
	mu     sync.Mutex
	data   Dataset
	delay  latency.Delayer
	logger zerolog.Logger
	now    func() time.Time
}

func New(delay latency.Delayer, logger zerolog.Logger) *Service {
	return NewWithData(Seed(time.Now()), delay, logger)
}

// NewWithData builds an isolated service over a copy of data.
func NewWithData(data Dataset, delay latency.Delayer, logger zerolog.Logger) *Service {
	data = data.clone()
	data.TreatmentPlan.Progress = domain.Progress(data.TreatmentPlan.Tasks)
	return &Service{
		data:   data,
		delay:  delay,
		logger: logger,
		now:    time.Now,
	}
}

// call waits out the simulated latency, then runs fn under the store lock.
func (s *Service) call(ctx context.Context, fn func(d *Dataset) error) error {
	if err := s.delay.Delay(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

func (s *Service) GetUser(ctx context.Context) (domain.User, error) {
	var user domain.User
	err := s.call(ctx, func(d *Dataset) error {
		user = d.User
		return nil
	})
	return user, err
}

func (s *Service) GetMessages(ctx context.Context) ([]domain.Message, error) {
	var out []domain.Message
	err := s.call(ctx, func(d *Dataset) error {
		out = domain.CloneMessages(d.Messages)
		return nil
	})
	return out, err
}

func (s *Service) GetMessage(ctx context.Context, id string) (domain.Message, error) {
	var out domain.Message
	err := s.call(ctx, func(d *Dataset) error {
		i := indexByID(d.Messages, id, func(m domain.Message) string { return m.ID })
		if i < 0 {
			return fmt.Errorf("message %q: %w", id, domain.ErrNotFound)
		}
		out = d.Messages[i].Clone()
		return nil
	})
	return out, err
}

func (s *Service) MarkMessageAsRead(ctx context.Context, id string) error {
	return s.call(ctx, func(d *Dataset) error {
		i := indexByID(d.Messages, id, func(m domain.Message) string { return m.ID })
		if i < 0 {
			return fmt.Errorf("message %q: %w", id, domain.ErrNotFound)
		}
		d.Messages[i].Unread = false
		s.logger.Debug().Str("message_id", id).Msg("message marked as read")
		return nil
	})
}

func (s *Service) GetRecommendations(ctx context.Context) ([]domain.Recommendation, error) {
	var out []domain.Recommendation
	err := s.call(ctx, func(d *Dataset) error {
		out = domain.CloneSlice(d.Recommendations)
		return nil
	})
	return out, err
}

// RefreshRecommendations simulates a re-analysis. The stored list is left
// untouched.
func (s *Service) RefreshRecommendations(ctx context.Context) ([]domain.Recommendation, error) {
	var out []domain.Recommendation
	err := s.call(ctx, func(d *Dataset) error {
		out = make([]domain.Recommendation, len(d.Recommendations))
		for i, r := range d.Recommendations {
			r.Description += " (Updated)"
			out[i] = r
		}
		return nil
	})
	return out, err
}

func (s *Service) GetTreatmentPlan(ctx context.Context) (domain.TreatmentPlan, error) {
	var out domain.TreatmentPlan
	err := s.call(ctx, func(d *Dataset) error {
		out = d.TreatmentPlan.Clone()
		return nil
	})
	return out, err
}

func (s *Service) UpdateTaskStatus(ctx context.Context, taskID string, done bool) error {
	return s.call(ctx, func(d *Dataset) error {
		plan := &d.TreatmentPlan
		i := indexByID(plan.Tasks, taskID, func(t domain.Task) string { return t.ID })
		if i < 0 {
			return fmt.Errorf("task %q: %w", taskID, domain.ErrNotFound)
		}
		plan.Tasks[i].Done = done
		plan.Progress = domain.Progress(plan.Tasks)
		s.logger.Debug().
			Str("task_id", taskID).
			Bool("done", done).
			Int("progress", plan.Progress).
			Msg("task status updated")
		return nil
	})
}

func (s *Service) GetVisits(ctx context.Context) ([]domain.Visit, error) {
	var out []domain.Visit
	err := s.call(ctx, func(d *Dataset) error {
		out = domain.CloneSlice(d.Visits)
		return nil
	})
	return out, err
}

func (s *Service) GetLabResults(ctx context.Context) ([]domain.LabResult, error) {
	var out []domain.LabResult
	err := s.call(ctx, func(d *Dataset) error {
		out = domain.CloneSlice(d.LabResults)
		return nil
	})
	return out, err
}

// SubmitSymptomReport classifies a report by severity. Nothing is stored.
func (s *Service) SubmitSymptomReport(ctx context.Context, report domain.SymptomReport) (domain.AIReport, error) {
	if len(report.Symptoms) == 0 {
		return domain.AIReport{}, fmt.Errorf("symptom report needs at least one symptom: %w", domain.ErrValidation)
	}
	if report.Severity < 0 || report.Severity > constants.MaxSymptomSeverity {
		return domain.AIReport{}, fmt.Errorf("severity %d outside 0..%d: %w", report.Severity, constants.MaxSymptomSeverity, domain.ErrValidation)
	}
	if err := s.delay.Delay(ctx); err != nil {
		return domain.AIReport{}, err
	}
	return s.newReport(report.Symptoms, assessSeverity(report.Severity))
}

// TriageSymptoms classifies a bare symptom selection. Nothing is stored.
func (s *Service) TriageSymptoms(ctx context.Context, symptoms []string) (domain.AIReport, error) {
	if len(symptoms) == 0 {
		return domain.AIReport{}, fmt.Errorf("triage needs at least one symptom: %w", domain.ErrValidation)
	}
	if err := s.delay.Delay(ctx); err != nil {
		return domain.AIReport{}, err
	}
	return s.newReport(symptoms, assessSymptoms(symptoms))
}

func (s *Service) newReport(symptoms []string, a assessment) (domain.AIReport, error) {
	id, err := gonanoid.New()
	if err != nil {
		return domain.AIReport{}, fmt.Errorf("failed to generate report id: %w", err)
	}
	s.logger.Debug().Str("report_id", id).Str("urgency", string(a.urgency)).Msg("symptom report assessed")
	return domain.AIReport{
		ID:              id,
		Date:            s.now().UTC().Format(time.RFC3339),
		Symptoms:        domain.CloneSlice(symptoms),
		Analysis:        a.analysis,
		Recommendations: a.recommendations,
		Urgency:         a.urgency,
	}, nil
}

func (s *Service) GetSmartCityData(ctx context.Context) (domain.SmartCityData, error) {
	var out domain.SmartCityData
	err := s.call(ctx, func(d *Dataset) error {
		out = d.SmartCity.Clone()
		return nil
	})
	return out, err
}

func (s *Service) GetTeams(ctx context.Context) ([]domain.Team, error) {
	var out []domain.Team
	err := s.call(ctx, func(d *Dataset) error {
		out = domain.CloneSlice(d.Teams)
		return nil
	})
	return out, err
}

func (s *Service) GetTeam(ctx context.Context, id string) (domain.Team, error) {
	var out domain.Team
	err := s.call(ctx, func(d *Dataset) error {
		i := indexByID(d.Teams, id, func(t domain.Team) string { return t.ID })
		if i < 0 {
			return fmt.Errorf("team %q: %w", id, domain.ErrNotFound)
		}
		out = d.Teams[i]
		return nil
	})
	return out, err
}

func (s *Service) GetTerritories(ctx context.Context) ([]domain.Territory, error) {
	var out []domain.Territory
	err := s.call(ctx, func(d *Dataset) error {
		out = domain.CloneSlice(d.Territories)
		return nil
	})
	return out, err
}

func (s *Service) GetNeighborhoodEvents(ctx context.Context) ([]domain.NeighborhoodEvent, error) {
	var out []domain.NeighborhoodEvent
	err := s.call(ctx, func(d *Dataset) error {
		out = domain.CloneSlice(d.Events)
		return nil
	})
	return out, err
}

// JoinEvent adds one participant. A full event is left unchanged and
// reported as ErrCapacityExceeded.
func (s *Service) JoinEvent(ctx context.Context, eventID string) error {
	return s.call(ctx, func(d *Dataset) error {
		i := indexByID(d.Events, eventID, func(e domain.NeighborhoodEvent) string { return e.ID })
		if i < 0 {
			return fmt.Errorf("event %q: %w", eventID, domain.ErrNotFound)
		}
		event := &d.Events[i]
		if event.Full() {
			return fmt.Errorf("event %q has %d/%d participants: %w", eventID, event.Participants, event.MaxParticipants, domain.ErrCapacityExceeded)
		}
		event.Participants++
		s.logger.Debug().
			Str("event_id", eventID).
			Int("participants", event.Participants).
			Int("max_participants", event.MaxParticipants).
			Msg("event joined")
		return nil
	})
}

func (s *Service) GetRewards(ctx context.Context) ([]domain.Reward, error) {
	var out []domain.Reward
	err := s.call(ctx, func(d *Dataset) error {
		out = domain.CloneSlice(d.Rewards)
		return nil
	})
	return out, err
}

// RedeemReward reports true and charges the user iff the reward is available
// and affordable. A false result always carries the reason as an error.
// balance is the user's points after the call, also on rejection.
func (s *Service) RedeemReward(ctx context.Context, rewardID string) (ok bool, balance int, err error) {
	err = s.call(ctx, func(d *Dataset) error {
		balance = d.User.Points
		i := indexByID(d.Rewards, rewardID, func(r domain.Reward) string { return r.ID })
		if i < 0 {
			return fmt.Errorf("reward %q: %w", rewardID, domain.ErrNotFound)
		}
		reward := d.Rewards[i]
		if !reward.Available {
			return fmt.Errorf("reward %q: %w", rewardID, domain.ErrRewardUnavailable)
		}
		if d.User.Points < reward.Points {
			return fmt.Errorf("reward %q costs %d, user has %d: %w", rewardID, reward.Points, d.User.Points, domain.ErrInsufficientBalance)
		}
		d.User.Points -= reward.Points
		balance = d.User.Points
		s.logger.Info().
			Str("reward_id", rewardID).
			Int("cost", reward.Points).
			Int("balance", balance).
			Msg("reward redeemed")
		return nil
	})
	return err == nil, balance, err
}

func (s *Service) GetPreventiveCalendar(ctx context.Context) ([]domain.PreventiveEvent, error) {
	var out []domain.PreventiveEvent
	err := s.call(ctx, func(d *Dataset) error {
		out = domain.CloneSlice(d.PreventiveEvents)
		return nil
	})
	return out, err
}

func (s *Service) AddPreventiveEvent(ctx context.Context, in domain.NewPreventiveEvent) (domain.PreventiveEvent, error) {
	event, err := s.validatePreventiveEvent(in)
	if err != nil {
		return domain.PreventiveEvent{}, err
	}
	if event.ID, err = gonanoid.New(); err != nil {
		return domain.PreventiveEvent{}, fmt.Errorf("failed to generate event id: %w", err)
	}
	err = s.call(ctx, func(d *Dataset) error {
		d.PreventiveEvents = append(d.PreventiveEvents, event)
		s.logger.Debug().Str("event_id", event.ID).Str("name", event.Name).Msg("preventive event added")
		return nil
	})
	if err != nil {
		return domain.PreventiveEvent{}, err
	}
	return event, nil
}

func (s *Service) validatePreventiveEvent(in domain.NewPreventiveEvent) (domain.PreventiveEvent, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.PreventiveEvent{}, fmt.Errorf("preventive event name is empty: %w", domain.ErrValidation)
	}
	if _, err := time.Parse(domain.DateLayout, in.Date); err != nil {
		return domain.PreventiveEvent{}, fmt.Errorf("preventive event date %q: %w", in.Date, domain.ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = domain.PreventiveUpcoming
	}
	if !status.Valid() {
		return domain.PreventiveEvent{}, fmt.Errorf("preventive event status %q: %w", status, domain.ErrValidation)
	}
	return domain.PreventiveEvent{Name: name, Date: in.Date, Status: status}, nil
}

func (s *Service) UpdatePreventiveEventStatus(ctx context.Context, eventID string, status domain.PreventiveStatus) error {
	if !status.Valid() {
		return fmt.Errorf("preventive event status %q: %w", status, domain.ErrValidation)
	}
	return s.call(ctx, func(d *Dataset) error {
		i := indexByID(d.PreventiveEvents, eventID, func(e domain.PreventiveEvent) string { return e.ID })
		if i < 0 {
			return fmt.Errorf("preventive event %q: %w", eventID, domain.ErrNotFound)
		}
		d.PreventiveEvents[i].Status = status
		return nil
	})
}

func indexByID[T any](items []T, id string, key func(T) string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}
