// Package client calls the dashboard RPC service over the connect protocol
// with JSON bodies.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"healthdash/internal/constants"
	"healthdash/internal/dashboardv1"
	"healthdash/internal/domain"
	"healthdash/internal/preferences"

	"github.com/valyala/fasthttp"
)

type DashboardClient struct {
	baseURL string
	client  *fasthttp.Client
}

// RPCError is a connect error body returned by the server.
type RPCError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewDashboardClient(baseURL string) *DashboardClient {
	return &DashboardClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ClientReadTimeout,
			WriteTimeout:        constants.ClientWriteTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *DashboardClient) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	return call[dashboardv1.Empty, domain.DashboardSummary](ctx, c, dashboardv1.GetSummaryProcedure, &dashboardv1.Empty{})
}

func (c *DashboardClient) User(ctx context.Context) (*domain.User, error) {
	return call[dashboardv1.Empty, domain.User](ctx, c, dashboardv1.GetUserProcedure, &dashboardv1.Empty{})
}

func (c *DashboardClient) Messages(ctx context.Context) ([]domain.Message, error) {
	res, err := call[dashboardv1.Empty, dashboardv1.MessagesResponse](ctx, c, dashboardv1.ListMessagesProcedure, &dashboardv1.Empty{})
	if err != nil {
		return nil, err
	}
	return res.Messages, nil
}

func (c *DashboardClient) Message(ctx context.Context, id string) (*domain.Message, error) {
	return call[dashboardv1.IDRequest, domain.Message](ctx, c, dashboardv1.GetMessageProcedure, &dashboardv1.IDRequest{ID: id})
}

func (c *DashboardClient) MarkMessageAsRead(ctx context.Context, id string) error {
	_, err := call[dashboardv1.IDRequest, dashboardv1.Empty](ctx, c, dashboardv1.MarkMessageAsReadProcedure, &dashboardv1.IDRequest{ID: id})
	return err
}

func (c *DashboardClient) TreatmentPlan(ctx context.Context) (*domain.TreatmentPlan, error) {
	return call[dashboardv1.Empty, domain.TreatmentPlan](ctx, c, dashboardv1.GetTreatmentPlanProcedure, &dashboardv1.Empty{})
}

func (c *DashboardClient) UpdateTaskStatus(ctx context.Context, taskID string, done bool) error {
	_, err := call[dashboardv1.UpdateTaskStatusRequest, dashboardv1.Empty](ctx, c, dashboardv1.UpdateTaskStatusProcedure, &dashboardv1.UpdateTaskStatusRequest{TaskID: taskID, Done: done})
	return err
}

func (c *DashboardClient) NeighborhoodEvents(ctx context.Context) ([]domain.NeighborhoodEvent, error) {
	res, err := call[dashboardv1.Empty, dashboardv1.NeighborhoodEventsResponse](ctx, c, dashboardv1.ListNeighborhoodEventsProcedure, &dashboardv1.Empty{})
	if err != nil {
		return nil, err
	}
	return res.Events, nil
}

func (c *DashboardClient) JoinEvent(ctx context.Context, eventID string) error {
	_, err := call[dashboardv1.IDRequest, dashboardv1.Empty](ctx, c, dashboardv1.JoinEventProcedure, &dashboardv1.IDRequest{ID: eventID})
	return err
}

func (c *DashboardClient) Rewards(ctx context.Context) ([]domain.Reward, error) {
	res, err := call[dashboardv1.Empty, dashboardv1.RewardsResponse](ctx, c, dashboardv1.ListRewardsProcedure, &dashboardv1.Empty{})
	if err != nil {
		return nil, err
	}
	return res.Rewards, nil
}

func (c *DashboardClient) RedeemReward(ctx context.Context, rewardID string) (*domain.Redemption, error) {
	return call[dashboardv1.IDRequest, domain.Redemption](ctx, c, dashboardv1.RedeemRewardProcedure, &dashboardv1.IDRequest{ID: rewardID})
}

func (c *DashboardClient) SubmitSymptomReport(ctx context.Context, report domain.SymptomReport) (*domain.AIReport, error) {
	return call[domain.SymptomReport, domain.AIReport](ctx, c, dashboardv1.SubmitSymptomReportProcedure, &report)
}

func (c *DashboardClient) TriageSymptoms(ctx context.Context, symptoms []string) (*domain.AIReport, error) {
	return call[dashboardv1.TriageSymptomsRequest, domain.AIReport](ctx, c, dashboardv1.TriageSymptomsProcedure, &dashboardv1.TriageSymptomsRequest{Symptoms: symptoms})
}

func (c *DashboardClient) PreventiveCalendar(ctx context.Context) ([]domain.PreventiveEvent, error) {
	res, err := call[dashboardv1.Empty, dashboardv1.PreventiveCalendarResponse](ctx, c, dashboardv1.GetPreventiveCalendarProcedure, &dashboardv1.Empty{})
	if err != nil {
		return nil, err
	}
	return res.Events, nil
}

func (c *DashboardClient) AddPreventiveEvent(ctx context.Context, in domain.NewPreventiveEvent) (*domain.PreventiveEvent, error) {
	return call[domain.NewPreventiveEvent, domain.PreventiveEvent](ctx, c, dashboardv1.AddPreventiveEventProcedure, &in)
}

func (c *DashboardClient) Preferences(ctx context.Context) (*dashboardv1.PreferencesResponse, error) {
	return call[dashboardv1.Empty, dashboardv1.PreferencesResponse](ctx, c, dashboardv1.GetPreferencesProcedure, &dashboardv1.Empty{})
}

func (c *DashboardClient) SetTheme(ctx context.Context, theme preferences.Theme) (*dashboardv1.PreferencesResponse, error) {
	return call[dashboardv1.SetThemeRequest, dashboardv1.PreferencesResponse](ctx, c, dashboardv1.SetThemeProcedure, &dashboardv1.SetThemeRequest{Theme: theme})
}

func (c *DashboardClient) ToggleTheme(ctx context.Context) (*dashboardv1.PreferencesResponse, error) {
	return call[dashboardv1.Empty, dashboardv1.PreferencesResponse](ctx, c, dashboardv1.ToggleThemeProcedure, &dashboardv1.Empty{})
}

func (c *DashboardClient) SetContrastMode(ctx context.Context, mode preferences.ContrastMode) (*dashboardv1.PreferencesResponse, error) {
	return call[dashboardv1.SetContrastModeRequest, dashboardv1.PreferencesResponse](ctx, c, dashboardv1.SetContrastModeProcedure, &dashboardv1.SetContrastModeRequest{ContrastMode: mode})
}

func (c *DashboardClient) SetFontSize(ctx context.Context, size preferences.FontSize) (*dashboardv1.PreferencesResponse, error) {
	return call[dashboardv1.SetFontSizeRequest, dashboardv1.PreferencesResponse](ctx, c, dashboardv1.SetFontSizeProcedure, &dashboardv1.SetFontSizeRequest{FontSize: size})
}

func call[Req, Res any](ctx context.Context, c *DashboardClient, procedure string, in *Req) (*Res, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + procedure)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Connect-Protocol-Version", "1")
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		rpcErr := &RPCError{Status: resp.StatusCode()}
		if err := json.Unmarshal(resp.Body(), rpcErr); err != nil || rpcErr.Code == "" {
			return nil, fmt.Errorf("API error: %d", resp.StatusCode())
		}
		return nil, rpcErr
	}

	var result Res
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", procedure, err)
	}
	return &result, nil
}
