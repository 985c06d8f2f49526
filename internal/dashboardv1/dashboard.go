// Package dashboardv1 holds the wire messages and procedure names of the
// dashboard RPC service. Messages are plain structs carried as JSON.
package dashboardv1

import (
	"healthdash/internal/domain"
	"healthdash/internal/preferences"
)

const DashboardServiceName = "healthdash.v1.DashboardService"

const DashboardServicePath = "/" + DashboardServiceName + "/"

const (
	GetSummaryProcedure                  = DashboardServicePath + "GetSummary"
	GetUserProcedure                     = DashboardServicePath + "GetUser"
	ListMessagesProcedure                = DashboardServicePath + "ListMessages"
	GetMessageProcedure                  = DashboardServicePath + "GetMessage"
	MarkMessageAsReadProcedure           = DashboardServicePath + "MarkMessageAsRead"
	ListRecommendationsProcedure         = DashboardServicePath + "ListRecommendations"
	RefreshRecommendationsProcedure      = DashboardServicePath + "RefreshRecommendations"
	GetTreatmentPlanProcedure            = DashboardServicePath + "GetTreatmentPlan"
	UpdateTaskStatusProcedure            = DashboardServicePath + "UpdateTaskStatus"
	GetPreventiveCalendarProcedure       = DashboardServicePath + "GetPreventiveCalendar"
	AddPreventiveEventProcedure          = DashboardServicePath + "AddPreventiveEvent"
	UpdatePreventiveEventStatusProcedure = DashboardServicePath + "UpdatePreventiveEventStatus"
	ListVisitsProcedure                  = DashboardServicePath + "ListVisits"
	ListLabResultsProcedure              = DashboardServicePath + "ListLabResults"
	SubmitSymptomReportProcedure         = DashboardServicePath + "SubmitSymptomReport"
	TriageSymptomsProcedure              = DashboardServicePath + "TriageSymptoms"
	GetSmartCityDataProcedure            = DashboardServicePath + "GetSmartCityData"
	ListTeamsProcedure                   = DashboardServicePath + "ListTeams"
	GetTeamProcedure                     = DashboardServicePath + "GetTeam"
	ListTerritoriesProcedure             = DashboardServicePath + "ListTerritories"
	ListNeighborhoodEventsProcedure      = DashboardServicePath + "ListNeighborhoodEvents"
	JoinEventProcedure                   = DashboardServicePath + "JoinEvent"
	ListRewardsProcedure                 = DashboardServicePath + "ListRewards"
	RedeemRewardProcedure                = DashboardServicePath + "RedeemReward"
	GetPreferencesProcedure              = DashboardServicePath + "GetPreferences"
	SetThemeProcedure                    = DashboardServicePath + "SetTheme"
	ToggleThemeProcedure                 = DashboardServicePath + "ToggleTheme"
	SetContrastModeProcedure             = DashboardServicePath + "SetContrastMode"
	SetFontSizeProcedure                 = DashboardServicePath + "SetFontSize"
)

type Empty struct{}

type IDRequest struct {
	ID string `json:"id"`
}

type UpdateTaskStatusRequest struct {
	TaskID string `json:"taskId"`
	Done   bool   `json:"done"`
}

type UpdatePreventiveEventStatusRequest struct {
	EventID string                  `json:"eventId"`
	Status  domain.PreventiveStatus `json:"status"`
}

type TriageSymptomsRequest struct {
	Symptoms []string `json:"symptoms"`
}

type SetThemeRequest struct {
	Theme preferences.Theme `json:"theme"`
}

type SetContrastModeRequest struct {
	ContrastMode preferences.ContrastMode `json:"contrastMode"`
}

type SetFontSizeRequest struct {
	FontSize preferences.FontSize `json:"fontSize"`
}

type MessagesResponse struct {
	Messages []domain.Message `json:"messages"`
}

type RecommendationsResponse struct {
	Recommendations []domain.Recommendation `json:"recommendations"`
}

type PreventiveCalendarResponse struct {
	Events []domain.PreventiveEvent `json:"events"`
}

type LabResultsResponse struct {
	Results []domain.LabResult `json:"results"`
}

type TeamsResponse struct {
	Teams []domain.Team `json:"teams"`
}

type TerritoriesResponse struct {
	Territories []domain.Territory `json:"territories"`
}

type NeighborhoodEventsResponse struct {
	Events []domain.NeighborhoodEvent `json:"events"`
}

type RewardsResponse struct {
	Rewards []domain.Reward `json:"rewards"`
}

type PreferencesResponse struct {
	Preferences preferences.Preferences `json:"preferences"`
	Classes     []string                `json:"classes"`
	User        *domain.User            `json:"user,omitempty"`
}
