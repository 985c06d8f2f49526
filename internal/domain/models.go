package domain

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	TeamID string `json:"teamId,omitempty"`
	Points int    `json:"points"`
}

type Team struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Color                 string `json:"color"`
	District              string `json:"district"`
	Members               int    `json:"members"`
	Points                int    `json:"points"`
	TerritoriesControlled int    `json:"territoriesControlled"`
	Rank                  int    `json:"rank"` // assigned upstream, never recomputed here
}

type Territory struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	District     string  `json:"district"`
	ControlledBy string  `json:"controlledBy,omitempty"` // team ID, empty when unclaimed
	Points       int     `json:"points"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

type EventType string

const (
	EventWalk    EventType = "walk"
	EventRun     EventType = "run"
	EventBike    EventType = "bike"
	EventWorkout EventType = "workout"
)

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

type NeighborhoodEvent struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Organizer       string      `json:"organizer"`
	TeamID          string      `json:"teamId"`
	Date            string      `json:"date"`
	Location        string      `json:"location"`
	Participants    int         `json:"participants"`
	MaxParticipants int         `json:"maxParticipants"`
	Type            EventType   `json:"type"`
	Points          int         `json:"points"`
	Status          EventStatus `json:"status"`
}

func (e NeighborhoodEvent) Full() bool {
	return e.Participants >= e.MaxParticipants
}

type Message struct {
	ID          string   `json:"id"`
	From        string   `json:"from"`
	Subject     string   `json:"subject"`
	Snippet     string   `json:"snippet"`
	Time        string   `json:"time"`
	Unread      bool     `json:"unread"`
	Content     string   `json:"content,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

type Recommendation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	ActionURL   string   `json:"actionUrl,omitempty"`
}

type TaskGroup string

const (
	TaskActivity   TaskGroup = "Activity"
	TaskHydration  TaskGroup = "Hydration"
	TaskDiet       TaskGroup = "Diet"
	TaskMedication TaskGroup = "Medication"
)

type Task struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Done      bool      `json:"done"`
	Group     TaskGroup `json:"group"`
	Frequency string    `json:"frequency"`
}

type Motivation string

const (
	MotivationLow    Motivation = "Low"
	MotivationMedium Motivation = "Medium"
	MotivationHigh   Motivation = "High"
)

type TreatmentPlan struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Progress   int        `json:"progress"`
	Motivation Motivation `json:"motivation"`
	Tasks      []Task     `json:"tasks"`
	StartDate  string     `json:"startDate"`
	EndDate    string     `json:"endDate,omitempty"`
}

type VisitStatus string

const (
	VisitConfirmed VisitStatus = "Confirmed"
	VisitPending   VisitStatus = "Pending"
	VisitCancelled VisitStatus = "Cancelled"
)

type Visit struct {
	ID        string      `json:"id"`
	Date      string      `json:"date"`
	Doctor    string      `json:"doctor"`
	Place     string      `json:"place"`
	Status    VisitStatus `json:"status"`
	Specialty string      `json:"specialty,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}

type VisitSchedule struct {
	Upcoming []Visit `json:"upcoming"`
	Past     []Visit `json:"past"`
}

type LabStatus string

const (
	LabNormal   LabStatus = "Normal"
	LabAbnormal LabStatus = "Abnormal"
	LabPending  LabStatus = "Pending"
)

type LabResult struct {
	ID       string    `json:"id"`
	Date     string    `json:"date"`
	Name     string    `json:"name"`
	Status   LabStatus `json:"status"`
	Value    string    `json:"value,omitempty"`
	FileURL  string    `json:"fileUrl,omitempty"`
	RepeatAt string    `json:"repeatAt,omitempty"`
}

type Reward struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"` // cost
	Category    string `json:"category"`
	Partner     string `json:"partner"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Available   bool   `json:"available"`
}

type RedeemFailure string

const (
	RedeemNotFound            RedeemFailure = "not_found"
	RedeemUnavailable         RedeemFailure = "unavailable"
	RedeemInsufficientBalance RedeemFailure = "insufficient_balance"
)

type Redemption struct {
	Redeemed bool          `json:"redeemed"`
	Reason   RedeemFailure `json:"reason,omitempty"`
	Balance  int           `json:"balance"`
}

type PreventiveStatus string

const (
	PreventiveDone     PreventiveStatus = "done"
	PreventiveUpcoming PreventiveStatus = "upcoming"
	PreventiveOverdue  PreventiveStatus = "overdue"
)

func (s PreventiveStatus) Valid() bool {
	switch s {
	case PreventiveDone, PreventiveUpcoming, PreventiveOverdue:
		return true
	}
	return false
}

type PreventiveEvent struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Date   string           `json:"date"`
	Status PreventiveStatus `json:"status"`
}

type NewPreventiveEvent struct {
	Name   string           `json:"name"`
	Date   string           `json:"date"`
	Status PreventiveStatus `json:"status,omitempty"`
}

type Urgency string

const (
	UrgencyLow       Urgency = "Low"
	UrgencyMedium    Urgency = "Medium"
	UrgencyHigh      Urgency = "High"
	UrgencyEmergency Urgency = "Emergency"
)

type SymptomReport struct {
	Symptoms        []string `json:"symptoms"`
	Severity        int      `json:"severity"`
	Duration        string   `json:"duration"`
	AdditionalNotes string   `json:"additionalNotes,omitempty"`
}

type AIReport struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	Symptoms        []string `json:"symptoms"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
	Urgency         Urgency  `json:"urgency"`
}

type Pollutant struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type AirQuality struct {
	AQI        int         `json:"aqi"`
	Level      string      `json:"level"`
	Pollutants []Pollutant `json:"pollutants"`
	Timestamp  string      `json:"timestamp"`
}

type PollenType struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type Pollen struct {
	Level    string       `json:"level"`
	Types    []PollenType `json:"types"`
	Forecast string       `json:"forecast"`
}

type WalkingRoute struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Distance        float64 `json:"distance"` // km
	Duration        int     `json:"duration"` // minutes
	GreenScore      int     `json:"greenScore"`
	AirQualityScore int     `json:"airQualityScore"`
}

type HealthCampaign struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Type        string `json:"type"`
}

type DistrictHealth struct {
	District            string `json:"district"`
	ParticipationRate   int    `json:"participationRate"`
	ScreeningsConducted int    `json:"screeningsConducted"`
	HealthScore         int    `json:"healthScore"`
}

type SmartCityData struct {
	AirQuality      AirQuality       `json:"airQuality"`
	Pollen          Pollen           `json:"pollen"`
	WalkingRoutes   []WalkingRoute   `json:"walkingRoutes"`
	HealthCampaigns []HealthCampaign `json:"healthCampaigns"`
	DistrictHealth  []DistrictHealth `json:"districtHealth"`
}

type DashboardSummary struct {
	User            User                `json:"user"`
	Team            *Team               `json:"team,omitempty"`
	UnreadMessages  int                 `json:"unreadMessages"`
	UpcomingEvents  []NeighborhoodEvent `json:"upcomingEvents"`
	Recommendations []Recommendation    `json:"recommendations"`
	PlanProgress    int                 `json:"planProgress"`
}
