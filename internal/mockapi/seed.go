package mockapi

import (
	"time"

	"healthdash/internal/domain"
)

// Dataset is the full set of collections a Service owns.
type Dataset struct {
	User             domain.User
	Messages         []domain.Message
	Recommendations  []domain.Recommendation
	TreatmentPlan    domain.TreatmentPlan
	Visits           []domain.Visit
	LabResults       []domain.LabResult
	PreventiveEvents []domain.PreventiveEvent
	Teams            []domain.Team
	Territories      []domain.Territory
	Events           []domain.NeighborhoodEvent
	Rewards          []domain.Reward
	SmartCity        domain.SmartCityData
}

// Seed returns the demo dataset. now stamps the air quality reading.
func Seed(now time.Time) Dataset {
	return Dataset{
		User: domain.User{
			ID:     "1",
			Name:   "Anna Kowalska",
			Email:  "anna.kowalska@example.com",
			TeamID: "team-1",
			Points: 1250,
		},
		Messages: []domain.Message{
			{
				ID:          "1",
				From:        "Dr Anna Kowalska",
				Subject:     "Test Results Available",
				Snippet:     "Your recent blood test results are now available for review...",
				Time:        "2 hours ago",
				Unread:      true,
				Content:     "Hello John,\n\nYour recent blood test results are now available for review. Overall, the results look good. Your cholesterol levels have improved since your last visit. Please schedule a follow-up appointment to discuss the details.\n\nBest regards,\nDr Anna Kowalska",
				Attachments: []string{"blood-test-results.pdf"},
			},
			{
				ID:      "2",
				From:    "City Health Clinic",
				Subject: "Appointment Reminder",
				Snippet: "This is a reminder for your upcoming appointment on...",
				Time:    "1 day ago",
				Unread:  true,
				Content: "Dear John,\n\nThis is a reminder for your upcoming appointment on October 25th at 10:00 AM with Dr Anna Kowalska. Please arrive 15 minutes early to complete any necessary paperwork.\n\nCity Health Clinic",
			},
			{
				ID:      "3",
				From:    "Dr Michael Chen",
				Subject: "Preventive Care Recommendations",
				Snippet: "Based on your age and health history, we recommend...",
				Time:    "3 days ago",
				Unread:  false,
				Content: "Hi John,\n\nBased on your age and health history, we recommend scheduling the following preventive screenings:\n- Annual physical examination\n- Cardiovascular health check\n- Vision test\n\nPlease contact our office to schedule these appointments.\n\nDr Michael Chen",
			},
		},
		Recommendations: []domain.Recommendation{
			{
				ID:          "1",
				Title:       "Schedule Follow-up Visit",
				Description: "Your recent test results require a follow-up consultation with Dr Kowalska within the next 2 weeks.",
				Severity:    domain.SeverityMedium,
				Category:    "Appointments",
				ActionURL:   "/visits",
			},
			{
				ID:          "2",
				Title:       "Preventive Screening Due",
				Description: "Annual cardiovascular screening is recommended based on your age and health profile.",
				Severity:    domain.SeverityHigh,
				Category:    "Preventive Care",
				ActionURL:   "/visits",
			},
			{
				ID:          "3",
				Title:       "Increase Physical Activity",
				Description: "Your activity levels are below recommended targets. Consider adding 30 minutes of walking daily.",
				Severity:    domain.SeverityLow,
				Category:    "Lifestyle",
				ActionURL:   "/treatment-plan",
			},
			{
				ID:          "4",
				Title:       "Hydration Goals",
				Description: "You're meeting 85% of your daily hydration goals. Keep up the good work!",
				Severity:    domain.SeverityLow,
				Category:    "Wellness",
			},
		},
		TreatmentPlan: domain.TreatmentPlan{
			ID:         "1",
			Name:       "Preventive Health & Wellness Plan",
			Motivation: domain.MotivationHigh,
			StartDate:  "2025-09-01",
			Tasks: []domain.Task{
				{ID: "1", Label: "30 minutes walking", Done: true, Group: domain.TaskActivity, Frequency: "Daily"},
				{ID: "2", Label: "Drink 2L water", Done: true, Group: domain.TaskHydration, Frequency: "Daily"},
				{ID: "3", Label: "Eat 5 portions of vegetables", Done: false, Group: domain.TaskDiet, Frequency: "Daily"},
				{ID: "4", Label: "20 minutes cardio exercise", Done: false, Group: domain.TaskActivity, Frequency: "3x per week"},
				{ID: "5", Label: "Take vitamin D supplement", Done: true, Group: domain.TaskMedication, Frequency: "Daily"},
				{ID: "6", Label: "Meditation or relaxation", Done: false, Group: domain.TaskActivity, Frequency: "Daily"},
			},
		},
		Visits: []domain.Visit{
			{ID: "1", Date: "2025-10-25", Doctor: "Dr Anna Kowalska", Place: "City Health Clinic", Status: domain.VisitConfirmed, Specialty: "General Practice", Notes: "Follow-up for test results"},
			{ID: "2", Date: "2025-11-05", Doctor: "Dr Michael Chen", Place: "Cardiology Centre", Status: domain.VisitPending, Specialty: "Cardiology", Notes: "Annual cardiovascular screening"},
			{ID: "3", Date: "2025-09-15", Doctor: "Dr Sarah Williams", Place: "City Health Clinic", Status: domain.VisitConfirmed, Specialty: "Dermatology", Notes: "Skin check completed"},
			{ID: "4", Date: "2025-08-20", Doctor: "Dr Anna Kowalska", Place: "City Health Clinic", Status: domain.VisitConfirmed, Specialty: "General Practice", Notes: "Annual physical examination"},
		},
		LabResults: []domain.LabResult{
			{ID: "1", Date: "2025-10-15", Name: "Complete Blood Count", Status: domain.LabNormal, Value: "All values within range", FileURL: "/results/cbc-2025-10-15.pdf"},
			{ID: "2", Date: "2025-10-15", Name: "Lipid Panel", Status: domain.LabNormal, Value: "Total cholesterol: 180 mg/dL", FileURL: "/results/lipid-2025-10-15.pdf"},
			{ID: "3", Date: "2025-08-20", Name: "Vitamin D Level", Status: domain.LabAbnormal, Value: "18 ng/mL (Low)", RepeatAt: "2025-11-20", FileURL: "/results/vitamin-d-2025-08-20.pdf"},
			{ID: "4", Date: "2025-08-20", Name: "Thyroid Function", Status: domain.LabNormal, Value: "TSH: 2.5 mIU/L"},
		},
		PreventiveEvents: []domain.PreventiveEvent{
			{ID: "1", Name: "Complete blood count", Date: "2025-11-20", Status: domain.PreventiveUpcoming},
			{ID: "2", Name: "Cervical screening", Date: "2025-09-10", Status: domain.PreventiveDone},
			{ID: "3", Name: "Blood pressure check", Date: "2025-10-05", Status: domain.PreventiveOverdue},
			{ID: "4", Name: "Mammography", Date: "2025-12-01", Status: domain.PreventiveUpcoming},
		},
		Teams: []domain.Team{
			{ID: "team-1", Name: "Rowerowa Retkinia", Color: "#6C5CE7", District: "Retkinia", Members: 45, Points: 12500, TerritoriesControlled: 8, Rank: 1},
			{ID: "team-2", Name: "Biegacze Bałut", Color: "#00B894", District: "Bałuty", Members: 38, Points: 11200, TerritoriesControlled: 7, Rank: 2},
			{ID: "team-3", Name: "Widzewskie Spacery", Color: "#FDCB6E", District: "Widzew", Members: 32, Points: 9800, TerritoriesControlled: 5, Rank: 3},
			{ID: "team-4", Name: "Górna Aktywność", Color: "#E17055", District: "Górna", Members: 28, Points: 8500, TerritoriesControlled: 4, Rank: 4},
		},
		Territories: []domain.Territory{
			{ID: "t1", Name: "Park Poniatowskiego", District: "Retkinia", ControlledBy: "team-1", Points: 500, Lat: 51.7592, Lng: 19.4560},
			{ID: "t2", Name: "Las Łagiewnicki", District: "Retkinia", ControlledBy: "team-1", Points: 800, Lat: 51.7200, Lng: 19.3800},
			{ID: "t3", Name: "Park Źródliska", District: "Bałuty", ControlledBy: "team-2", Points: 600, Lat: 51.8000, Lng: 19.4700},
			{ID: "t4", Name: "Manufaktura", District: "Śródmieście", ControlledBy: "team-2", Points: 700, Lat: 51.7810, Lng: 19.4500},
			{ID: "t5", Name: "Park Reymonta", District: "Widzew", ControlledBy: "team-3", Points: 550, Lat: 51.7650, Lng: 19.5100},
			{ID: "t6", Name: "Piotrkowska", District: "Śródmieście", Points: 900, Lat: 51.7687, Lng: 19.4569},
		},
		Events: []domain.NeighborhoodEvent{
			{
				ID:              "e1",
				Title:           "Morning walk around Retkinia",
				Description:     "Group nordic walking through the nicest corners of the district",
				Organizer:       "Maria Nowak",
				TeamID:          "team-1",
				Date:            "2025-10-25T07:00:00",
				Location:        "Park Poniatowskiego",
				Participants:    12,
				MaxParticipants: 20,
				Type:            domain.EventWalk,
				Points:          50,
				Status:          domain.EventUpcoming,
			},
			{
				ID:              "e2",
				Title:           "Bałuty run",
				Description:     "5 km group run with warm-up and stretching",
				Organizer:       "Piotr Kowalczyk",
				TeamID:          "team-2",
				Date:            "2025-10-26T18:00:00",
				Location:        "Park Źródliska",
				Participants:    8,
				MaxParticipants: 15,
				Type:            domain.EventRun,
				Points:          75,
				Status:          domain.EventUpcoming,
			},
			{
				ID:              "e3",
				Title:           "Bike trip",
				Description:     "20 km ride through the green parts of Widzew",
				Organizer:       "Katarzyna Wiśniewska",
				TeamID:          "team-3",
				Date:            "2025-10-27T10:00:00",
				Location:        "Park Reymonta",
				Participants:    15,
				MaxParticipants: 25,
				Type:            domain.EventBike,
				Points:          100,
				Status:          domain.EventUpcoming,
			},
		},
		Rewards: []domain.Reward{
			{ID: "r1", Title: "20% off at Aquapark Fala", Description: "Aquapark entry voucher", Points: 500, Category: "Sport & leisure", Partner: "Aquapark Fala", Available: true},
			{ID: "r2", Title: "Free blood pressure check", Description: "Free check at a city health point", Points: 200, Category: "Health", Partner: "Miejskie Centrum Zdrowia", Available: true},
			{ID: "r3", Title: "Manufaktura voucher", Description: "50 PLN for shopping at the mall", Points: 1000, Category: "Shopping", Partner: "Manufaktura", Available: true},
			{ID: "r4", Title: "Monthly MPK ticket", Description: "Free monthly public transport pass", Points: 800, Category: "Transport", Partner: "MPK Łódź", Available: true},
		},
		SmartCity: domain.SmartCityData{
			AirQuality: domain.AirQuality{
				AQI:   45,
				Level: "Good",
				Pollutants: []domain.Pollutant{
					{Name: "PM2.5", Value: 12, Unit: "μg/m³"},
					{Name: "PM10", Value: 25, Unit: "μg/m³"},
					{Name: "O3", Value: 35, Unit: "ppb"},
					{Name: "NO2", Value: 18, Unit: "ppb"},
				},
				Timestamp: now.UTC().Format(time.RFC3339),
			},
			Pollen: domain.Pollen{
				Level: "Moderate",
				Types: []domain.PollenType{
					{Name: "Grass", Level: "High"},
					{Name: "Tree", Level: "Low"},
					{Name: "Weed", Level: "Moderate"},
				},
				Forecast: "Pollen levels expected to decrease over the next 48 hours",
			},
			WalkingRoutes: []domain.WalkingRoute{
				{ID: "1", Name: "Park Poniatowskiego trail", Distance: 3.2, Duration: 45, GreenScore: 95, AirQualityScore: 88},
				{ID: "2", Name: "City centre loop", Distance: 2.5, Duration: 35, GreenScore: 65, AirQualityScore: 72},
				{ID: "3", Name: "Forest trail", Distance: 5.0, Duration: 75, GreenScore: 98, AirQualityScore: 95},
			},
			HealthCampaigns: []domain.HealthCampaign{
				{ID: "1", Title: "Free cardiovascular screening", Description: "Free heart health checks for residents over 40", Location: "Central Community Centre", Date: "2025-11-10", Type: "Screening"},
				{ID: "2", Title: "Diabetes Awareness Week", Description: "Education sessions and free blood sugar tests", Location: "Miejskie Centrum Zdrowia", Date: "2025-11-14", Type: "Education"},
				{ID: "3", Title: "Mental Health Support Group", Description: "Weekly support sessions for mental wellbeing", Location: "Wellness Centre", Date: "2025-10-28", Type: "Support"},
			},
			DistrictHealth: []domain.DistrictHealth{
				{District: "Śródmieście", ParticipationRate: 78, ScreeningsConducted: 1250, HealthScore: 85},
				{District: "Retkinia", ParticipationRate: 65, ScreeningsConducted: 890, HealthScore: 78},
				{District: "Widzew", ParticipationRate: 72, ScreeningsConducted: 1100, HealthScore: 82},
				{District: "Górna", ParticipationRate: 68, ScreeningsConducted: 950, HealthScore: 80},
				{District: "Bałuty", ParticipationRate: 82, ScreeningsConducted: 1400, HealthScore: 88},
			},
		},
	}
}
