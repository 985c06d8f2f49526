package mockapi

import (
	"fmt"
	"strings"

	"healthdash/internal/domain"
)

type assessment struct {
	urgency         domain.Urgency
	analysis        string
	recommendations []string
}

// assessSeverity classifies a self-reported severity: >=7 High, 4-6 Medium,
// below 4 Low.
func assessSeverity(severity int) assessment {
	switch {
	case severity >= 7:
		return assessment{
			urgency:  domain.UrgencyHigh,
			analysis: "The symptoms you've reported suggest a condition that requires medical attention.",
			recommendations: []string{
				"Schedule an appointment with your GP within 24 hours",
				"Monitor symptoms closely",
				"Seek immediate care if symptoms worsen",
			},
		}
	case severity >= 4:
		return assessment{
			urgency:  domain.UrgencyMedium,
			analysis: "Your symptoms indicate a moderate health concern that should be evaluated.",
			recommendations: []string{
				"Schedule an appointment with your GP within the next few days",
				"Keep a symptom diary",
				"Avoid strenuous activities until evaluated",
			},
		}
	default:
		return assessment{
			urgency:  domain.UrgencyLow,
			analysis: "Based on the symptoms you've reported, this appears to be a minor health concern.",
			recommendations: []string{
				"Monitor symptoms for the next 24-48 hours",
				"Stay hydrated and get adequate rest",
				"Consider over-the-counter remedies if appropriate",
			},
		}
	}
}

var (
	seriousSymptoms = map[string]bool{
		"shortness of breath": true,
		"fever":               true,
		"chest pain":          true,
	}
	moderateSymptoms = map[string]bool{
		"headache":       true,
		"abdominal pain": true,
		"rash":           true,
		"nausea":         true,
	}
)

// assessSymptoms triages a symptom set without a severity score.
func assessSymptoms(symptoms []string) assessment {
	var serious, moderate bool
	for _, s := range symptoms {
		key := strings.ToLower(strings.TrimSpace(s))
		serious = serious || seriousSymptoms[key]
		moderate = moderate || moderateSymptoms[key]
	}

	var a assessment
	switch {
	case serious:
		a.urgency = domain.UrgencyEmergency
		a.recommendations = []string{"Your symptoms may be serious. Contact a doctor immediately or go to the emergency department."}
	case moderate && len(symptoms) > 2:
		a.urgency = domain.UrgencyHigh
		a.recommendations = []string{"Your symptoms suggest a moderate risk. A medical consultation in the next few days is advised."}
	case moderate:
		a.urgency = domain.UrgencyMedium
		a.recommendations = []string{"Your symptoms appear mild. Monitor how you feel and rest."}
	default:
		a.urgency = domain.UrgencyLow
		a.recommendations = []string{"Your symptoms are mild and do not indicate a serious condition. Remember to rest and stay hydrated."}
	}
	a.analysis = fmt.Sprintf("Based on the selected symptoms: %s, the risk level was assessed as: %s.", strings.Join(symptoms, ", "), a.urgency)
	return a
}
