package mockapi

import "healthdash/internal/domain"

func (d Dataset) clone() Dataset {
	d.Messages = domain.CloneMessages(d.Messages)
	d.Recommendations = domain.CloneSlice(d.Recommendations)
	d.TreatmentPlan = d.TreatmentPlan.Clone()
	d.Visits = domain.CloneSlice(d.Visits)
	d.LabResults = domain.CloneSlice(d.LabResults)
	d.PreventiveEvents = domain.CloneSlice(d.PreventiveEvents)
	d.Teams = domain.CloneSlice(d.Teams)
	d.Territories = domain.CloneSlice(d.Territories)
	d.Events = domain.CloneSlice(d.Events)
	d.Rewards = domain.CloneSlice(d.Rewards)
	d.SmartCity = d.SmartCity.Clone()
	return d
}
