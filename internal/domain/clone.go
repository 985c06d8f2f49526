package domain

// CloneSlice returns a shallow copy of in, preserving nil.
func CloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append([]T(nil), in...)
}

func (m Message) Clone() Message {
	m.Attachments = CloneSlice(m.Attachments)
	return m
}

func CloneMessages(in []Message) []Message {
	if in == nil {
		return nil
	}
	out := make([]Message, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}

func (p TreatmentPlan) Clone() TreatmentPlan {
	p.Tasks = CloneSlice(p.Tasks)
	return p
}

func (d SmartCityData) Clone() SmartCityData {
	d.AirQuality.Pollutants = CloneSlice(d.AirQuality.Pollutants)
	d.Pollen.Types = CloneSlice(d.Pollen.Types)
	d.WalkingRoutes = CloneSlice(d.WalkingRoutes)
	d.HealthCampaigns = CloneSlice(d.HealthCampaigns)
	d.DistrictHealth = CloneSlice(d.DistrictHealth)
	return d
}
