package response_models

type DashboardKPIBlock struct {
	TotalItineraries int64 `json:"total_itineraries"`
	TotalDays        int64 `json:"total_days"`
	TotalActivities  int64 `json:"total_activities"`
}

type TopDestination struct {
	Destination string `json:"destination"`
	Count       int64  `json:"count"`
}

type DashboardReport struct {
	KPIs            DashboardKPIBlock   `json:"kpis"`
	ActivityMix     []ActivityTypeCount `json:"activity_mix"`
	TopDestinations []TopDestination    `json:"top_destinations"`
	Recent          []ItineraryResponse `json:"recent"`
}
