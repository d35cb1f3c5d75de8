package response_models

import (
	"sort"

	dbm "viajaia/internal/models/db_models"
	"viajaia/pkg/utils"
)

type ItineraryResponse struct {
	ID                  string   `json:"id"`
	Destination         string   `json:"destination"`
	CreatedAt           string   `json:"created_at"`
	TotalBudgetEstimate string   `json:"total_budget_estimate"`
	ImageURL            string   `json:"image_url,omitempty"`
	DurationDays        int      `json:"duration_days"`
	BudgetLevel         string   `json:"budget_level"`
	Travelers           string   `json:"travelers"`
	Interests           []string `json:"interests"`
}

type ActivityResponse struct {
	Time         string `json:"time"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	CostEstimate string `json:"cost_estimate"`
	Type         string `json:"type"`
}

type DayPlanResponse struct {
	DayNumber  int                `json:"day_number"`
	Theme      string             `json:"theme"`
	Activities []ActivityResponse `json:"activities"`
}

type ItineraryDetailResponse struct {
	ItineraryResponse
	Days []DayPlanResponse `json:"days"`
}

// ActivityTypeCount is one slice of the viewer's breakdown chart.
type ActivityTypeCount struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Color string `json:"color"`
	Count int64  `json:"count"`
}

type ItinerarySummaryResponse struct {
	ItineraryID     string              `json:"itinerary_id"`
	Destination     string              `json:"destination"`
	TotalActivities int64               `json:"total_activities"`
	Breakdown       []ActivityTypeCount `json:"breakdown"`
}

type SimilarItineraryResponse struct {
	ID          string  `json:"id"`
	Destination string  `json:"destination"`
	Similarity  float64 `json:"similarity"`
}

func BuildItineraryResponse(it *dbm.Itinerary) ItineraryResponse {
	return ItineraryResponse{
		ID:                  it.ID.String(),
		Destination:         it.Destination,
		CreatedAt:           utils.FormatRFC3339(utils.FromUnixSeconds(it.CreatedAt)),
		TotalBudgetEstimate: it.TotalBudgetEstimate,
		ImageURL:            it.ImageURL,
		DurationDays:        it.DurationDays,
		BudgetLevel:         it.BudgetLevel,
		Travelers:           it.Travelers,
		Interests:           append([]string{}, it.Interests...),
	}
}

// BuildItineraryDetailResponse flattens the preloaded day/activity tree,
// re-sorting by day number and position so the viewer always renders 1..N.
func BuildItineraryDetailResponse(it *dbm.Itinerary) *ItineraryDetailResponse {
	out := &ItineraryDetailResponse{
		ItineraryResponse: BuildItineraryResponse(it),
		Days:              make([]DayPlanResponse, 0, len(it.Days)),
	}

	days := append([]dbm.ItineraryDay{}, it.Days...)
	sort.Slice(days, func(i, j int) bool { return days[i].DayNumber < days[j].DayNumber })

	for _, d := range days {
		acts := append([]dbm.ItineraryActivity{}, d.Activities...)
		sort.Slice(acts, func(i, j int) bool { return acts[i].Position < acts[j].Position })

		day := DayPlanResponse{
			DayNumber:  d.DayNumber,
			Theme:      d.Theme,
			Activities: make([]ActivityResponse, 0, len(acts)),
		}
		for _, a := range acts {
			day.Activities = append(day.Activities, ActivityResponse{
				Time:         a.Time,
				Title:        a.Title,
				Description:  a.Description,
				Location:     a.Location,
				CostEstimate: a.CostEstimate,
				Type:         a.ActivityType,
			})
		}
		out.Days = append(out.Days, day)
	}
	return out
}
