package request_models

import "strings"

const (
	BudgetEconomic = "economic"
	BudgetModerate = "moderate"
	BudgetLuxury   = "luxury"

	TravelersSolo    = "solo"
	TravelersCouple  = "couple"
	TravelersFamily  = "family"
	TravelersFriends = "friends"
)

// TravelPreferencesRequest is one trip request as it comes off the planning
// form. Interests arrive as free text ("food, history") and are normalized
// server-side.
type TravelPreferencesRequest struct {
	Destination string `json:"destination" binding:"required"`
	Duration    int    `json:"duration" binding:"required,min=1,max=30"`
	BudgetLevel string `json:"budget_level" binding:"required,oneof=economic moderate luxury"`
	Travelers   string `json:"travelers" binding:"required,oneof=solo couple family friends"`
	Interests   string `json:"interests"`
}

// InterestList splits the comma-separated interests field, trimming entries
// and discarding empty ones.
func (r TravelPreferencesRequest) InterestList() []string {
	parts := strings.Split(r.Interests, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type RedeemStagedRequest struct {
	Ticket string `json:"ticket" binding:"required"`
}
