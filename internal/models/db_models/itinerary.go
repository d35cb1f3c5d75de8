package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	ActivitySightseeing = "sightseeing"
	ActivityFood        = "food"
	ActivityGeneric     = "activity"
	ActivityRelax       = "relax"
)

// ActivityTypes is the closed set the generator schema is constrained to.
var ActivityTypes = []string{ActivitySightseeing, ActivityFood, ActivityGeneric, ActivityRelax}

// Itinerary rows are partitioned by AccountID; every repository read filters
// on the owner, so one user can never see another user's trips.
type Itinerary struct {
	BaseModel
	AccountID           uuid.UUID `gorm:"type:uuid;index"`
	Destination         string
	TotalBudgetEstimate string
	ImageURL            string
	DurationDays        int
	BudgetLevel         string
	Travelers           string
	Interests           pq.StringArray `gorm:"type:text[]"`
	// Untouched generator payload, kept for auditing what the model returned.
	RawResponse datatypes.JSON `gorm:"type:jsonb"`

	Days []ItineraryDay
}

type ItineraryDay struct {
	BaseModel
	ItineraryID uuid.UUID `gorm:"type:uuid;index"`
	DayNumber   int
	Theme       string

	Activities []ItineraryActivity
}

type ItineraryActivity struct {
	BaseModel
	ItineraryDayID uuid.UUID `gorm:"type:uuid;index"`
	Position       int
	Time           string
	Title          string
	Description    string
	Location       string
	CostEstimate   string
	ActivityType   string
}
