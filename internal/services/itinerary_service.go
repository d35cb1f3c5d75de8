package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"viajaia/internal/models/db_models"
	"viajaia/internal/models/request_models"
	"viajaia/internal/models/response_models"
	"viajaia/internal/repositories"
	"viajaia/pkg/logger"
	mem "viajaia/pkg/memcache"
	"viajaia/pkg/utils"
)

const (
	stagedPrefsTTL  = 30 * time.Minute
	similarLimit    = 5
	dashboardLimit  = 5
	maxListPageSize = 100
)

// activityTypeDisplay maps the four fixed categories to chart label + color.
// Order here is the render order of the breakdown.
var activityTypeDisplay = []struct {
	Type  string
	Label string
	Color string
}{
	{db_models.ActivitySightseeing, "Turismo", "#005A8D"},
	{db_models.ActivityFood, "Gastronomia", "#FF6B6B"},
	{db_models.ActivityGeneric, "Lazer", "#FFD166"},
	{db_models.ActivityRelax, "Relax", "#4ADE80"},
}

type ItineraryServiceInterface interface {
	GenerateAndSave(ctx context.Context, accountID uuid.UUID, prefs request_models.TravelPreferencesRequest) (*response_models.ItineraryDetailResponse, error)
	StagePreferences(prefs request_models.TravelPreferencesRequest) (string, error)
	RedeemStaged(ctx context.Context, accountID uuid.UUID, ticket string) (*response_models.ItineraryDetailResponse, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]response_models.ItineraryResponse, error)
	GetDetails(ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID) (*response_models.ItineraryDetailResponse, error)
	GetSummary(ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID) (*response_models.ItinerarySummaryResponse, error)
	GetSimilar(ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID) ([]response_models.SimilarItineraryResponse, error)
	Delete(ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID) error
}

type ItineraryService struct {
	itineraryRepo repositories.ItineraryRepository
	embeddingRepo repositories.ItineraryEmbeddingRepository
	generator     utils.GeneratorClientInterface
	embedder      utils.EmbeddingClientInterface
	pending       mem.PendingPreferenceStore
}

func NewItineraryService(
	itineraryRepo repositories.ItineraryRepository,
	embeddingRepo repositories.ItineraryEmbeddingRepository,
	generator utils.GeneratorClientInterface,
	embedder utils.EmbeddingClientInterface,
	pending mem.PendingPreferenceStore,
) ItineraryServiceInterface {
	return &ItineraryService{
		itineraryRepo: itineraryRepo,
		embeddingRepo: embeddingRepo,
		generator:     generator,
		embedder:      embedder,
		pending:       pending,
	}
}

func placeholderImageURL(destination string) string {
	return "https://picsum.photos/seed/" + url.QueryEscape(destination) + "/800/400"
}

// GenerateAndSave runs the full flow: prompt the generator, persist the
// returned itinerary as one tree, then write the similarity embedding
// best-effort. A generator failure persists nothing.
func (s *ItineraryService) GenerateAndSave(
	ctx context.Context,
	accountID uuid.UUID,
	prefs request_models.TravelPreferencesRequest,
) (*response_models.ItineraryDetailResponse, error) {

	generated, raw, err := s.generator.GenerateItinerary(ctx, prefs)
	if err != nil {
		return nil, err
	}

	itinerary := &db_models.Itinerary{
		AccountID:           accountID,
		Destination:         generated.Destination,
		TotalBudgetEstimate: generated.TotalBudgetEstimate,
		ImageURL:            placeholderImageURL(generated.Destination),
		DurationDays:        prefs.Duration,
		BudgetLevel:         prefs.BudgetLevel,
		Travelers:           prefs.Travelers,
		Interests:           prefs.InterestList(),
		RawResponse:         raw,
		Days:                make([]db_models.ItineraryDay, 0, len(generated.Days)),
	}
	for _, d := range generated.Days {
		day := db_models.ItineraryDay{
			DayNumber:  d.DayNumber,
			Theme:      d.Theme,
			Activities: make([]db_models.ItineraryActivity, 0, len(d.Activities)),
		}
		for pos, a := range d.Activities {
			day.Activities = append(day.Activities, db_models.ItineraryActivity{
				Position:     pos,
				Time:         a.Time,
				Title:        a.Title,
				Description:  a.Description,
				Location:     a.Location,
				CostEstimate: a.CostEstimate,
				ActivityType: a.Type,
			})
		}
		itinerary.Days = append(itinerary.Days, day)
	}

	if err := s.itineraryRepo.Insert(ctx, itinerary); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.storeEmbedding(ctx, itinerary)

	return response_models.BuildItineraryDetailResponse(itinerary), nil
}

// storeEmbedding is best-effort: a failed embedding never fails the save.
func (s *ItineraryService) storeEmbedding(ctx context.Context, itinerary *db_models.Itinerary) {
	text := itinerary.Destination
	if len(itinerary.Interests) > 0 {
		text += " " + strings.Join(itinerary.Interests, " ")
	}

	vector, err := s.embedder.GetEmbedding(ctx, text)
	if err != nil {
		logger.Log.Warn("embedding skipped", zap.String("itinerary_id", itinerary.ID.String()), zap.Error(err))
		return
	}

	err = s.embeddingRepo.Upsert(ctx, &db_models.ItineraryEmbedding{
		ItineraryID: itinerary.ID,
		AccountID:   itinerary.AccountID,
		Destination: itinerary.Destination,
		Embedding:   vector,
	})
	if err != nil {
		logger.Log.Warn("embedding not stored", zap.String("itinerary_id", itinerary.ID.String()), zap.Error(err))
	}
}

func (s *ItineraryService) StagePreferences(prefs request_models.TravelPreferencesRequest) (string, error) {
	ticket, err := utils.GenerateSecureToken(24)
	if err != nil {
		return "", utils.ErrInvalidInput
	}
	s.pending.Set(ticket, prefs, stagedPrefsTTL)
	return ticket, nil
}

func (s *ItineraryService) RedeemStaged(
	ctx context.Context,
	accountID uuid.UUID,
	ticket string,
) (*response_models.ItineraryDetailResponse, error) {

	prefs, ok := s.pending.Consume(ticket)
	if !ok {
		return nil, utils.ErrTicketExpired
	}
	return s.GenerateAndSave(ctx, accountID, prefs)
}

func (s *ItineraryService) ListByAccount(
	ctx context.Context, accountID uuid.UUID, page, pageSize int,
) ([]response_models.ItineraryResponse, error) {

	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxListPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	itineraries, err := s.itineraryRepo.ListByAccountID(ctx, accountID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ItineraryResponse, 0, len(itineraries))
	for i := range itineraries {
		out = append(out, response_models.BuildItineraryResponse(&itineraries[i]))
	}
	return out, nil
}

func (s *ItineraryService) GetDetails(
	ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID,
) (*response_models.ItineraryDetailResponse, error) {

	itinerary, err := s.itineraryRepo.GetByID(ctx, accountID, itineraryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return response_models.BuildItineraryDetailResponse(itinerary), nil
}

func (s *ItineraryService) GetSummary(
	ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID,
) (*response_models.ItinerarySummaryResponse, error) {

	itinerary, err := s.itineraryRepo.GetByID(ctx, accountID, itineraryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}

	counts := make(map[string]int64)
	var total int64
	for _, d := range itinerary.Days {
		for _, a := range d.Activities {
			counts[a.ActivityType]++
			total++
		}
	}

	return &response_models.ItinerarySummaryResponse{
		ItineraryID:     itinerary.ID.String(),
		Destination:     itinerary.Destination,
		TotalActivities: total,
		Breakdown:       buildBreakdown(counts),
	}, nil
}

// buildBreakdown keeps the fixed category order; zero counts are omitted.
func buildBreakdown(counts map[string]int64) []response_models.ActivityTypeCount {
	out := make([]response_models.ActivityTypeCount, 0, len(activityTypeDisplay))
	for _, cfg := range activityTypeDisplay {
		if counts[cfg.Type] == 0 {
			continue
		}
		out = append(out, response_models.ActivityTypeCount{
			Type:  cfg.Type,
			Label: cfg.Label,
			Color: cfg.Color,
			Count: counts[cfg.Type],
		})
	}
	return out
}

func (s *ItineraryService) GetSimilar(
	ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID,
) ([]response_models.SimilarItineraryResponse, error) {

	itinerary, err := s.itineraryRepo.GetByID(ctx, accountID, itineraryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}

	text := itinerary.Destination
	if len(itinerary.Interests) > 0 {
		text += " " + strings.Join(itinerary.Interests, " ")
	}
	vector, err := s.embedder.GetEmbedding(ctx, text)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	rows, err := s.embeddingRepo.SearchNearest(ctx, accountID, vector, itinerary.ID, similarLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SimilarItineraryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, response_models.SimilarItineraryResponse{
			ID:          row.ItineraryID.String(),
			Destination: row.Destination,
			Similarity:  row.Similarity,
		})
	}
	return out, nil
}

func (s *ItineraryService) Delete(ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID) error {
	if err := s.itineraryRepo.DeleteByID(ctx, accountID, itineraryID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
