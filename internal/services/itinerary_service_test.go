package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viajaia/internal/models/db_models"
	"viajaia/internal/models/request_models"
	"viajaia/internal/repositories"
	mem "viajaia/pkg/memcache"
	"viajaia/pkg/utils"
)

type fakeItineraryRepo struct {
	items     map[uuid.UUID]*db_models.Itinerary
	insertErr error
}

func newFakeItineraryRepo() *fakeItineraryRepo {
	return &fakeItineraryRepo{items: make(map[uuid.UUID]*db_models.Itinerary)}
}

func (r *fakeItineraryRepo) Insert(_ context.Context, itinerary *db_models.Itinerary) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if itinerary.ID == uuid.Nil {
		itinerary.ID = uuid.New()
	}
	r.items[itinerary.ID] = itinerary
	return nil
}

func (r *fakeItineraryRepo) ListByAccountID(_ context.Context, accountID uuid.UUID, _, _ int) ([]db_models.Itinerary, error) {
	var out []db_models.Itinerary
	for _, it := range r.items {
		if it.AccountID == accountID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeItineraryRepo) GetByID(_ context.Context, accountID uuid.UUID, itineraryID uuid.UUID) (*db_models.Itinerary, error) {
	it, ok := r.items[itineraryID]
	if !ok || it.AccountID != accountID {
		return nil, nil
	}
	return it, nil
}

func (r *fakeItineraryRepo) DeleteByID(_ context.Context, accountID uuid.UUID, itineraryID uuid.UUID) error {
	it, ok := r.items[itineraryID]
	if !ok || it.AccountID != accountID {
		return nil
	}
	delete(r.items, itineraryID)
	return nil
}

type fakeEmbeddingRepo struct {
	upserts []*db_models.ItineraryEmbedding
	rows    []repositories.SimilarItineraryRow
}

func (r *fakeEmbeddingRepo) Upsert(_ context.Context, embedding *db_models.ItineraryEmbedding) error {
	r.upserts = append(r.upserts, embedding)
	return nil
}

func (r *fakeEmbeddingRepo) SearchNearest(_ context.Context, _ uuid.UUID, _ pgvector.Vector, _ uuid.UUID, _ int) ([]repositories.SimilarItineraryRow, error) {
	return r.rows, nil
}

type fakeGenerator struct {
	itinerary *utils.GeneratedItinerary
	raw       []byte
	err       error
	calls     int
}

func (g *fakeGenerator) GenerateItinerary(_ context.Context, _ request_models.TravelPreferencesRequest) (*utils.GeneratedItinerary, []byte, error) {
	g.calls++
	if g.err != nil {
		return nil, nil, g.err
	}
	return g.itinerary, g.raw, nil
}

type fakeEmbedder struct{}

func (fakeEmbedder) GetEmbedding(_ context.Context, _ string) (pgvector.Vector, error) {
	return pgvector.NewVector([]float32{0.1, 0.2, 0.3}), nil
}

func lisbonItinerary(days int) *utils.GeneratedItinerary {
	out := &utils.GeneratedItinerary{
		Destination:         "Lisboa, Portugal",
		TotalBudgetEstimate: "R$ 4.500,00",
	}
	// Days arrive out of order on purpose; the detail response must re-sort.
	for n := days; n >= 1; n-- {
		out.Days = append(out.Days, utils.GeneratedDay{
			DayNumber: n,
			Theme:     "Dia " + string(rune('0'+n)),
			Activities: []utils.GeneratedActivity{
				{Time: "09:00", Title: "Torre de Belém", Location: "Belém", CostEstimate: "R$ 35,00", Type: "sightseeing"},
				{Time: "13:00", Title: "Pastéis de Belém", Location: "R. de Belém 84", CostEstimate: "R$ 25,00", Type: "food"},
			},
		})
	}
	return out
}

func newTestService(repo *fakeItineraryRepo, embRepo *fakeEmbeddingRepo, gen *fakeGenerator) ItineraryServiceInterface {
	return NewItineraryService(repo, embRepo, gen, fakeEmbedder{}, mem.NewPendingPreferences())
}

func lisbonPrefs() request_models.TravelPreferencesRequest {
	return request_models.TravelPreferencesRequest{
		Destination: "Lisboa",
		Duration:    5,
		BudgetLevel: request_models.BudgetModerate,
		Travelers:   request_models.TravelersCouple,
		Interests:   "história, gastronomia",
	}
}

func TestGenerateAndSavePersistsOneItinerary(t *testing.T) {
	repo := newFakeItineraryRepo()
	embRepo := &fakeEmbeddingRepo{}
	gen := &fakeGenerator{itinerary: lisbonItinerary(5), raw: []byte(`{"destination":"Lisboa, Portugal"}`)}
	svc := newTestService(repo, embRepo, gen)
	accountID := uuid.New()

	resp, err := svc.GenerateAndSave(context.Background(), accountID, lisbonPrefs())
	require.NoError(t, err)
	require.Len(t, repo.items, 1)

	assert.Equal(t, "Lisboa, Portugal", resp.Destination)
	assert.Equal(t, "R$ 4.500,00", resp.TotalBudgetEstimate)
	assert.Equal(t, "https://picsum.photos/seed/Lisboa%2C+Portugal/800/400", resp.ImageURL)
	assert.Equal(t, []string{"história", "gastronomia"}, resp.Interests)

	require.Len(t, resp.Days, 5)
	for i, d := range resp.Days {
		assert.Equal(t, i+1, d.DayNumber)
		require.Len(t, d.Activities, 2)
		assert.Equal(t, "Torre de Belém", d.Activities[0].Title)
		assert.Equal(t, "Pastéis de Belém", d.Activities[1].Title)
	}

	require.Len(t, embRepo.upserts, 1)
	assert.Equal(t, accountID, embRepo.upserts[0].AccountID)
	assert.Equal(t, "Lisboa, Portugal", embRepo.upserts[0].Destination)
}

func TestGenerateAndSaveGeneratorFailurePersistsNothing(t *testing.T) {
	repo := newFakeItineraryRepo()
	gen := &fakeGenerator{err: utils.ErrGeneratorNotConfigured}
	svc := newTestService(repo, &fakeEmbeddingRepo{}, gen)

	_, err := svc.GenerateAndSave(context.Background(), uuid.New(), lisbonPrefs())
	require.ErrorIs(t, err, utils.ErrGeneratorNotConfigured)
	assert.Empty(t, repo.items)
}

func TestGenerateAndSaveInsertFailure(t *testing.T) {
	repo := newFakeItineraryRepo()
	repo.insertErr = errors.New("connection refused")
	gen := &fakeGenerator{itinerary: lisbonItinerary(2), raw: []byte(`{}`)}
	svc := newTestService(repo, &fakeEmbeddingRepo{}, gen)

	_, err := svc.GenerateAndSave(context.Background(), uuid.New(), lisbonPrefs())
	require.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestStageAndRedeemIsSingleUse(t *testing.T) {
	repo := newFakeItineraryRepo()
	gen := &fakeGenerator{itinerary: lisbonItinerary(3), raw: []byte(`{}`)}
	svc := newTestService(repo, &fakeEmbeddingRepo{}, gen)
	accountID := uuid.New()

	ticket, err := svc.StagePreferences(lisbonPrefs())
	require.NoError(t, err)
	require.NotEmpty(t, ticket)

	resp, err := svc.RedeemStaged(context.Background(), accountID, ticket)
	require.NoError(t, err)
	assert.Equal(t, "Lisboa, Portugal", resp.Destination)
	assert.Equal(t, 1, gen.calls)

	// Second redemption of the same ticket must not generate again.
	_, err = svc.RedeemStaged(context.Background(), accountID, ticket)
	require.ErrorIs(t, err, utils.ErrTicketExpired)
	assert.Equal(t, 1, gen.calls)
	assert.Len(t, repo.items, 1)
}

func TestRedeemUnknownTicket(t *testing.T) {
	svc := newTestService(newFakeItineraryRepo(), &fakeEmbeddingRepo{}, &fakeGenerator{})

	_, err := svc.RedeemStaged(context.Background(), uuid.New(), "no-such-ticket")
	require.ErrorIs(t, err, utils.ErrTicketExpired)
}

func TestGetSummaryOmitsEmptyCategories(t *testing.T) {
	repo := newFakeItineraryRepo()
	accountID := uuid.New()
	itinerary := &db_models.Itinerary{
		AccountID:   accountID,
		Destination: "Salvador",
		Days: []db_models.ItineraryDay{
			{DayNumber: 1, Activities: []db_models.ItineraryActivity{
				{ActivityType: db_models.ActivitySightseeing},
				{ActivityType: db_models.ActivitySightseeing},
				{ActivityType: db_models.ActivityFood},
			}},
			{DayNumber: 2, Activities: []db_models.ItineraryActivity{
				{ActivityType: db_models.ActivityRelax},
			}},
		},
	}
	require.NoError(t, repo.Insert(context.Background(), itinerary))

	svc := newTestService(repo, &fakeEmbeddingRepo{}, &fakeGenerator{})
	summary, err := svc.GetSummary(context.Background(), accountID, itinerary.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(4), summary.TotalActivities)
	// Generic "activity" never occurred, so only three slices remain, in the
	// fixed chart order.
	require.Len(t, summary.Breakdown, 3)
	assert.Equal(t, "Turismo", summary.Breakdown[0].Label)
	assert.Equal(t, "#005A8D", summary.Breakdown[0].Color)
	assert.Equal(t, int64(2), summary.Breakdown[0].Count)
	assert.Equal(t, "Gastronomia", summary.Breakdown[1].Label)
	assert.Equal(t, "#FF6B6B", summary.Breakdown[1].Color)
	assert.Equal(t, "Relax", summary.Breakdown[2].Label)
	assert.Equal(t, "#4ADE80", summary.Breakdown[2].Color)
}

func TestGetDetailsIsScopedToOwner(t *testing.T) {
	repo := newFakeItineraryRepo()
	owner := uuid.New()
	itinerary := &db_models.Itinerary{AccountID: owner, Destination: "Recife"}
	require.NoError(t, repo.Insert(context.Background(), itinerary))

	svc := newTestService(repo, &fakeEmbeddingRepo{}, &fakeGenerator{})

	_, err := svc.GetDetails(context.Background(), uuid.New(), itinerary.ID)
	require.ErrorIs(t, err, utils.ErrItineraryNotFound)

	resp, err := svc.GetDetails(context.Background(), owner, itinerary.ID)
	require.NoError(t, err)
	assert.Equal(t, "Recife", resp.Destination)
}

func TestDeleteUnknownIsNoOp(t *testing.T) {
	svc := newTestService(newFakeItineraryRepo(), &fakeEmbeddingRepo{}, &fakeGenerator{})
	require.NoError(t, svc.Delete(context.Background(), uuid.New(), uuid.New()))
}

func TestDeleteRemovesOnlyOwnItinerary(t *testing.T) {
	repo := newFakeItineraryRepo()
	owner := uuid.New()
	itinerary := &db_models.Itinerary{AccountID: owner, Destination: "Manaus"}
	require.NoError(t, repo.Insert(context.Background(), itinerary))

	svc := newTestService(repo, &fakeEmbeddingRepo{}, &fakeGenerator{})

	require.NoError(t, svc.Delete(context.Background(), uuid.New(), itinerary.ID))
	assert.Len(t, repo.items, 1)

	require.NoError(t, svc.Delete(context.Background(), owner, itinerary.ID))
	assert.Empty(t, repo.items)
}

func TestListByAccountValidatesPaging(t *testing.T) {
	svc := newTestService(newFakeItineraryRepo(), &fakeEmbeddingRepo{}, &fakeGenerator{})

	_, err := svc.ListByAccount(context.Background(), uuid.New(), 0, 10)
	require.ErrorIs(t, err, utils.ErrInvalidPage)

	_, err = svc.ListByAccount(context.Background(), uuid.New(), 1, 0)
	require.ErrorIs(t, err, utils.ErrInvalidPageSize)

	_, err = svc.ListByAccount(context.Background(), uuid.New(), 1, 500)
	require.ErrorIs(t, err, utils.ErrInvalidPageSize)
}

func TestGetSimilarRequiresExistingItinerary(t *testing.T) {
	svc := newTestService(newFakeItineraryRepo(), &fakeEmbeddingRepo{}, &fakeGenerator{})

	_, err := svc.GetSimilar(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, utils.ErrItineraryNotFound)
}

func TestGetSimilarReturnsNeighbors(t *testing.T) {
	repo := newFakeItineraryRepo()
	owner := uuid.New()
	itinerary := &db_models.Itinerary{AccountID: owner, Destination: "Porto"}
	require.NoError(t, repo.Insert(context.Background(), itinerary))

	neighborID := uuid.New()
	embRepo := &fakeEmbeddingRepo{rows: []repositories.SimilarItineraryRow{
		{ItineraryID: neighborID, Destination: "Lisboa", Similarity: 0.91},
	}}
	svc := newTestService(repo, embRepo, &fakeGenerator{})

	out, err := svc.GetSimilar(context.Background(), owner, itinerary.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, neighborID.String(), out[0].ID)
	assert.Equal(t, "Lisboa", out[0].Destination)
	assert.InDelta(t, 0.91, out[0].Similarity, 1e-9)
}
