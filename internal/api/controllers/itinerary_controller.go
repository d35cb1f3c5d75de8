package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viajaia/internal/models/request_models"
	"viajaia/internal/services"
	"viajaia/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

func currentAccountID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return uuid.Nil, false
	}
	return id, true
}

// Generate godoc
// @Summary Generate and save an itinerary
// @Description Build a multi-day itinerary from trip preferences and save it for the authenticated user
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.TravelPreferencesRequest true "Trip preferences"
// @Success 200 {object} response_models.ItineraryDetailResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/generate [post]
func (i *ItineraryController) Generate(c *gin.Context) {
	var req request_models.TravelPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid trip preferences")
		return
	}

	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	detail, err := i.itineraryService.GenerateAndSave(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Itinerary generated successfully")
}

// Stage godoc
// @Summary Stage trip preferences before login
// @Description Cache preferences submitted by an unauthenticated visitor and return a single-use ticket
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.TravelPreferencesRequest true "Trip preferences"
// @Success 200 {object} utils.APIResponse
// @Router /itineraries/stage [post]
func (i *ItineraryController) Stage(c *gin.Context) {
	var req request_models.TravelPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid trip preferences")
		return
	}

	ticket, err := i.itineraryService.StagePreferences(req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"ticket": ticket}, "Preferences staged, login to continue")
}

// Redeem godoc
// @Summary Redeem staged preferences
// @Description Consume a staged-preferences ticket after login and run the generation exactly once
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.RedeemStagedRequest true "Ticket"
// @Success 200 {object} response_models.ItineraryDetailResponse
// @Failure 410 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/redeem [post]
func (i *ItineraryController) Redeem(c *gin.Context) {
	var req request_models.RedeemStagedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Ticket is required")
		return
	}

	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	detail, err := i.itineraryService.RedeemStaged(c.Request.Context(), accountID, req.Ticket)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Itinerary generated successfully")
}

// List godoc
// @Summary List saved itineraries
// @Description Paginated, most-recent-first list of the authenticated user's itineraries
// @Tags Itineraries
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {array} response_models.ItineraryResponse
// @Security BearerAuth
// @Router /itineraries [get]
func (i *ItineraryController) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size")
		return
	}

	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	itineraries, err := i.itineraryService.ListByAccount(c.Request.Context(), accountID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itineraries, "Itineraries fetched successfully")
}

func itineraryIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("itineraryId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid itinerary ID")
		return uuid.Nil, false
	}
	return id, true
}

// GetDetails godoc
// @Summary Get itinerary details
// @Description Full itinerary with days and activities in day order
// @Tags Itineraries
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {object} response_models.ItineraryDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId} [get]
func (i *ItineraryController) GetDetails(c *gin.Context) {
	itineraryID, ok := itineraryIDParam(c)
	if !ok {
		return
	}
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	detail, err := i.itineraryService.GetDetails(c.Request.Context(), accountID, itineraryID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Itinerary fetched successfully")
}

// GetSummary godoc
// @Summary Get itinerary activity summary
// @Description Per-type activity counts for the summary chart; zero-count categories are omitted
// @Tags Itineraries
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {object} response_models.ItinerarySummaryResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId}/summary [get]
func (i *ItineraryController) GetSummary(c *gin.Context) {
	itineraryID, ok := itineraryIDParam(c)
	if !ok {
		return
	}
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	summary, err := i.itineraryService.GetSummary(c.Request.Context(), accountID, itineraryID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Summary fetched successfully")
}

// GetSimilar godoc
// @Summary Find similar saved trips
// @Description Rank the user's other itineraries by destination/interest similarity
// @Tags Itineraries
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {array} response_models.SimilarItineraryResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId}/similar [get]
func (i *ItineraryController) GetSimilar(c *gin.Context) {
	itineraryID, ok := itineraryIDParam(c)
	if !ok {
		return
	}
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	similar, err := i.itineraryService.GetSimilar(c.Request.Context(), accountID, itineraryID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, similar, "Similar itineraries fetched successfully")
}

// Delete godoc
// @Summary Delete an itinerary
// @Description Remove one saved itinerary; deleting an unknown id is a no-op
// @Tags Itineraries
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId} [delete]
func (i *ItineraryController) Delete(c *gin.Context) {
	itineraryID, ok := itineraryIDParam(c)
	if !ok {
		return
	}
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	if err := i.itineraryService.Delete(c.Request.Context(), accountID, itineraryID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Itinerary deleted successfully")
}
