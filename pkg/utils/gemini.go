package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"viajaia/internal/models/request_models"
)

// GeneratedItinerary is the generator's wire contract. Field names match the
// response schema handed to the model; content is trusted verbatim beyond
// required-presence checks.
type GeneratedItinerary struct {
	Destination         string         `json:"destination"`
	TotalBudgetEstimate string         `json:"totalBudgetEstimate"`
	Days                []GeneratedDay `json:"days"`
}

type GeneratedDay struct {
	DayNumber  int                 `json:"dayNumber"`
	Theme      string              `json:"theme"`
	Activities []GeneratedActivity `json:"activities"`
}

type GeneratedActivity struct {
	Time         string `json:"time"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	CostEstimate string `json:"costEstimate"`
	Type         string `json:"type"`
}

type GeneratorClientInterface interface {
	// GenerateItinerary turns trip preferences into a structured itinerary,
	// also returning the raw JSON payload for auditing.
	GenerateItinerary(ctx context.Context, prefs request_models.TravelPreferencesRequest) (*GeneratedItinerary, []byte, error)
}

var activityTypeEnum = []string{"sightseeing", "food", "activity", "relax"}

var itinerarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"destination":         {Type: genai.TypeString},
		"totalBudgetEstimate": {Type: genai.TypeString},
		"days": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"dayNumber": {Type: genai.TypeInteger},
					"theme":     {Type: genai.TypeString, Description: "Tema do dia (ex: Centro Histórico)"},
					"activities": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"time":         {Type: genai.TypeString, Description: "Horário sugerido (ex: 09:00)"},
								"title":        {Type: genai.TypeString, Description: "Nome da atividade ou local"},
								"description":  {Type: genai.TypeString, Description: "Breve descrição do que fazer"},
								"location":     {Type: genai.TypeString, Description: "Endereço ou nome do local para mapa"},
								"costEstimate": {Type: genai.TypeString, Description: "Custo estimado (ex: Grátis, R$ 50,00)"},
								"type":         {Type: genai.TypeString, Enum: activityTypeEnum},
							},
							Required: []string{"time", "title", "description", "location", "costEstimate", "type"},
						},
					},
				},
				Required: []string{"dayNumber", "theme", "activities"},
			},
		},
	},
	Required: []string{"destination", "totalBudgetEstimate", "days"},
}

func MapBudgetToText(level string) string {
	switch level {
	case request_models.BudgetEconomic:
		return "econômico (mochileiro)"
	case request_models.BudgetLuxury:
		return "luxo (alto padrão)"
	default:
		return "moderado (conforto)"
	}
}

func MapTravelersToText(travelers string) string {
	switch travelers {
	case request_models.TravelersSolo:
		return "viajante solo"
	case request_models.TravelersFamily:
		return "família com crianças"
	case request_models.TravelersFriends:
		return "grupo de amigos"
	default:
		return "casal"
	}
}

// BuildItineraryPrompt assembles the natural-language half of the request;
// the structural half is the response schema.
func BuildItineraryPrompt(prefs request_models.TravelPreferencesRequest) string {
	interests := strings.Join(prefs.InterestList(), ", ")
	if interests == "" {
		interests = "turismo geral, gastronomia local"
	}

	return fmt.Sprintf(`Crie um roteiro de viagem detalhado para %s com duração de %d dias.
Perfil: %s.
Orçamento: %s.
Interesses: %s.

Forneça uma estimativa de orçamento total na moeda local (BRL se Brasil, ou moeda do destino convertido).
Para cada atividade, sugira um horário, título, descrição curta, localização e custo estimado.

A resposta deve ser estritamente em JSON seguindo o schema fornecido.
Use português do Brasil para todo o conteúdo de texto.`,
		prefs.Destination, prefs.Duration,
		MapTravelersToText(prefs.Travelers),
		MapBudgetToText(prefs.BudgetLevel),
		interests)
}

// DecodeGeneratedItinerary parses and structurally validates a generator
// payload: required fields present, type within the enumeration. Free-text
// content is not second-guessed.
func DecodeGeneratedItinerary(raw []byte) (*GeneratedItinerary, error) {
	var out GeneratedItinerary
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(out.Destination) == "" {
		return nil, fmt.Errorf("%w: missing destination", ErrGenerationFailed)
	}
	if strings.TrimSpace(out.TotalBudgetEstimate) == "" {
		return nil, fmt.Errorf("%w: missing totalBudgetEstimate", ErrGenerationFailed)
	}
	if len(out.Days) == 0 {
		return nil, fmt.Errorf("%w: no days returned", ErrGenerationFailed)
	}
	for i, d := range out.Days {
		if d.DayNumber <= 0 {
			return nil, fmt.Errorf("%w: day %d has invalid dayNumber", ErrGenerationFailed, i+1)
		}
		for j, a := range d.Activities {
			if !validActivityType(a.Type) {
				return nil, fmt.Errorf("%w: day %d activity %d has unknown type %q", ErrGenerationFailed, d.DayNumber, j+1, a.Type)
			}
			if strings.TrimSpace(a.Title) == "" {
				return nil, fmt.Errorf("%w: day %d activity %d missing title", ErrGenerationFailed, d.DayNumber, j+1)
			}
		}
	}
	return &out, nil
}

func validActivityType(t string) bool {
	for _, v := range activityTypeEnum {
		if v == t {
			return true
		}
	}
	return false
}

// GeminiGeneratorClient talks to Gemini with a schema-constrained JSON
// response. The underlying client is created lazily so a missing API key is
// a generation-time failure, not a boot failure.
type GeminiGeneratorClient struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

func NewGeminiGeneratorClient(apiKey, model string) GeneratorClientInterface {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiGeneratorClient{apiKey: apiKey, model: model}
}

func (g *GeminiGeneratorClient) ensureClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	if g.apiKey == "" {
		return nil, ErrGeneratorNotConfigured
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	g.client = client
	return g.client, nil
}

func (g *GeminiGeneratorClient) GenerateItinerary(
	ctx context.Context,
	prefs request_models.TravelPreferencesRequest,
) (*GeneratedItinerary, []byte, error) {

	client, err := g.ensureClient(ctx)
	if err != nil {
		return nil, nil, err
	}

	m := client.GenerativeModel(g.model)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = itinerarySchema
	m.SetTemperature(0.6)
	m.SetTopP(0.8)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(BuildItineraryPrompt(prefs)))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: gemini call: %v", ErrGenerationFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, nil, fmt.Errorf("%w: no content generated", ErrGenerationFailed)
	}

	raw := []byte(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	itinerary, err := DecodeGeneratedItinerary(raw)
	if err != nil {
		return nil, nil, err
	}
	return itinerary, raw, nil
}
