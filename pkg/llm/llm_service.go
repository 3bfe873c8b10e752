package llm

import (
	"GroceryApp-Backend/domain"
	"GroceryApp-Backend/pkg/ocr"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	// ConfidenceThreshold is the fixed cutoff below which a receipt is
	// flagged low-confidence.
	ConfidenceThreshold = 0.7

	samplingTemperature = 0.5
	maxOutputTokens     = 500
)

type (
	// Generator abstracts the text-generation model call.
	Generator interface {
		GenerateContent(ctx context.Context, prompt string) (string, error)
	}

	// LlmService turns raw OCR text into structured product records. It is
	// total: every failure mode collapses to an empty, low-confidence
	// ReceiptData instead of an error.
	LlmService interface {
		ExtractProductInfo(ctx context.Context, ocrText string) domain.ReceiptData
	}

	llmService struct {
		generator Generator
	}
)

func NewLlmService(generator Generator) LlmService {
	return &llmService{generator: generator}
}

// productPayload matches the JSON objects the model is asked to emit. Field
// matching is case-insensitive, so productName/ProductName both bind.
type productPayload struct {
	ProductName     string  `json:"productName"`
	NutritionalInfo string  `json:"nutritionalInfo"`
	ShelfLife       string  `json:"shelfLife"`
	FoodCategory    string  `json:"foodCategory"`
	Unit            string  `json:"unit"`
	Quantity        string  `json:"quantity"`
	Confidence      float64 `json:"confidence"`
	ExpirationDate  string  `json:"expirationDate"`
}

func generatePrompt(ocrText string) string {
	return fmt.Sprintf(
		"Extract structured product information from the following receipt text. "+
			"Respond ONLY with a valid JSON array of objects with fields: "+
			"ProductName, NutritionalInfo, ShelfLife, FoodCategory, Unit, Quantity, "+
			"Confidence (0 to 1), ExpirationDate (YYYY-MM-DD). "+
			"Do not include any explanations or markdown formatting.\n\nReceipt Text:\n%s",
		ocrText,
	)
}

func degradedResult(reason string, err error) domain.ReceiptData {
	if err != nil {
		log.Printf("llm extraction degraded (%s): %v", reason, err)
	} else {
		log.Printf("llm extraction degraded (%s)", reason)
	}
	return domain.ReceiptData{
		Products:      []domain.ProductInfo{},
		LowConfidence: true,
	}
}

// stripCodeFence removes a surrounding markdown code block from model output.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

func parseExpirationDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date
	}
	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date
	}
	return time.Time{}
}

func (s *llmService) ExtractProductInfo(ctx context.Context, ocrText string) domain.ReceiptData {
	trimmed := strings.TrimSpace(ocrText)
	if trimmed == "" || trimmed == ocr.NoTextDetected {
		return degradedResult("no usable text", nil)
	}

	raw, err := s.generator.GenerateContent(ctx, generatePrompt(ocrText))
	if err != nil {
		return degradedResult("upstream call failed", err)
	}

	raw = stripCodeFence(raw)
	if raw == "" {
		return degradedResult("empty model output", nil)
	}

	var payloads []productPayload
	if err := json.Unmarshal([]byte(raw), &payloads); err != nil {
		return degradedResult("unparseable model output", err)
	}

	products := make([]domain.ProductInfo, 0, len(payloads))
	lowConfidence := len(payloads) == 0
	for _, p := range payloads {
		if p.Confidence < ConfidenceThreshold {
			lowConfidence = true
		}
		products = append(products, domain.ProductInfo{
			ProductName:     p.ProductName,
			NutritionalInfo: p.NutritionalInfo,
			ShelfLife:       p.ShelfLife,
			FoodCategory:    p.FoodCategory,
			Unit:            p.Unit,
			Quantity:        p.Quantity,
			Confidence:      p.Confidence,
			ExpirationDate:  parseExpirationDate(p.ExpirationDate),
		})
	}

	return domain.ReceiptData{
		Products:      products,
		LowConfidence: lowConfidence,
	}
}
