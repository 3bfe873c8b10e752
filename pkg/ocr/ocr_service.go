package ocr

import (
	"GroceryApp-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// NoTextDetected is returned when the OCR provider finds no readable text.
// It is valid (empty) input for the structuring stage, not an error.
const NoTextDetected = "No text detected."

type (
	OcrService interface {
		AnalyzeReceipt(ctx context.Context, imageURL string) (string, error)
	}

	ocrService struct {
		endpoint string
		apiKey   string
		client   *http.Client
	}
)

func NewOcrService() OcrService {
	return &ocrService{
		endpoint: utils.GetConfig("AZURE_CV_ENDPOINT"),
		apiKey:   utils.GetConfig("AZURE_CV_KEY"),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type ocrResult struct {
	Regions []struct {
		Lines []struct {
			Words []struct {
				Text string `json:"text"`
			} `json:"words"`
		} `json:"lines"`
	} `json:"regions"`
}

func (s *ocrService) AnalyzeReceipt(ctx context.Context, imageURL string) (string, error) {
	requestURL := fmt.Sprintf("%s/vision/v3.2/ocr?language=unk&detectOrientation=true", strings.TrimSuffix(s.endpoint, "/"))

	requestBody, err := json.Marshal(map[string]string{"url": imageURL})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("computer vision API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var result ocrResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Regions) == 0 {
		return NoTextDetected, nil
	}

	var extracted strings.Builder
	for _, region := range result.Regions {
		for _, line := range region.Lines {
			for i, word := range line.Words {
				if i > 0 {
					extracted.WriteString(" ")
				}
				extracted.WriteString(word.Text)
			}
			extracted.WriteString("\n")
		}
	}

	return strings.TrimSpace(extracted.String()), nil
}
