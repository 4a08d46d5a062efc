package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pulseplan/backend/config"
)

// MealScan is the meal prefill extracted from a food photo. The values are
// estimates the user confirms or edits before the meal is logged.
type MealScan struct {
	Title      string   `json:"title"`
	Calories   int      `json:"calories"`
	Protein    float64  `json:"protein"`
	Carbs      float64  `json:"carbs"`
	Fat        float64  `json:"fat"`
	Items      []string `json:"items"`
	Confidence float64  `json:"confidence"`
	PhotoURL   string   `json:"photo_url,omitempty"`
}

// VisionService analyzes food photos into meal prefills and stores the
// originals in S3.
type VisionService struct {
	apiKey   string
	apiURL   string
	s3Config *config.S3Config
	client   *http.Client
}

var _ IVisionService = (*VisionService)(nil)

// NewVisionService creates a new VisionService instance. s3Config may be
// nil; scanned photos are then analyzed without being stored.
func NewVisionService(s3Config *config.S3Config) (*VisionService, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("OPENAI_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY or OPENAI_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("OPENAI_VISION_API_URL")
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1/chat/completions"
	}

	return &VisionService{
		apiKey:   apiKey,
		apiURL:   apiURL,
		s3Config: s3Config,
		client:   &http.Client{Timeout: 60 * time.Second},
	}, nil
}

const visionSystemPrompt = `You are a nutrition analyst. Identify the food in the photo and estimate its nutrition as JSON:
{"title": "Grilled Chicken Salad", "calories": 420, "protein": 38, "carbs": 15, "fat": 22, "items": ["grilled chicken breast", "mixed greens", "olive oil dressing"], "confidence": 0.8}

Rules:
- calories must be an integer; protein, carbs and fat must be numbers in grams.
- confidence is between 0 and 1; use a low value if the photo is unclear.
- If the photo contains no food, return {"title": "", "confidence": 0}.`

// AnalyzeMealPhoto uploads the photo to S3 and asks the vision model for a
// meal prefill. An S3 failure is logged and skipped; the scan still runs.
func (s *VisionService) AnalyzeMealPhoto(ctx context.Context, photo []byte, contentType string) (*MealScan, error) {
	var photoURL string
	if s.s3Config != nil {
		url, err := s.UploadPhotoToS3(ctx, photo, contentType)
		if err != nil {
			log.Printf("[VisionService] failed to upload photo to S3: %v", err)
		} else {
			photoURL = url
		}
	}

	scan, err := s.analyzePhoto(ctx, photo, contentType)
	if err != nil {
		return nil, err
	}
	scan.PhotoURL = photoURL

	return scan, nil
}

func (s *VisionService) analyzePhoto(ctx context.Context, photo []byte, contentType string) (*MealScan, error) {
	imageDataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(photo))

	reqBody := map[string]interface{}{
		"model": "gpt-4o-mini",
		"messages": []map[string]interface{}{
			{"role": "system", "content": visionSystemPrompt},
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": "Analyze this meal photo."},
					{"type": "image_url", "image_url": map[string]string{"url": imageDataURL}},
				},
			},
		},
		"response_format": map[string]string{"type": "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	var scan MealScan
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &scan); err != nil {
		return nil, fmt.Errorf("failed to parse scan result: %w", err)
	}
	if scan.Title == "" {
		return nil, fmt.Errorf("no food detected in photo")
	}

	return &scan, nil
}

// UploadPhotoToS3 uploads photo data to S3 and returns the public URL
func (s *VisionService) UploadPhotoToS3(ctx context.Context, photo []byte, contentType string) (string, error) {
	ext := "jpg"
	if strings.Contains(contentType, "png") {
		ext = "png"
	}
	fileName := fmt.Sprintf("meal-photos/%s.%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(photo),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[VisionService] uploaded meal photo to S3: %s", publicURL)

	return publicURL, nil
}
