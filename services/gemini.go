package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"studyhub/config"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Global Gemini client instance
var geminiClient *genai.Client

// InitGenerationService initializes the Gemini client using the API key
// from the config.
func InitGenerationService(cfg *config.Config) error {
	clientConfig := &genai.ClientConfig{}
	if cfg.Gemini.ApiKey != "" {
		clientConfig.APIKey = cfg.Gemini.ApiKey
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return err
	}
	geminiClient = client
	return nil
}

func generateModelText(ctx context.Context, modelName, prompt string) (string, error) {
	if geminiClient == nil {
		return "", errors.New("gemini client not initialized")
	}
	resp, err := geminiClient.Models.GenerateContent(ctx, modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return cleanModelOutput(resp.Text()), nil
}

func generateDefaultModelText(ctx context.Context, prompt string) (string, error) {
	return generateModelText(ctx, defaultGeminiModel, prompt)
}

// cleanModelOutput strips markdown code fences the model wraps around
// JSON payloads.
func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// decodeModelJSON cleans fenced output and unmarshals it into v.
func decodeModelJSON(text string, v interface{}) error {
	return json.Unmarshal([]byte(cleanModelOutput(text)), v)
}
