// Package imagegen generates destination cover images through the
// OpenAI image API.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/tripgpt/planning-platform/internal/model"
)

// DefaultStyleSuffix is appended to every image prompt to keep the
// generated covers visually consistent.
const DefaultStyleSuffix = ", vibrant travel photography, golden hour light, wide angle, no text"

// Client generates images from text prompts.
type Client struct {
	client      *openai.Client
	model       string
	styleSuffix string
}

// NewClient creates a new image generation client.
func NewClient(apiKey, imageModel, styleSuffix string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if imageModel == "" {
		imageModel = openai.CreateImageModelDallE3
	}
	if styleSuffix == "" {
		styleSuffix = DefaultStyleSuffix
	}

	return &Client{
		client:      openai.NewClient(apiKey),
		model:       imageModel,
		styleSuffix: styleSuffix,
	}, nil
}

// Generate produces one image for the prompt and returns a reference to
// it. The style suffix is appended to the prompt before submission.
func (c *Client) Generate(ctx context.Context, prompt string) (*model.ImageRef, error) {
	fullPrompt := prompt + c.styleSuffix

	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         fullPrompt,
		Model:          c.model,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, errors.New("image generation returned no data")
	}

	return &model.ImageRef{
		Prompt:    fullPrompt,
		URL:       resp.Data[0].URL,
		CreatedAt: time.Now(),
	}, nil
}
