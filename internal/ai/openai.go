// Package ai wraps the hosted speech-to-text and chat completion services
// used by the audio review pipeline.
package ai

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// Transcriber turns an audio payload into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// Completer answers a system+user prompt pair with a single text block.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient implements Transcriber and Completer against the OpenAI API.
type OpenAIClient struct {
	client             *openai.Client
	transcriptionModel string
	completionModel    string
}

var (
	_ Transcriber = (*OpenAIClient)(nil)
	_ Completer   = (*OpenAIClient)(nil)
)

// NewOpenAIClient creates a client for the given API key and models.
func NewOpenAIClient(apiKey, transcriptionModel, completionModel string) *OpenAIClient {
	if transcriptionModel == "" {
		transcriptionModel = openai.Whisper1
	}
	if completionModel == "" {
		completionModel = openai.GPT4
	}
	return &OpenAIClient{
		client:             openai.NewClient(apiKey),
		transcriptionModel: transcriptionModel,
		completionModel:    completionModel,
	}
}

// Transcribe submits the audio payload to the speech-to-text model.
// The filename matters: the API derives the audio format from its extension.
func (c *OpenAIClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcriptionModel,
		FilePath: filename,
		Reader:   audio,
	})
	if err != nil {
		return "", fmt.Errorf("create transcription: %w", err)
	}
	return resp.Text, nil
}

// Complete runs a chat completion and returns the first choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.completionModel,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
