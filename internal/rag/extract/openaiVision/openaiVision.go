package openaiVision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/rag/extract"
	"github.com/akolanti/DocRAG/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type client struct {
	openAi openai.Client
	logger *logger_i.Logger
}

// NewClient builds a vision describer on the OpenAI chat completions API.
// The client is constructed once at startup and injected into the
// extractor; it holds no per-call state.
func NewClient(apiKey string) (extract.VisionDescriber, error) {
	if apiKey == "" {
		return nil, errors.New("missing OpenAI API key")
	}
	return &client{
		openAi: openai.NewClient(option.WithAPIKey(apiKey)),
		logger: logger_i.NewLogger("openai_vision"),
	}, nil
}

func (c *client) DescribeImage(ctx context.Context, model string, mimeType string, image []byte) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	c.logger.Debug("vision call", "model", model, "imageBytes", len(image))
	completion, err := c.openAi.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(config.VisionInstruction),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("vision model returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
