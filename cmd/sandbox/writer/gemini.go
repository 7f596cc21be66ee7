package writer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const systemInstruction = `
You are a travel planning assistant for a tour-guide marketplace. Your task is to write a day-by-day itinerary for the given city using the traveler's answers.
The response MUST be simple HTML using only <h2>, <h3>, <p>, <ul>, <li> and <br> tags.
Use one <h3> heading per day and split each day into morning, afternoon and evening items.
You MUST NOT wrap the output in a markdown code block. The response should contain ONLY the HTML.
If an answer is missing or unclear, make a reasonable choice and do not ask questions back.
`

var ErrEmptyItinerary = errors.New("empty_itinerary")

// GeminiWriter 는 Gemini 모델로 일정을 작성한다.
type GeminiWriter struct {
	client *genai.Client
	model  string
}

func NewGeminiWriter(ctx context.Context, apiKey, model string) (*GeminiWriter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiWriter{client: client, model: model}, nil
}

func (w *GeminiWriter) Name() string { return "gemini:" + w.model }

func (w *GeminiWriter) Write(ctx context.Context, req Request) (string, error) {
	result, err := w.client.Models.GenerateContent(
		ctx,
		w.model,
		genai.Text(Prompt(req)),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		},
	)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(result.Text())
	text = strings.TrimPrefix(text, "```html")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyItinerary
	}
	return strings.TrimSpace(text), nil
}

// Prompt 는 모델에 보낼 사용자 메시지를 만든다.
func Prompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "City: %s\n", req.CityName)
	fmt.Fprintf(&b, "Trip length in days: %d\n", req.Days(2))
	pairs := req.Pairs()
	if len(pairs) == 0 {
		b.WriteString("The traveler gave no preferences; write a basic itinerary covering the best-known sights.\n")
		return b.String()
	}
	b.WriteString("Traveler answers:\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "- %s %s\n", p[0], p[1])
	}
	return b.String()
}
