package writer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-planner/models"
)

func sampleRequest() Request {
	return Request{
		CityName: "Paris",
		Questions: []models.Question{
			{ID: "q1", Question: "How many days?", Type: models.QuestionTypeNumber},
			{ID: "q2", Question: "Include museums?", Type: models.QuestionTypeOptions, Options: []string{"Yes", "No"}},
			{ID: "q3", Question: "Anything else?", Type: models.QuestionTypeText},
		},
		Answers: []string{"3", "Yes", ""},
	}
}

func TestTemplateWriter(t *testing.T) {
	text, err := TemplateWriter{}.Write(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Contains(t, text, "3-day itinerary for Paris")
	assert.Contains(t, text, "<h3>Day 3</h3>")
	assert.NotContains(t, text, "<h3>Day 4</h3>")
	assert.Contains(t, text, "<li>Include museums? Yes</li>")
	assert.NotContains(t, text, "Anything else?")
}

func TestTemplateWriterIsDeterministic(t *testing.T) {
	a, _ := TemplateWriter{}.Write(context.Background(), sampleRequest())
	b, _ := TemplateWriter{}.Write(context.Background(), sampleRequest())
	assert.Equal(t, a, b)
}

func TestTemplateWriterRequiresCity(t *testing.T) {
	_, err := TemplateWriter{}.Write(context.Background(), Request{})
	assert.Error(t, err)
}

func TestDays(t *testing.T) {
	testCases := []struct {
		name   string
		answer string
		want   int
	}{
		{name: "integer", answer: "4", want: 4},
		{name: "fraction rounds down", answer: "2.5", want: 2},
		{name: "not a number", answer: "many", want: 2},
		{name: "zero", answer: "0", want: 2},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			req := Request{
				Questions: []models.Question{{ID: "q", Type: models.QuestionTypeNumber}},
				Answers:   []string{testCase.answer},
			}
			assert.Equal(t, testCase.want, req.Days(2))
		})
	}
}

func TestPrompt(t *testing.T) {
	prompt := Prompt(sampleRequest())
	assert.True(t, strings.HasPrefix(prompt, "City: Paris\n"))
	assert.Contains(t, prompt, "Trip length in days: 3")
	assert.Contains(t, prompt, "- Include museums? Yes")

	basic := Prompt(Request{CityName: "Kyoto"})
	assert.Contains(t, basic, "basic itinerary")
}
