// Package writer 는 질문/답변으로 일정 본문을 만든다.
package writer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tour-planner/models"
)

// Request 는 일정 작성에 필요한 입력이다. Answers[i] 는 Questions[i] 의 답이다.
type Request struct {
	CityName  string
	Questions []models.Question
	Answers   []string
}

// Pairs 는 질문과 답을 짝지어 돌려준다. 답이 없는 질문은 건너뛴다.
func (r Request) Pairs() [][2]string {
	out := make([][2]string, 0, len(r.Questions))
	for i, q := range r.Questions {
		if i >= len(r.Answers) || strings.TrimSpace(r.Answers[i]) == "" {
			continue
		}
		out = append(out, [2]string{q.Question, r.Answers[i]})
	}
	return out
}

// Days 는 숫자형 질문의 첫 번째 답을 여행 일수로 본다. 없으면 fallback 이다.
func (r Request) Days(fallback int) int {
	for i, q := range r.Questions {
		if q.Type != models.QuestionTypeNumber || i >= len(r.Answers) {
			continue
		}
		if n, err := strconv.ParseFloat(strings.TrimSpace(r.Answers[i]), 64); err == nil && n >= 1 {
			return int(n)
		}
	}
	return fallback
}

type Writer interface {
	Write(ctx context.Context, req Request) (string, error)
	Name() string
}

const maxDays = 14

// TemplateWriter 는 외부 호출 없이 결정적인 일정을 만든다. 테스트와 로컬 개발의 기본값이다.
type TemplateWriter struct{}

func (TemplateWriter) Name() string { return "template" }

func (TemplateWriter) Write(_ context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.CityName) == "" {
		return "", fmt.Errorf("city name is required")
	}
	days := req.Days(2)
	if days > maxDays {
		days = maxDays
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%d-day itinerary for %s</h2>\n", days, req.CityName)
	if pairs := req.Pairs(); len(pairs) > 0 {
		b.WriteString("<p>Based on your answers:</p>\n<ul>\n")
		for _, p := range pairs {
			fmt.Fprintf(&b, "<li>%s %s</li>\n", p[0], p[1])
		}
		b.WriteString("</ul>\n")
	}
	for day := 1; day <= days; day++ {
		fmt.Fprintf(&b, "<h3>Day %d</h3>\n<ul>\n", day)
		fmt.Fprintf(&b, "<li>Morning: %s</li>\n", slot(req.CityName, day, "morning"))
		fmt.Fprintf(&b, "<li>Afternoon: %s</li>\n", slot(req.CityName, day, "afternoon"))
		fmt.Fprintf(&b, "<li>Evening: %s</li>\n", slot(req.CityName, day, "evening"))
		b.WriteString("</ul>\n")
	}
	return b.String(), nil
}

var slotIdeas = map[string][]string{
	"morning":   {"walk the historic center", "visit the main museum", "explore a local market"},
	"afternoon": {"take a guided neighborhood tour", "relax in a park", "see a landmark viewpoint"},
	"evening":   {"dinner at a traditional restaurant", "a riverside or old-town stroll", "try the local street food"},
}

func slot(city string, day int, part string) string {
	ideas := slotIdeas[part]
	return fmt.Sprintf("%s in %s", ideas[(day-1)%len(ideas)], city)
}
