package models

import (
	"sort"
	"strings"
)

type QuestionType string

const (
	QuestionTypeText    QuestionType = "text"
	QuestionTypeNumber  QuestionType = "number"
	QuestionTypeDate    QuestionType = "date"
	QuestionTypeOptions QuestionType = "options"
	QuestionTypeCommon  QuestionType = "common"
	// QuestionTypeGuidePrompt marks the post-itinerary "show guides?" step.
	// It is control flow, never part of a city's question walk.
	QuestionTypeGuidePrompt QuestionType = "guidePrompt"
)

// IsChoice reports whether answers must match one of the declared options.
func (t QuestionType) IsChoice() bool {
	switch t {
	case QuestionTypeOptions, QuestionTypeCommon, QuestionTypeGuidePrompt:
		return true
	default:
		return false
	}
}

const (
	QuestionStatusActive   = "active"
	QuestionStatusInactive = "inactive"
)

// Question is one step of a city's preference questionnaire.
// A nil City means the question applies to every city ("common" question).
type Question struct {
	ID       string       `bson:"_id" json:"_id" yaml:"id"`
	Question string       `bson:"question" json:"question" yaml:"question"`
	City     *CityRef     `bson:"city,omitempty" json:"city" yaml:"city,omitempty"`
	Status   string       `bson:"status" json:"status" yaml:"status"`
	Order    int          `bson:"order" json:"order" yaml:"order"`
	Type     QuestionType `bson:"type" json:"type" yaml:"type"`
	Options  []string     `bson:"options,omitempty" json:"options,omitempty" yaml:"options,omitempty"`
}

func (q Question) IsActive() bool {
	return q.Status == QuestionStatusActive
}

// AppliesTo reports whether q belongs to cityID or to every city.
func (q Question) AppliesTo(cityID string) bool {
	return q.City == nil || q.City.ID == "" || q.City.ID == cityID
}

// MatchOption returns the declared option equal to input ignoring case.
func (q Question) MatchOption(input string) (string, bool) {
	input = strings.TrimSpace(input)
	for _, opt := range q.Options {
		if strings.EqualFold(strings.TrimSpace(opt), input) {
			return opt, true
		}
	}
	return "", false
}

// ActiveQuestions keeps active, non guide-prompt questions ordered ascending by Order.
// The sort is stable so equal orders keep the backend's relative order.
func ActiveQuestions(questions []Question) []Question {
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		if !q.IsActive() || q.Type == QuestionTypeGuidePrompt {
			continue
		}
		out = append(out, q)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
