package flow

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"tour-planner/models"
)

// datePattern only checks the shape; calendar validity is not enforced,
// so 2025-13-40 passes.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const (
	hintNumber = "number"
	hintDate   = "YYYY-MM-DD"
)

const (
	problemOption = "Please choose one of the listed options."
	problemNumber = "Please enter a valid number."
	problemDate   = "Please enter the date in YYYY-MM-DD format."
)

// validateAnswer returns the value to record, or a non-empty problem to show the user.
func validateAnswer(q models.Question, input string) (string, string) {
	input = strings.TrimSpace(input)

	switch {
	case q.Type.IsChoice():
		if len(q.Options) == 0 {
			return input, ""
		}
		if _, ok := q.MatchOption(input); !ok {
			return "", problemOption
		}
		return input, ""
	case q.Type == models.QuestionTypeNumber:
		if isHexLiteral(input) {
			return "", problemNumber
		}
		n, err := strconv.ParseFloat(input, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return "", problemNumber
		}
		return input, ""
	case q.Type == models.QuestionTypeDate:
		if !datePattern.MatchString(input) {
			return "", problemDate
		}
		return input, ""
	default:
		return input, ""
	}
}

// isHexLiteral reports 0x-prefixed input, which ParseFloat reads as a hex float.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func inputHint(q models.Question) string {
	switch q.Type {
	case models.QuestionTypeNumber:
		return hintNumber
	case models.QuestionTypeDate:
		return hintDate
	default:
		return ""
	}
}

func matchChoice(options []string, input string) (string, bool) {
	return models.Question{Options: options}.MatchOption(input)
}
