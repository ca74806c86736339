package verify

import (
	"strings"

	"github.com/nmalahov/clarus/internal/model"
)

// ExtractLabel derives a coarse classification from free-text LLM output via
// case-insensitive keyword scan. The model is not assumed to emit a
// structured label.
//
// Precedence matters: "PARTIALLY TRUE" contains the substring "TRUE", so a
// bare TRUE match only wins when no partial marker is present, otherwise a
// partially-true response would misclassify as TRUE. Anything unmatched
// falls back to UNCERTAIN.
func ExtractLabel(response string) model.Label {
	upper := strings.ToUpper(response)

	hasTrue := strings.Contains(upper, "TRUE")
	hasFalse := strings.Contains(upper, "FALSE")
	hasPartial := strings.Contains(upper, "PARTIALLY TRUE") || strings.Contains(upper, "PARTIAL")

	switch {
	case hasTrue && !hasFalse && !hasPartial:
		return model.LabelTrue
	case hasFalse && !hasTrue:
		return model.LabelFalse
	case hasPartial:
		return model.LabelPartiallyTrue
	case strings.Contains(upper, "UNCERTAIN") || strings.Contains(upper, "UNCLEAR"):
		return model.LabelUncertain
	default:
		return model.LabelUncertain
	}
}
