package verify

import (
	"testing"

	"github.com/nmalahov/clarus/internal/model"
)

func TestExtractLabel(t *testing.T) {
	cases := []struct {
		name string
		text string
		want model.Label
	}{
		{"plain true", "The claim is TRUE. Multiple sources confirm it.", model.LabelTrue},
		{"plain false", "This claim is FALSE according to the evidence.", model.LabelFalse},
		{"partially true", "This is PARTIALLY TRUE: the date is right but the amount is wrong.", model.LabelPartiallyTrue},
		{"partial keyword", "The claim is only PARTIAL in its accuracy.", model.LabelPartiallyTrue},
		{"uncertain", "The evidence is UNCERTAIN on this point.", model.LabelUncertain},
		{"unclear maps to uncertain", "It is UNCLEAR whether this happened.", model.LabelUncertain},
		{"lowercase true", "the claim is true based on the sources", model.LabelTrue},
		{"no label", "The sources discuss an unrelated topic.", model.LabelUncertain},
		{"empty response", "", model.LabelUncertain},
		{"mixed true and false is ambiguous", "Parts read as TRUE but the core assertion is FALSE.", model.LabelUncertain},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractLabel(tc.text)
			if got != tc.want {
				t.Errorf("ExtractLabel(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}
