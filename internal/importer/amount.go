package importer

import (
	"github.com/cleared-dev/tally/internal/descriptions"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/money"
)

// parseAmount strips currency decoration from raw and checks the result is a
// signed two-decimal amount. The normalised text is returned as written.
func parseAmount(raw string, line int) (string, error) {
	amt := money.Normalize(raw)
	if _, err := money.ParseSigned(amt); err != nil {
		return "", &model.FormatError{Line: line, Value: raw, Reason: "unexpected money format"}
	}
	return amt, nil
}

func caseDescription(desc string, titleCase bool) string {
	if titleCase {
		return descriptions.TitleCase(desc)
	}
	return desc
}
