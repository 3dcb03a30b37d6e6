// Package format builds the message body sent to the completion service.
package format

import (
	"strconv"
	"strings"

	"github.com/petalcare/chatd/internal/domain"
)

// Placeholder renders for any field the caller did not supply, keeping field
// positions stable for downstream parsing.
const Placeholder = "n/a"

// Body folds the structured user context and the question into a single
// message body. Deterministic given identical input; fields appear in a
// fixed order.
func Body(uc *domain.UserContext, question string) string {
	if uc == nil {
		uc = &domain.UserContext{}
	}

	var b strings.Builder
	writeField(&b, "Child name", stringOr(uc.ChildName))
	writeField(&b, "Parent first name", stringOr(uc.ParentFirstName))
	writeField(&b, "Current age", intOr(uc.CurrentAge))
	writeField(&b, "Sex", stringOr(uc.Sex))
	writeField(&b, "Weight", floatOr(uc.Weight))
	writeField(&b, "Height", floatOr(uc.Height))
	writeField(&b, "Latitude", floatOr(uc.Latitude))
	writeField(&b, "Longitude", floatOr(uc.Longitude))
	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}

func writeField(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func stringOr(v string) string {
	if v == "" {
		return Placeholder
	}
	return v
}

func intOr(v *int) string {
	if v == nil {
		return Placeholder
	}
	return strconv.Itoa(*v)
}

func floatOr(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
