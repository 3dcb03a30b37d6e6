package format

import (
	"strings"
	"testing"

	"github.com/petalcare/chatd/internal/domain"
)

func TestBodyAllFields(t *testing.T) {
	weight := 8.5
	age := 2
	uc := &domain.UserContext{
		Weight:          &weight,
		ChildName:       "Mia",
		ParentFirstName: "Ana",
		CurrentAge:      &age,
		Sex:             "f",
	}

	body := Body(uc, "Is this normal?")

	for _, want := range []string{
		"Child name: Mia\n",
		"Parent first name: Ana\n",
		"Current age: 2\n",
		"Sex: f\n",
		"Weight: 8.5\n",
		"Question: Is this normal?",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestBodyAbsentFieldsRenderPlaceholder(t *testing.T) {
	body := Body(nil, "hi")

	if got := strings.Count(body, Placeholder); got != 8 {
		t.Fatalf("expected 8 placeholders, got %d:\n%s", got, body)
	}
	if !strings.HasSuffix(body, "Question: hi") {
		t.Fatalf("question must come last:\n%s", body)
	}
}

func TestBodyDeterministic(t *testing.T) {
	height := 74.0
	uc := &domain.UserContext{Height: &height, ChildName: "Mia"}

	first := Body(uc, "hello")
	for i := 0; i < 5; i++ {
		if got := Body(uc, "hello"); got != first {
			t.Fatalf("output changed between calls:\n%s\nvs\n%s", first, got)
		}
	}
}
