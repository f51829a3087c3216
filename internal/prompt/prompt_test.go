package prompt

import (
	"strings"
	"testing"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

func TestBuildTimestampSelector(t *testing.T) {
	got := BuildTimestampSelector("what's the main point", "[00:01:05] intro [00:12:30] main point")

	if !strings.Contains(got, "what's the main point") {
		t.Error("prompt missing question")
	}
	if !strings.Contains(got, "[00:12:30] main point") {
		t.Error("prompt missing transcript excerpt")
	}
	if !strings.Contains(got, "HH:MM:SS") {
		t.Error("prompt missing format instruction")
	}
	if !strings.Contains(got, `"00:00:00"`) {
		t.Error("prompt missing sentinel instruction")
	}
}

func TestPersonaDirective(t *testing.T) {
	for _, p := range domain.AllPersonas {
		if PersonaDirective(p) == "" {
			t.Errorf("persona %q has no directive", p)
		}
	}

	if PersonaDirective(domain.PersonaNone) != "" {
		t.Error("empty persona should have no directive")
	}
}
