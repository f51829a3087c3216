package pipeline

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

func TestFormatResponseNoMetadata(t *testing.T) {
	got := FormatResponse("just the answer", nil, "00:12:30", zap.NewNop())

	if got != "just the answer\n" {
		t.Errorf("expected answer-only response, got %q", got)
	}
}

func TestFormatResponseDeepLink(t *testing.T) {
	meta := &domain.MetadataRecord{
		Title: "Ep 1",
		URL:   "https://youtu.be/abc",
	}

	got := FormatResponse("the answer", meta, "00:12:30", zap.NewNop())

	want := "the answer\n🍿Source video:\nEp 1\nhttps://youtu.be/abc?t=750s"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatResponseExistingQueryString(t *testing.T) {
	meta := &domain.MetadataRecord{
		Title: "Ep 2",
		URL:   "https://www.youtube.com/watch?v=abc",
	}

	got := FormatResponse("a", meta, "01:00:01", zap.NewNop())

	if !strings.Contains(got, "https://www.youtube.com/watch?v=abc&t=3601s") {
		t.Errorf("expected &t=3601s appended, got %q", got)
	}
}

func TestFormatResponseSentinelTimestamp(t *testing.T) {
	meta := &domain.MetadataRecord{
		Title: "Ep 3",
		URL:   "https://youtu.be/abc",
	}

	got := FormatResponse("a", meta, domain.TimestampSentinel, zap.NewNop())

	if strings.Contains(got, "t=") {
		t.Errorf("sentinel timestamp must not produce a deep link, got %q", got)
	}
	if !strings.Contains(got, "https://youtu.be/abc") {
		t.Errorf("expected plain URL, got %q", got)
	}
}

func TestFormatResponseNonVideoHost(t *testing.T) {
	meta := &domain.MetadataRecord{
		Title: "Ep 4",
		URL:   "https://example.com/video",
	}

	got := FormatResponse("a", meta, "00:05:00", zap.NewNop())

	if strings.Contains(got, "t=") {
		t.Errorf("non-video-host URL must not get a deep link, got %q", got)
	}
}

func TestFormatResponseSourceCodeLine(t *testing.T) {
	meta := &domain.MetadataRecord{
		Title:         "Ep 5",
		URL:           "https://youtu.be/abc",
		SourceCodeURL: "https://github.com/example/repo",
	}

	got := FormatResponse("a", meta, domain.TimestampSentinel, zap.NewNop())

	if !strings.HasSuffix(got, "\n\n💾Source Code: https://github.com/example/repo") {
		t.Errorf("expected source code line, got %q", got)
	}
}

func TestFormatResponseEmptyFields(t *testing.T) {
	meta := &domain.MetadataRecord{}

	got := FormatResponse("a", meta, domain.TimestampSentinel, zap.NewNop())

	want := "a\n🍿Source video:\nN/A\nN/A"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTimestampToSeconds(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"00:12:30", 750, true},
		{"01:00:01", 3601, true},
		{"1:2:3", 3723, true},
		{"garbage", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := timestampToSeconds(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("timestampToSeconds(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
