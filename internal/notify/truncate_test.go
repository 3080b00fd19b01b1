package notify

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		maxChars      int
		want          string
		wantTruncated bool
	}{
		{
			name:          "under budget unchanged",
			text:          "short diff",
			maxChars:      100,
			want:          "short diff",
			wantTruncated: false,
		},
		{
			name:          "exactly at budget unchanged",
			text:          "12345",
			maxChars:      5,
			want:          "12345",
			wantTruncated: false,
		},
		{
			name:          "empty text",
			text:          "",
			maxChars:      10,
			want:          "",
			wantTruncated: false,
		},
		{
			name:          "cut at last line boundary",
			text:          "line one\nline two\nline three",
			maxChars:      20,
			want:          "line one\nline two" + truncationNotice,
			wantTruncated: true,
		},
		{
			name:          "no line boundary keeps raw slice",
			text:          "abcdefghij",
			maxChars:      4,
			want:          "abcd" + truncationNotice,
			wantTruncated: true,
		},
		{
			name:          "boundary at position zero keeps raw slice",
			text:          "\nabcdefghij",
			maxChars:      4,
			want:          "\nabc" + truncationNotice,
			wantTruncated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := Truncate(tt.text, tt.maxChars)
			if got != tt.want {
				t.Errorf("Truncate() text = %q, want %q", got, tt.want)
			}
			if truncated != tt.wantTruncated {
				t.Errorf("Truncate() truncated = %v, want %v", truncated, tt.wantTruncated)
			}
		})
	}
}

func TestTruncate_NeverSplitsLine(t *testing.T) {
	text := strings.Repeat("0123456789\n", 100)

	for _, budget := range []int{15, 50, 99, 500} {
		got, truncated := Truncate(text, budget)
		if !truncated {
			t.Fatalf("budget %d: expected truncation", budget)
		}
		body := strings.TrimSuffix(got, truncationNotice)
		if len(body) > budget {
			t.Errorf("budget %d: body length %d exceeds budget", budget, len(body))
		}
		for _, line := range strings.Split(body, "\n") {
			if line != "" && line != "0123456789" {
				t.Errorf("budget %d: line %q was split mid-line", budget, line)
			}
		}
	}
}
