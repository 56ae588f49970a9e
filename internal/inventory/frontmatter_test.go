package inventory

import (
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/require"
)

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantBlock string
		wantBody  string
		wantNil   bool
	}{
		{"none", "# Title\n", "", "# Title\n", true},
		{"simple", "---\ntitle: A\n---\n# Body\n", "title: A\n", "# Body\n", false},
		{"empty", "---\n---\nbody\n", "", "body\n", false},
		{"crlf", "---\r\ntitle: A\r\n---\r\nbody\r\n", "title: A\r\n", "body\r\n", false},
		{"no trailing newline", "---\ntitle: A\n---", "title: A\n", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, body, err := splitFrontMatter([]byte(tt.content))
			require.NoError(t, err)
			if tt.wantNil {
				require.Nil(t, block)
			} else {
				require.Equal(t, tt.wantBlock, string(block))
			}
			require.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestSplitFrontMatterUnterminated(t *testing.T) {
	_, _, err := splitFrontMatter([]byte("---\ntitle: A\n# Body\n"))
	require.ErrorIs(t, err, ErrUnterminatedFrontMatter)
}

func TestParseFrontMatter(t *testing.T) {
	fields, err := parseFrontMatter([]byte("title: Hello\ndraft: true\nsidebar_position: 2\n"))
	require.NoError(t, err)
	require.Equal(t, "Hello", stringField(fields, "title"))
	require.True(t, boolField(fields, "draft"))
	require.Empty(t, stringField(fields, "sidebar_position"))

	fields, err = parseFrontMatter(nil)
	require.NoError(t, err)
	require.Empty(t, fields)

	_, err = parseFrontMatter([]byte("title: [unclosed\n"))
	require.Error(t, err)
}

func TestFingerprintIgnoresStoredFingerprint(t *testing.T) {
	body := []byte("# Body\n")
	plain, err := fingerprint(map[string]any{"title": "A"}, body)
	require.NoError(t, err)

	stamped, err := fingerprint(map[string]any{"title": "A", mdfp.FingerprintField: "stale"}, body)
	require.NoError(t, err)
	require.Equal(t, plain, stamped)

	changed, err := fingerprint(map[string]any{"title": "B"}, body)
	require.NoError(t, err)
	require.NotEqual(t, plain, changed)

	require.Equal(t, mdfp.CalculateFingerprintFromParts("title: A", "# Body\n"), plain)
}

func TestFirstHeading(t *testing.T) {
	tests := []struct {
		body, want string
	}{
		{"# Hello *World*\n\ntext\n", "Hello World"},
		{"intro\n\n## Second level\n\n# Top\n", "Top"},
		{"## Only `code` here\n", "Only code here"},
		{"Setext Title\n============\n", "Setext Title"},
		{"no headings at all\n", ""},
	}
	for _, tt := range tests {
		if got := firstHeading([]byte(tt.body)); got != tt.want {
			t.Errorf("firstHeading(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}
