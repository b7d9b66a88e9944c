package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "shotpair/pkg/errors"
	"shotpair/pkg/models"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []models.PagePair
	}{
		{
			name:  "left only and left right",
			input: "about\ncontact,contact-us\n",
			want: []models.PagePair{
				{Index: 1, LeftPath: "about", RightPath: "about"},
				{Index: 2, LeftPath: "contact", RightPath: "contact-us"},
			},
		},
		{
			name:  "blank lines and whitespace",
			input: "\n  /pricing  \n\n   \n /blog , /news \n",
			want: []models.PagePair{
				{Index: 1, LeftPath: "/pricing", RightPath: "/pricing"},
				{Index: 2, LeftPath: "/blog", RightPath: "/news"},
			},
		},
		{
			name:  "no trailing newline and crlf",
			input: "a\r\nb",
			want: []models.PagePair{
				{Index: 1, LeftPath: "a", RightPath: "a"},
				{Index: 2, LeftPath: "b", RightPath: "b"},
			},
		},
		{
			name:  "empty right falls back to left",
			input: "faq,\n",
			want:  []models.PagePair{{Index: 1, LeftPath: "faq", RightPath: "faq"}},
		},
		{
			name:  "byte order mark",
			input: "\ufeffhome\n",
			want:  []models.PagePair{{Index: 1, LeftPath: "home", RightPath: "home"}},
		},
		{
			name:  "duplicates are kept",
			input: "x\nx\n",
			want: []models.PagePair{
				{Index: 1, LeftPath: "x", RightPath: "x"},
				{Index: 2, LeftPath: "x", RightPath: "x"},
			},
		},
		{
			name:  "quotes stay on their line",
			input: "\"about\ncontact\nteam\"\n",
			want: []models.PagePair{
				{Index: 1, LeftPath: "\"about", RightPath: "\"about"},
				{Index: 2, LeftPath: "contact", RightPath: "contact"},
				{Index: 3, LeftPath: "team\"", RightPath: "team\""},
			},
		},
		{
			name:  "leading blank lines",
			input: "\n\nhome\n",
			want:  []models.PagePair{{Index: 1, LeftPath: "home", RightPath: "home"}},
		},
		{
			name:  "empty file",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadRejectsMalformedLines(t *testing.T) {
	_, err := Read(strings.NewReader("a\nb,c,d\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = Read(strings.NewReader(",right\n"))
	assert.Error(t, err)

	_, err = Read(strings.NewReader("ok\n\n\"a\",\"b\",c\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(path, []byte("about\n"), 0o644))

	pairs, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, pairs, 1)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInput))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"https://example.com", "about", "https://example.com/about"},
		{"https://example.com/", "/about", "https://example.com/about"},
		{"https://example.com/docs/", "intro", "https://example.com/docs/intro"},
		{"https://example.com/docs/", "/intro", "https://example.com/intro"},
		{"https://example.com/docs", "intro", "https://example.com/intro"},
		{"https://example.com", "https://other.example.org/x", "https://other.example.org/x"},
		{"https://example.com/", "search?q=shoes", "https://example.com/search?q=shoes"},
	}

	for _, tt := range tests {
		t.Run(tt.base+"+"+tt.path, func(t *testing.T) {
			got, err := Resolve(tt.base, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
