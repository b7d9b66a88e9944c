// Package input reads the list of page pairs to compare.
package input

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	apperrors "shotpair/pkg/errors"
	"shotpair/pkg/models"
)

const (
	bom           = "\ufeff"
	maxLineLength = 1 << 20
)

// ReadFile parses the input file at path. A missing or unreadable file is
// reported as an input error.
func ReadFile(path string) ([]models.PagePair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Input("open input", err)
	}
	defer f.Close()

	pairs, err := Read(f)
	if err != nil {
		return nil, apperrors.Input("read "+path, err)
	}
	return pairs, nil
}

// Read parses one pair per line in the form leftPath[,rightPath].
// Blank lines are ignored and do not consume an index. When rightPath is
// absent it defaults to leftPath. Quotes have no special meaning.
func Read(r io.Reader) ([]models.PagePair, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var pairs []models.PagePair
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if line == 1 {
			text = strings.TrimPrefix(text, bom)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		fields := strings.Split(text, ",")
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: expected leftPath[,rightPath], got %d fields", line, len(fields))
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		pair := models.PagePair{
			Index:     len(pairs) + 1,
			LeftPath:  fields[0],
			RightPath: fields[0],
		}
		if pair.LeftPath == "" {
			return nil, fmt.Errorf("line %d: left path is empty", line)
		}
		if len(fields) == 2 && fields[1] != "" {
			pair.RightPath = fields[1]
		}
		pairs = append(pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line+1, err)
	}

	return pairs, nil
}

// Resolve resolves path against base using RFC 3986 reference resolution,
// so "about" and "/about" against "https://example.com/docs/" give
// ".../docs/about" and "https://example.com/about" respectively.
func Resolve(base, path string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	return b.ResolveReference(ref).String(), nil
}
