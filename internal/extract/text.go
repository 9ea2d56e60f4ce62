package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Text handles plain text (.txt) files.
type Text struct{}

func (t *Text) SupportedFormats() []string { return []string{"txt"} }

func (t *Text) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}
	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}
