package markdown

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var altReplacer = strings.NewReplacer(
	"\\", "\\\\",
	"\n", " ",
	"[", "\\[",
	"]", "\\]",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeAlt makes text safe to use as the alt text of a markdown image.
// Replacements happen in a single pass, so inserted backslashes are never escaped again.
func EscapeAlt(text string) string {
	if text == "" {
		return ""
	}

	return altReplacer.Replace(text)
}

// Image returns a markdown image embedding data as a base64 data URL.
// The alt text is used as is; run it through EscapeAlt first.
func Image(alt, contentType string, data []byte) string {
	if contentType == "" {
		contentType = "image/png"
	}

	var sb strings.Builder

	sb.WriteString("![")
	sb.WriteString(alt)
	sb.WriteString("](data:")
	sb.WriteString(contentType)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(data))
	sb.WriteString(")")

	return sb.String()
}

// ImageURLs returns the destinations of all images in a markdown document.
func ImageURLs(markdown string) []string {
	source := []byte(markdown)

	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var result []string

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if image, ok := n.(*ast.Image); ok {
			result = append(result, string(image.Destination))
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return result
}

// DecodeDataURL splits a base64 data URL into its content type and payload.
func DecodeDataURL(url string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(url, "data:")

	if !ok {
		return "", nil, errors.New("invalid data url")
	}

	meta, payload, ok := strings.Cut(rest, ",")

	if !ok {
		return "", nil, errors.New("invalid data url")
	}

	contentType, ok := strings.CutSuffix(meta, ";base64")

	if !ok {
		return "", nil, errors.New("unsupported data url encoding")
	}

	data, err := base64.StdEncoding.DecodeString(payload)

	if err != nil {
		return "", nil, err
	}

	return contentType, data, nil
}
