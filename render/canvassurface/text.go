package canvassurface

import (
	"strings"
	"unicode"

	"github.com/tdewolff/canvas"
)

// wrapText greedily breaks content into lines no wider than limit,
// measured with the face. Breaks happen at whitespace; a single token
// wider than the limit splits mid-word. Explicit newlines always break.
func wrapText(face *canvas.FontFace, content string, limit float64) []string {
	if limit <= 0 {
		return strings.Split(strings.ReplaceAll(content, "\r", ""), "\n")
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0.0

	emit := func(force bool) {
		if line.Len() == 0 && !force {
			return
		}
		lines = append(lines, strings.TrimRight(line.String(), " \t"))
		line.Reset()
		lineWidth = 0
	}
	push := func(token string, width float64) {
		line.WriteString(token)
		lineWidth += width
	}

	for _, token := range tokenize(content) {
		if token == "\n" {
			emit(true)
			continue
		}
		width := face.TextWidth(token)
		if lineWidth > 0 && lineWidth+width > limit {
			emit(false)
		}
		if width <= limit {
			push(token, width)
			continue
		}
		for _, chunk := range splitByWidth(face, token, limit) {
			chunkWidth := face.TextWidth(chunk)
			if lineWidth > 0 && lineWidth+chunkWidth > limit {
				emit(false)
			}
			push(chunk, chunkWidth)
		}
	}
	emit(len(lines) == 0)
	return lines
}

// tokenize splits into runs of whitespace and non-whitespace, with "\n"
// as its own token.
func tokenize(s string) []string {
	var tokens []string
	var run strings.Builder
	runIsSpace := false
	flush := func() {
		if run.Len() > 0 {
			tokens = append(tokens, run.String())
			run.Reset()
		}
	}
	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			continue
		}
		isSpace := unicode.IsSpace(r)
		if run.Len() > 0 && isSpace != runIsSpace {
			flush()
		}
		runIsSpace = isSpace
		run.WriteRune(r)
	}
	flush()
	return tokens
}

func splitByWidth(face *canvas.FontFace, token string, limit float64) []string {
	var parts []string
	var part []rune
	for _, r := range token {
		part = append(part, r)
		if len(part) > 1 && face.TextWidth(string(part)) > limit {
			parts = append(parts, string(part[:len(part)-1]))
			part = []rune{r}
		}
	}
	if len(part) > 0 {
		parts = append(parts, string(part))
	}
	return parts
}
