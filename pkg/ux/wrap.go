package ux

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/reardencode/firmware/pkg/ux/display"
	"github.com/reardencode/firmware/pkg/ux/platform"
)

// endMarker is the sentinel appended after the last story line. It both
// signals "nothing more below" and gives page-down a stable lower bound.
const endMarker = "EOT"

// wordWrap splits one long line into pieces no wider than width,
// breaking at spaces where possible. Words longer than the width are
// hard-split.
func wordWrap(line string, width int) []string {
	var out []string
	words := strings.Fields(line)

	cur := ""
	for _, word := range words {
		for len(word) > width {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			out = append(out, word[:width])
			word = word[width:]
		}
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) <= width:
			cur += " " + word
		default:
			out = append(out, cur)
			cur = word
		}
	}
	if cur != "" {
		out = append(out, cur)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// substituteHints rewrites legacy compact-keypad hints for the qwerty
// variant, which has dedicated CANCEL and SELECT keys. Presentation only.
func substituteHints(msg string) string {
	msg = strings.ReplaceAll(msg, "\nX ", "CANCEL ")
	msg = strings.ReplaceAll(msg, " X ", " CANCEL ")
	msg = strings.ReplaceAll(msg, "OK", "SELECT")
	return msg
}

// storyLines builds the paginated line buffer for a story: optional title
// line, word-wrapped body, trailing blanks trimmed, end sentinel
// appended. Streaming bodies are closed as soon as their lines have been
// consumed. The result always has at least the sentinel line.
func storyLines(body Body, title string, p platform.Profile) ([]string, error) {
	var lines []string
	if title != "" {
		lines = append(lines, display.TitleMarker+title)
	}

	appendWrapped := func(ln string) {
		if len(ln) > p.CharsW {
			lines = append(lines, wordWrap(ln, p.CharsW)...)
		} else {
			// ok if empty, just a blank line
			lines = append(lines, ln)
		}
	}

	switch b := body.(type) {
	case InlineText:
		msg := string(b)
		if p.HasQwerty {
			msg = substituteHints(msg)
		}
		for _, ln := range strings.Split(msg, "\n") {
			appendWrapped(ln)
		}

	case StreamingText:
		scanner := bufio.NewScanner(b.Reader)
		for scanner.Scan() {
			appendWrapped(scanner.Text())
		}
		err := scanner.Err()
		// release the stream right away, large bodies are memory-tight
		b.Reader.Close()
		if err != nil {
			return nil, fmt.Errorf("ux: read story body: %w", err)
		}

	default:
		return nil, fmt.Errorf("ux: unknown story body %T", body)
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	lines = append(lines, endMarker)

	return lines, nil
}
