package rules

import (
	"regexp"
	"strings"
)

// matchUnterminatedString flags lines that open a ' or " literal and reach
// end of line with it still open. Backtick template literals legitimately
// span lines and are ignored, as is anything behind a // comment.
func matchUnterminatedString(text string) []Match {
	var out []Match
	off := 0
	for _, line := range strings.Split(text, "\n") {
		if at := openStringAt(line); at >= 0 {
			out = append(out, Match{Offset: off + at, Text: line[at:]})
		}
		off += len(line) + 1
	}
	return out
}

func openStringAt(line string) int {
	var quote byte
	start := -1
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
				start = -1
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
			start = i
		case '`':
			return -1
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return -1
			}
		}
	}
	return start
}

var promiseCallRE = regexp.MustCompile(`\b(?:fetch|axios\.(?:get|post|put|patch|delete))\s*\(`)

// matchMissingAwait flags well-known promise-returning calls that are
// neither awaited, returned, nor chained on the same line. Heuristic only;
// the scanner is not a parser.
func matchMissingAwait(text string) []Match {
	var out []Match
	off := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, ".then") {
			off += len(line) + 1
			continue
		}
		for _, loc := range promiseCallRE.FindAllStringIndex(line, -1) {
			prefix := line[:loc[0]]
			if strings.Contains(prefix, "await") || strings.Contains(prefix, "return") {
				continue
			}
			out = append(out, Match{Offset: off + loc[0], Text: line[loc[0]:loc[1]]})
		}
		off += len(line) + 1
	}
	return out
}

// matchLooseEquality finds == occurrences that are not part of ===, !=,
// <= or >=.
func matchLooseEquality(text string) []Match {
	var out []Match
	for i := 0; i+1 < len(text); i++ {
		if text[i] != '=' || text[i+1] != '=' {
			continue
		}
		if i > 0 && strings.IndexByte("=!<>", text[i-1]) >= 0 {
			i++
			continue
		}
		if i+2 < len(text) && text[i+2] == '=' {
			i += 2
			continue
		}
		out = append(out, Match{Offset: i, Text: "=="})
		i++
	}
	return out
}
