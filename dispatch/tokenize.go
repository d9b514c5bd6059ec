// Package dispatch implements C9: the command-line tokenizer, the arity
// and rank tables, the sorter, problem-status evaluation against a
// burn.ProblemTracker, and the packet-output/session/error-log writers
// (§4.9, §6.1, §6.2, §6.5).
package dispatch

import (
	"strconv"
	"strings"

	burnerrors "github.com/burnshell/burn/errors"
)

// BackslashMode selects how backslashes are interpreted while tokenizing
// (§4.9).
type BackslashMode int

const (
	BackslashOff BackslashMode = iota
	BackslashInDoubleQuotes
	BackslashInQuotes
	BackslashWithQuotedInput
)

// Tokenize splits line into words honoring single/double quotes and the
// given backslash mode, decoding C-style escapes when the mode calls for
// it (§4.9). A trailing unescaped backslash at end of line is reported via
// continuation=true and is not included in the returned tokens.
func Tokenize(line string, mode BackslashMode) (tokens []string, continuation bool, err burnerrors.DriverError) {
	var cur strings.Builder
	haveCur := false
	inSingle, inDouble := false, false
	i := 0
	n := len(line)

	flush := func() {
		if haveCur {
			tokens = append(tokens, cur.String())
			cur.Reset()
			haveCur = false
		}
	}

	for i < n {
		c := line[i]
		switch {
		case inSingle:
			if c == '\'' {
				inSingle = false
				i++
				continue
			}
			cur.WriteByte(c)
			i++

		case inDouble:
			if c == '"' {
				inDouble = false
				i++
				continue
			}
			if c == '\\' && escapesEnabled(mode, true) {
				consumed, decoded, ok := decodeEscape(line[i+1:])
				if ok {
					cur.WriteString(decoded)
					i += 1 + consumed
					continue
				}
			}
			cur.WriteByte(c)
			i++

		case c == '\'':
			inSingle = true
			haveCur = true
			i++

		case c == '"':
			inDouble = true
			haveCur = true
			i++

		case c == ' ' || c == '\t':
			flush()
			i++

		case c == '\\' && i == n-1:
			continuation = true
			i++

		case c == '\\' && escapesEnabled(mode, false):
			consumed, decoded, ok := decodeEscape(line[i+1:])
			if ok {
				haveCur = true
				cur.WriteString(decoded)
				i += 1 + consumed
				continue
			}
			haveCur = true
			cur.WriteByte(c)
			i++

		default:
			haveCur = true
			cur.WriteByte(c)
			i++
		}
	}

	if inSingle || inDouble {
		return nil, false, burnerrors.ErrUnbalancedExpression
	}
	flush()
	return tokens, continuation, nil
}

func escapesEnabled(mode BackslashMode, inDoubleQuotes bool) bool {
	switch mode {
	case BackslashOff:
		return false
	case BackslashInDoubleQuotes:
		return inDoubleQuotes
	case BackslashInQuotes, BackslashWithQuotedInput:
		return true
	default:
		return false
	}
}

// decodeEscape decodes one C-style escape starting right after the
// backslash in rest, returning how many bytes of rest were consumed.
func decodeEscape(rest string) (consumed int, decoded string, ok bool) {
	if len(rest) == 0 {
		return 0, "", false
	}
	switch rest[0] {
	case 'a':
		return 1, "\a", true
	case 'b':
		return 1, "\b", true
	case 'e':
		return 1, "\x1b", true
	case 'f':
		return 1, "\f", true
	case 'n':
		return 1, "\n", true
	case 'r':
		return 1, "\r", true
	case 't':
		return 1, "\t", true
	case 'v':
		return 1, "\v", true
	case '\\':
		return 1, "\\", true
	case 'x':
		if len(rest) >= 3 {
			if v, err := strconv.ParseUint(rest[1:3], 16, 8); err == nil {
				return 3, string([]byte{byte(v)}), true
			}
		}
		return 0, "", false
	case 'c':
		if len(rest) >= 2 {
			return 2, string([]byte{rest[1] & 0x1F}), true
		}
		return 0, "", false
	default:
		if rest[0] >= '0' && rest[0] <= '7' {
			end := 1
			for end < len(rest) && end < 3 && rest[end] >= '0' && rest[end] <= '7' {
				end++
			}
			if v, err := strconv.ParseUint(rest[:end], 8, 8); err == nil {
				return end, string([]byte{byte(v)}), true
			}
		}
		return 0, "", false
	}
}

// StripCommandDashes strips 0..N leading dashes from a command word and
// canonicalizes remaining dashes to underscores (§4.9 step 2).
func StripCommandDashes(word string) string {
	trimmed := strings.TrimLeft(word, "-")
	return strings.ReplaceAll(trimmed, "-", "_")
}
