package ifjlex

import (
	"fmt"
	"strconv"
	"strings"
)

// unescape processes the escape sequences of a string literal body.
func unescape(body string) (string, error) {
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("unfinished escape sequence")
		}
		switch body[i] {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			r, width, err := unicodeEscape(body[i+1:])
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			i += width
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c", body[i])
		}
	}
	return sb.String(), nil
}

// unicodeEscape parses the "{XXXX}" part of a \u escape and returns the rune
// plus the number of bytes consumed.
func unicodeEscape(rest string) (rune, int, error) {
	if !strings.HasPrefix(rest, "{") {
		return 0, 0, fmt.Errorf("expected { after \\u")
	}
	end := strings.IndexByte(rest, '}')
	if end < 0 {
		return 0, 0, fmt.Errorf("unterminated \\u escape")
	}
	digits := rest[1:end]
	if len(digits) == 0 || len(digits) > 8 {
		return 0, 0, fmt.Errorf("\\u escape needs 1 to 8 hex digits")
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid \\u escape %q", digits)
	}
	return rune(v), end + 1, nil
}

// multilineContent extracts the text of a """ literal. The indentation of the
// closing delimiter is stripped from every content line.
func multilineContent(raw string) (string, error) {
	body := strings.TrimSuffix(raw, `"""`)
	body = body[strings.IndexByte(body, '\n')+1:]

	nl := strings.LastIndexByte(body, '\n')
	if nl < 0 {
		if strings.Trim(body, " \t") != "" {
			return "", fmt.Errorf("closing \"\"\" must be on its own line")
		}
		return "", nil
	}
	indent, content := body[nl+1:], body[:nl]
	if strings.Trim(indent, " \t") != "" {
		return "", fmt.Errorf("closing \"\"\" must be on its own line")
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, indent):
			lines[i] = line[len(indent):]
		case strings.Trim(line, " \t\r") == "":
			lines[i] = ""
		default:
			return "", fmt.Errorf("line %d of multi-line string is less indented than its closing delimiter", i+1)
		}
	}
	return unescape(strings.Join(lines, "\n"))
}
