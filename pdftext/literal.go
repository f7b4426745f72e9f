// CLAUDE:SUMMARY Hand-written tokenizer for parenthesized literal strings — nesting, escapes, octal runs.
// CLAUDE:EXPORTS Tokenize
package pdftext

// escapes maps the single-character escape codes of the content mini-language
// to the byte they denote.
var escapes = map[byte]byte{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'b':  '\b',
	'f':  '\f',
	'(':  '(',
	')':  ')',
	'\\': '\\',
}

// Tokenize scans one decoded block for parenthesized literal-string tokens and
// returns each as decoded text. Parentheses nest: an unescaped open paren
// inside a token is emitted and bumps the depth, a close paren at depth 1 ends
// the token without being emitted. A token still open at end of block is
// returned with whatever was accumulated; truncated streams are common and not
// an error.
func Tokenize(block []byte) []string {
	var tokens []string
	i, n := 0, len(block)
	for i < n {
		if block[i] != '(' {
			i++
			continue
		}
		i++
		depth := 1
		var tok []byte
		for i < n && depth > 0 {
			c := block[i]
			switch {
			case c == '\\' && i+1 < n:
				var b byte
				b, i = decodeEscape(block, i)
				tok = append(tok, b)
			case c == '(':
				depth++
				tok = append(tok, c)
				i++
			case c == ')':
				depth--
				i++
				if depth > 0 {
					tok = append(tok, c)
				}
			default:
				tok = append(tok, c)
				i++
			}
		}
		tokens = append(tokens, string(tok))
	}
	return tokens
}

// decodeEscape resolves the escape sequence starting at block[i] (a backslash
// with at least one byte after it) and returns the decoded byte plus the index
// of the first unconsumed byte. Named escapes and octal runs (greedy, max 3
// digits) are decoded; any other escaped character passes through literally
// with the backslash dropped.
func decodeEscape(block []byte, i int) (byte, int) {
	nxt := block[i+1]
	if b, ok := escapes[nxt]; ok {
		return b, i + 2
	}
	if nxt >= '0' && nxt <= '7' {
		val := 0
		j := i + 1
		for j < len(block) && j < i+4 && block[j] >= '0' && block[j] <= '7' {
			val = val*8 + int(block[j]-'0')
			j++
		}
		return byte(val), j
	}
	return nxt, i + 2
}
