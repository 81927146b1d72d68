package trackdb

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// block is one `Name ( args... children... )` group.
type block struct {
	name     string
	args     []string
	children []*block
	line     int
}

// child returns the first child with the given name (case-insensitive).
func (b *block) child(name string) *block {
	for _, c := range b.children {
		if strings.EqualFold(c.name, name) {
			return c
		}
	}
	return nil
}

type token struct {
	text   string
	line   int
	quoted bool
}

// tokenize splits the input into words, quoted strings and parentheses.
func tokenize(r io.Reader) ([]token, error) {
	var toks []token
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if line == 1 && strings.HasPrefix(text, "SIMISA") {
			continue
		}
	scan:
		for i := 0; i < len(text); {
			c := rune(text[i])
			switch {
			case strings.HasPrefix(text[i:], "//"):
				break scan
			case unicode.IsSpace(c):
				i++
			case c == '(' || c == ')':
				toks = append(toks, token{text: string(c), line: line})
				i++
			case c == '"':
				end := strings.IndexByte(text[i+1:], '"')
				if end < 0 {
					return nil, fmt.Errorf("line %d: unterminated string", line)
				}
				toks = append(toks, token{text: text[i+1 : i+1+end], line: line, quoted: true})
				i += end + 2
			default:
				j := i
				for j < len(text) && !unicode.IsSpace(rune(text[j])) && text[j] != '(' && text[j] != ')' && !strings.HasPrefix(text[j:], "//") {
					j++
				}
				toks = append(toks, token{text: text[i:j], line: line})
				i = j
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return toks, nil
}

// parseBlocks builds the block tree with an explicit stack so that deep
// nesting cannot exhaust the goroutine stack.
func parseBlocks(toks []token) ([]*block, error) {
	root := &block{}
	stack := []*block{root}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		top := stack[len(stack)-1]

		switch {
		case !t.quoted && t.text == ")":
			if len(stack) == 1 {
				return nil, fmt.Errorf("line %d: unbalanced ')'", t.line)
			}
			stack = stack[:len(stack)-1]
		case !t.quoted && t.text == "(":
			return nil, fmt.Errorf("line %d: '(' without a block name", t.line)
		case !t.quoted && i+1 < len(toks) && toks[i+1].text == "(" && !toks[i+1].quoted:
			b := &block{name: t.text, line: t.line}
			top.children = append(top.children, b)
			stack = append(stack, b)
			i++
		default:
			top.args = append(top.args, t.text)
		}
	}

	if len(stack) != 1 {
		open := stack[len(stack)-1]
		return nil, fmt.Errorf("line %d: block %q not closed", open.line, open.name)
	}
	return root.children, nil
}
