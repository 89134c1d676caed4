package localize

import (
	"fmt"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// messageKey is the catalog key of component/id.
func messageKey(component, id string) string {
	return component + "." + id
}

// buildCatalog compiles every pattern of messages into a catalog for tag.
// The returned map holds the ordered argument names of each key.
func buildCatalog(tag language.Tag, messages map[string]map[string]string, warn func(msg string, args ...any)) (*catalog.Builder, map[string][]string) {
	b := catalog.NewBuilder()
	args := map[string][]string{}
	for component, ids := range messages {
		for id, pattern := range ids {
			key := messageKey(component, id)
			c := &compiler{}
			msgs, err := c.compile(pattern)
			if err == nil {
				err = b.Set(tag, key, msgs...)
			}
			if err != nil {
				warn("invalid localization pattern",
					"id", id,
					"component", component,
					"error", err,
				)
				c = &compiler{}
				if err := b.SetString(tag, key, escapeVerbs(pattern)); err != nil {
					continue
				}
			}
			args[key] = c.args
		}
	}
	return b, args
}

// compiler turns a pattern with {name} placeholders and
// {name, plural, selector {text} ...} selections into catalog messages.
// Each distinct name becomes one positional argument.
type compiler struct {
	args []string
	vars []catalog.Message
}

func (c *compiler) compile(pattern string) ([]catalog.Message, error) {
	text, err := c.text(pattern, 0)
	if err != nil {
		return nil, err
	}
	return append(c.vars, catalog.String(text)), nil
}

func (c *compiler) arg(name string) int {
	for i, a := range c.args {
		if a == name {
			return i + 1
		}
	}
	c.args = append(c.args, name)
	return len(c.args)
}

// text converts pattern to a printf pattern. Inside a plural case hash is
// the selected argument and # renders it.
func (c *compiler) text(pattern string, hash int) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		switch ch := pattern[i]; {
		case ch == '%':
			b.WriteString("%%")
		case ch == '#' && hash > 0:
			fmt.Fprintf(&b, "%%[%d]v", hash)
		case ch == '{':
			end := closing(pattern, i)
			if end < 0 {
				b.WriteString(escapeVerbs(pattern[i:]))
				return b.String(), nil
			}
			sub, err := c.placeholder(pattern[i+1 : end])
			if err != nil {
				return "", err
			}
			b.WriteString(sub)
			i = end
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), nil
}

func (c *compiler) placeholder(inner string) (string, error) {
	parts := strings.SplitN(inner, ",", 3)
	name := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return fmt.Sprintf("%%[%d]v", c.arg(name)), nil
	}
	if len(parts) != 3 || strings.TrimSpace(parts[1]) != "plural" {
		return "", fmt.Errorf("unsupported placeholder {%s}", inner)
	}

	n := c.arg(name)
	cases, err := c.cases(parts[2], n)
	if err != nil {
		return "", err
	}
	v := fmt.Sprintf("p%d", len(c.vars))
	c.vars = append(c.vars, catalog.Var(v, plural.Selectf(n, "", cases...)))
	return "${" + v + "}", nil
}

// cases parses `=0 {text} other {text}` into selector/message pairs.
func (c *compiler) cases(s string, n int) ([]any, error) {
	var out []any
	for {
		s = strings.TrimSpace(s)
		if s == "" {
			break
		}
		open := strings.IndexByte(s, '{')
		if open <= 0 {
			return nil, fmt.Errorf("plural case without message in %q", s)
		}
		end := closing(s, open)
		if end < 0 {
			return nil, fmt.Errorf("unclosed plural case in %q", s)
		}
		text, err := c.text(s[open+1:end], n)
		if err != nil {
			return nil, err
		}
		out = append(out, strings.TrimSpace(s[:open]), text)
		s = s[end+1:]
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("plural without cases")
	}
	return out, nil
}

// closing returns the index of the brace closing the one at open, or -1.
func closing(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func escapeVerbs(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
