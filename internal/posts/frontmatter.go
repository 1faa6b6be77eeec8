package posts

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

const frontMatterDelimiter = "---"

// FrontMatter holds the metadata extracted from a post's leading block. Keys
// are case-sensitive and no key is required.
type FrontMatter map[string]string

// Get returns the value stored under key, or fallback when the key is absent
// or blank.
func (fm FrontMatter) Get(key, fallback string) string {
	if value, ok := fm[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// Keys lists the metadata keys in sorted order.
func (fm FrontMatter) Keys() []string {
	keys := make([]string, 0, len(fm))
	for key := range fm {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy that can be mutated without affecting fm.
func (fm FrontMatter) Clone() FrontMatter {
	out := make(FrontMatter, len(fm))
	for key, value := range fm {
		out[key] = value
	}
	return out
}

// FrontMatterParser splits raw post text into metadata and markdown body.
// Implementations never fail: malformed input is returned as body with empty
// metadata.
type FrontMatterParser interface {
	Parse(raw string) (FrontMatter, string)
}

// FrontMatterParserFunc adapts a function to FrontMatterParser.
type FrontMatterParserFunc func(raw string) (FrontMatter, string)

// Parse calls f(raw).
func (f FrontMatterParserFunc) Parse(raw string) (FrontMatter, string) {
	return f(raw)
}

// ParseFrontMatter splits raw using the line based `key: value` parser.
func ParseFrontMatter(raw string) (FrontMatter, string) {
	return LineParser{}.Parse(raw)
}

// LineParser reads a `---` delimited block of `key: value` lines. Values have
// surrounding whitespace and one pair of matching quotes stripped; lines that
// do not parse are skipped.
type LineParser struct{}

// Parse implements FrontMatterParser.
func (LineParser) Parse(raw string) (FrontMatter, string) {
	lines := strings.Split(raw, "\n")
	if !isDelimiterLine(lines[0]) {
		return FrontMatter{}, raw
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if isDelimiterLine(lines[i]) {
			end = i
			break
		}
	}
	if end == -1 {
		return FrontMatter{}, raw
	}

	meta := FrontMatter{}
	for _, line := range lines[1:end] {
		key, value, ok := parseMetadataLine(line)
		if !ok {
			continue
		}
		meta[key] = value
	}

	return meta, trimLeadingBlankLines(lines[end+1:])
}

func isDelimiterLine(line string) bool {
	return strings.TrimSuffix(line, "\r") == frontMatterDelimiter
}

func parseMetadataLine(line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(trimmed, ":")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, unquote(strings.TrimSpace(value)), true
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' || first == '\'') && first == last {
		return value[1 : len(value)-1]
	}
	return value
}

// trimLeadingBlankLines joins lines after dropping the whitespace-only lines
// that follow the closing delimiter. The rest of the body is kept verbatim.
func trimLeadingBlankLines(lines []string) string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	return strings.Join(lines[start:], "\n")
}

// YAMLParser decodes structured front matter (YAML `---`, TOML `+++` and JSON
// `;;;` blocks) and flattens every value to a string. Lists are joined with
// ", " and times use RFC 3339. Nested maps are dropped. When decoding fails the
// Fallback parser is used, LineParser by default.
type YAMLParser struct {
	Fallback FrontMatterParser
}

// Parse implements FrontMatterParser.
func (p YAMLParser) Parse(raw string) (FrontMatter, string) {
	var decoded map[string]any
	body, err := frontmatter.Parse(strings.NewReader(raw), &decoded)
	if err != nil {
		return p.fallback().Parse(raw)
	}

	rest := string(body)
	if len(decoded) == 0 && rest == raw {
		return FrontMatter{}, raw
	}

	meta := make(FrontMatter, len(decoded))
	for key, value := range decoded {
		if flattened, ok := flattenValue(value); ok {
			meta[key] = flattened
		}
	}
	return meta, trimLeadingBlankLines(strings.Split(rest, "\n"))
}

func (p YAMLParser) fallback() FrontMatterParser {
	if p.Fallback != nil {
		return p.Fallback
	}
	return LineParser{}
}

func flattenValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case time.Time:
		return v.Format(time.RFC3339), true
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if flattened, ok := flattenValue(item); ok && flattened != "" {
				parts = append(parts, flattened)
			}
		}
		return strings.Join(parts, ", "), true
	case []string:
		return strings.Join(v, ", "), true
	case map[string]any, map[any]any:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

// ParserFor maps a configured parser name to an implementation. Empty selects
// the line parser.
func ParserFor(name string) (FrontMatterParser, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lines", "line":
		return LineParser{}, nil
	case "yaml", "structured":
		return YAMLParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownParser, name)
	}
}
