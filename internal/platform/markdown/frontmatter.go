package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// SplitFrontmatter separates a leading YAML block from the document body.
// Documents without frontmatter return an empty map and the full content.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, separator) {
		return map[string]any{}, content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	raw, body, ok := strings.Cut(rest, "\n"+separator)
	if !ok {
		if strings.HasSuffix(rest, "\n---") {
			raw, body = strings.TrimSuffix(rest, "\n---"), ""
		} else {
			return nil, "", fmt.Errorf("invalid frontmatter: missing closing separator")
		}
	}

	decoded := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	if decoded == nil {
		decoded = map[string]any{}
	}
	return decoded, strings.TrimLeft(body, "\n"), nil
}

// RenderFrontmatter accepts a map or a yaml-tagged struct; struct field
// order is kept in the output.
func RenderFrontmatter(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

func StringField(meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	switch typed := v.(type) {
	case string:
		return strings.TrimSpace(typed)
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}
