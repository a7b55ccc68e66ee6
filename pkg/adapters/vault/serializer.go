package vault

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// file is the on-disk shape of a vault note: YAML frontmatter plus a
// Markdown body. Fields live in the frontmatter; the body is left alone.
type file struct {
	Meta    map[string]any
	Content string
}

// parseFile reads a stream and splits it into frontmatter and body.
// A stream without a leading --- fence is all body.
func parseFile(r io.Reader) (*file, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	f := &file{Meta: make(map[string]any)}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		f.Content = string(data)
		return f, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("---"), 2)
	if len(parts) == 1 {
		return nil, errors.New("frontmatter started but no closing delimiter found")
	}

	if err := yaml.Unmarshal(parts[0], &f.Meta); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	f.Content = strings.TrimPrefix(string(parts[1]), "\n")
	f.Content = strings.TrimPrefix(f.Content, "\r\n")
	return f, nil
}

// serialize renders the note back to Markdown with frontmatter.
func (f *file) serialize() ([]byte, error) {
	var buf bytes.Buffer
	if len(f.Meta) > 0 {
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(f.Meta); err != nil {
			return nil, err
		}
		encoder.Close()
		buf.WriteString("---\n")
	}
	buf.WriteString(f.Content)
	return buf.Bytes(), nil
}

// tagsKey is the frontmatter key holding the tag list.
const tagsKey = "tags"

// tags extracts the tag list, tolerating both []string and the []any that
// yaml.v3 produces.
func (f *file) tags() []string {
	switch t := f.Meta[tagsKey].(type) {
	case []string:
		return t
	case []any:
		var tags []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

// addTag appends a tag to the frontmatter list if absent.
// Returns false when the tag was already present.
func (f *file) addTag(tag string) bool {
	tags := f.tags()
	for _, t := range tags {
		if t == tag {
			return false
		}
	}
	f.Meta[tagsKey] = append(tags, tag)
	return true
}

// fields projects the frontmatter scalars into field values. Nested maps and
// lists are not fields; the tags list is handled separately.
func (f *file) fields() map[string]string {
	out := make(map[string]string, len(f.Meta))
	for k, v := range f.Meta {
		if k == tagsKey {
			continue
		}
		switch v := v.(type) {
		case string:
			out[k] = v
		case nil:
			out[k] = ""
		case int, int64, uint64, float64, bool:
			out[k] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
