package inventory

import (
	"bytes"
	"errors"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// ErrUnterminatedFrontMatter indicates a page opens a front matter block but never closes it.
var ErrUnterminatedFrontMatter = errors.New("front matter opening delimiter has no closing delimiter")

// splitFrontMatter separates the `---` delimited YAML block from the Markdown body.
// Pages without front matter return a nil block and the full content as body.
func splitFrontMatter(content []byte) (block, body []byte, err error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}
	rest := content[len(open):]

	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		// A closing delimiter on the last line without trailing newline.
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			return rest[:len(rest)-len(nl+"---")+len(nl)], nil, nil
		}
		return nil, nil, ErrUnterminatedFrontMatter
	}
	return rest[:idx+len(nl)], rest[idx+len(closing):], nil
}

// parseFrontMatter decodes a front matter block into a map; an empty block yields an empty map.
func parseFrontMatter(block []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(block)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(block, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// stringField returns fields[key] when it is a non-empty string.
func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// boolField returns fields[key] when it is a bool.
func boolField(fields map[string]any, key string) bool {
	v, _ := fields[key].(bool)
	return v
}

// fingerprint hashes the page content. A stored fingerprint field is excluded so the value is
// stable whether or not the page already carries one.
func fingerprint(fields map[string]any, body []byte) (string, error) {
	hashed := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField {
			continue
		}
		hashed[k] = v
	}

	frontmatter := ""
	if len(hashed) > 0 {
		// yaml.v3 sorts map keys, so equal maps serialize identically.
		out, err := yaml.Marshal(hashed)
		if err != nil {
			return "", err
		}
		frontmatter = strings.TrimSuffix(string(out), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(frontmatter, string(body)), nil
}
