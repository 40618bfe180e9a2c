package content

import (
	"bytes"
	"errors"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates a document opened a front matter block
// without closing it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// splitFrontMatter separates `---` delimited YAML front matter from the
// Markdown body. had is false when the document has no front matter.
func splitFrontMatter(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}
	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}
	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF without a trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len(nl+"---")
			return content[start : end+len(nl)], nil, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], true, nil
}

// fingerprint hashes the front matter fields (minus any stored fingerprint)
// together with the body, so that a post's identity changes whenever either
// its metadata or text does.
func fingerprint(fm []byte, body []byte) (string, error) {
	fields := map[string]any{}
	if len(fm) > 0 {
		if err := yaml.Unmarshal(fm, &fields); err != nil {
			return "", err
		}
	}
	delete(fields, mdfp.FingerprintField)

	canonical := ""
	if len(fields) > 0 {
		out, err := yaml.Marshal(fields)
		if err != nil {
			return "", err
		}
		canonical = strings.TrimSuffix(string(out), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(canonical, string(body)), nil
}
