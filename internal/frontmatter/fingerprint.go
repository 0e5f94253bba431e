package frontmatter

import (
	"errors"
	"strings"

	"github.com/inful/mdfp"
)

// FingerprintField is the front matter key holding the content fingerprint.
const FingerprintField = mdfp.FingerprintField

// Fingerprint computes the content fingerprint of a document. The fingerprint
// field itself is excluded and the serialized YAML loses one trailing newline
// before hashing.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	if fields == nil {
		return "", errors.New("fields map is nil")
	}

	hashed := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == FingerprintField {
			continue
		}
		hashed[k] = v
	}

	fm := ""
	if len(hashed) > 0 {
		raw, err := SerializeYAML(hashed)
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(raw), "\n")
	}

	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}

// Upsert sets the fingerprint field on fields and reports whether it changed.
func Upsert(fields map[string]any, body []byte) (string, bool, error) {
	fp, err := Fingerprint(fields, body)
	if err != nil {
		return "", false, err
	}
	if existing, ok := fields[FingerprintField].(string); ok && existing == fp {
		return fp, false, nil
	}
	fields[FingerprintField] = fp
	return fp, true, nil
}
