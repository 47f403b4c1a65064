package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the text encoding of a persisted Document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks a Format from the path extension. Paths without a known
// extension use JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

func (f Format) valid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML:
		return true
	}
	return false
}

func (f Format) encode(doc Document) ([]byte, error) {
	flat := map[string]string(doc.Clone())
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(flat, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(flat)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(flat); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// decode parses data as a flat object. Scalar values of other types are
// stored in their canonical text form; nested values and nulls are dropped and
// their keys returned so the caller can report them.
func (f Format) decode(data []byte) (Document, []string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, nil, nil
	}
	var raw map[string]any
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		if dec.More() {
			return nil, nil, fmt.Errorf("%w: trailing data after object", ErrCorruptDocument)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}

	doc := make(Document, len(raw))
	var dropped []string
	for key, value := range raw {
		text, ok := scalarText(value)
		if !ok {
			dropped = append(dropped, key)
			continue
		}
		doc[key] = text
	}
	return doc, dropped, nil
}

func scalarText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case time.Time:
		return v.Format(time.RFC3339Nano), true
	default:
		return "", false
	}
}
