package valuecfg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	appErrors "segbox/internal/errors"
)

// Format names a document encoding.
type Format int

const (
	// FormatAuto sniffs the payload: a leading '{' is JSON, anything else YAML.
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

// String returns the string representation of a Format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// FormatForPath picks a format from a file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// FormatForContentType picks a format from an HTTP Content-Type header.
func FormatForContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatAuto
	}
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return FormatJSON
	case strings.Contains(mediaType, "yaml"):
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Decode parses a configuration document. It does not validate.
func Decode(data []byte, format Format) (Config, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Config{}, appErrors.New(appErrors.CodeConfigDecode, "empty configuration document", nil)
	}
	if format == FormatAuto {
		format = FormatYAML
		if trimmed[0] == '{' {
			format = FormatJSON
		}
	}

	var cfg Config
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(trimmed, &cfg)
	default:
		err = yaml.Unmarshal(trimmed, &cfg)
	}
	if err != nil {
		return Config{}, appErrors.New(appErrors.CodeConfigDecode, fmt.Sprintf("decode %s configuration", format), err)
	}
	return cfg, nil
}

// LoadFile reads and decodes a configuration document from disk.
func LoadFile(path string) (Config, error) {
	//nolint:gosec // G304: Configuration path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, appErrors.New(appErrors.CodeConfigLoad, fmt.Sprintf("read %s", path), err)
	}
	cfg, err := Decode(data, FormatForPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
