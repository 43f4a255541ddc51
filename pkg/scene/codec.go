package scene

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/observability"
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON}

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported scene file extension: %q", filepath.Ext(path))
}

// ParseFormat converts a name such as "yml" into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported scene format: %q", s)
}

// Decode reads a spec from r. Unknown keys are rejected. The returned spec is
// not validated.
func Decode(r io.Reader, f Format) (*Spec, error) {
	var spec Spec
	switch f {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&spec)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown key %q", keys[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&spec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported scene format: %q", f)
	}
	return &spec, nil
}

// Encode writes spec to w.
func Encode(w io.Writer, spec *Spec, f Format) error {
	switch f {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(spec); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(spec); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(spec); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported scene format: %q", f)
	}
	return nil
}

// Parse decodes and validates a spec held in memory.
func Parse(data []byte, f Format) (*Spec, error) {
	spec, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// LoadFile reads and validates a scene file. A spec without a name takes the
// file's base name.
func LoadFile(path string) (spec *Spec, err error) {
	start := time.Now()
	defer func() {
		n := 0
		if spec != nil {
			n = len(spec.Elements)
		}
		observability.Scene().OnSceneLoad(context.Background(), "file", path, n, time.Since(start), err)
	}()

	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeSceneNotFound, err, "scene file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read %s", path)
	}

	spec, err = Decode(bytes.NewReader(data), f)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// SaveFile writes spec to path in the encoding its extension names.
func SaveFile(path string, spec *Spec) (err error) {
	start := time.Now()
	defer func() {
		observability.Scene().OnSceneSave(context.Background(), "file", path, time.Since(start), err)
	}()

	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, spec, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	return nil
}
