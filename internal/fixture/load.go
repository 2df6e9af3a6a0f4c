package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

// Load phases reported by LoadError.
const (
	PhaseRead   = "read"
	PhaseParse  = "parse"
	PhaseSchema = "schema"
	PhaseDecode = "decode"
)

// LoadError represents an error that occurred while loading a suite file.
type LoadError struct {
	Path  string
	Phase string
	Pos   token.Pos // CUE position if available
	Err   error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Phase, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Phase, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads, validates and decodes one suite file. The format is chosen by
// extension: .cue files are CUE, everything else is YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Phase: PhaseRead, Err: err}
	}

	var f *File
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		f, err = decodeCUE(path, data)
	} else {
		f, err = decodeYAML(path, data)
	}
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

func decodeYAML(path string, data []byte) (*File, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Phase: PhaseParse, Err: err}
	}
	if doc == nil {
		return &File{}, nil
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, &LoadError{Path: path, Phase: PhaseSchema, Err: err}
	}

	// Parse YAML with strict field validation
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &LoadError{Path: path, Phase: PhaseDecode, Err: err}
	}
	return &f, nil
}

func decodeCUE(path string, data []byte) (*File, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, cueLoadError(path, PhaseParse, err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(path, PhaseParse, err)
	}

	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, cueLoadError(path, PhaseParse, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Path: path, Phase: PhaseParse, Err: err}
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, &LoadError{Path: path, Phase: PhaseSchema, Err: err}
	}

	var f File
	dec = json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, &LoadError{Path: path, Phase: PhaseDecode, Err: err}
	}
	return &f, nil
}

// cueLoadError keeps the position of the first CUE error.
func cueLoadError(path, phase string, err error) *LoadError {
	le := &LoadError{Path: path, Phase: phase, Err: err}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return le
	}
	le.Err = errs[0]
	if positions := cueerrors.Positions(errs[0]); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
