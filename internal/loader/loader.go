// Package loader reads parameter descriptor files. Descriptors can be
// written in CUE, YAML, or JSON; all three decode into the same raw shape
// and convert to compiler descriptors identically.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matthewbaird/paramgen/internal/codec"
	"github.com/matthewbaird/paramgen/internal/compiler"
)

// Raw file structures shared by every input format.

type rawFile struct {
	Params []rawParam `json:"params" yaml:"params"`
}

type rawParam struct {
	Name    string      `json:"name" yaml:"name"`
	Kind    string      `json:"kind" yaml:"kind"`
	Label   string      `json:"label" yaml:"label"`
	Default any         `json:"default" yaml:"default"`
	Min     *int        `json:"min" yaml:"min"`
	Max     *int        `json:"max" yaml:"max"`
	Options []rawOption `json:"options" yaml:"options"`
	Codec   *rawCodec   `json:"codec" yaml:"codec"`
}

type rawOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type rawCodec struct {
	Name    string  `json:"name" yaml:"name"`
	Divisor float64 `json:"divisor" yaml:"divisor"`
	MinHz   float64 `json:"min_hz" yaml:"min_hz"`
	MaxHz   float64 `json:"max_hz" yaml:"max_hz"`
	Forward string  `json:"forward" yaml:"forward"`
	Inverse string  `json:"inverse" yaml:"inverse"`
}

// LoadFile reads descriptors from a file, dispatching on the extension:
// .cue, .yaml/.yml, or .json.
func LoadFile(path string) ([]compiler.Descriptor, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return loadCUE(path)
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, fmt.Errorf("%s: unsupported descriptor format %q", path, ext)
	}
}

func loadCUE(path string) ([]compiler.Descriptor, error) {
	insts := load.Instances([]string{filepath.Base(path)}, &load.Config{Dir: filepath.Dir(path)})
	if len(insts) == 0 {
		return nil, fmt.Errorf("%s: no CUE instances found", path)
	}
	if insts[0].Err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, insts[0].Err)
	}
	val := cuecontext.New().BuildInstance(insts[0])
	if val.Err() != nil {
		return nil, fmt.Errorf("building %s: %w", path, val.Err())
	}
	var f rawFile
	if err := val.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return convert(path, f)
}

func loadYAML(path string) ([]compiler.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f rawFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml parse %s: %w", path, err)
	}
	return convert(path, f)
}

func loadJSON(path string) ([]compiler.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f rawFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("json parse %s: %w", path, err)
	}
	return convert(path, f)
}

func convert(path string, f rawFile) ([]compiler.Descriptor, error) {
	if len(f.Params) == 0 {
		return nil, fmt.Errorf("%s: no params defined", path)
	}
	out := make([]compiler.Descriptor, 0, len(f.Params))
	for _, p := range f.Params {
		d, err := convertParam(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func convertParam(p rawParam) (compiler.Descriptor, error) {
	kind, err := parseKind(p.Kind)
	if err != nil {
		return compiler.Descriptor{}, fmt.Errorf("param %q: %w", p.Name, err)
	}
	d := compiler.Descriptor{
		Name:    p.Name,
		Kind:    kind,
		Label:   p.Label,
		Default: p.Default,
	}
	if p.Min != nil || p.Max != nil {
		if p.Min == nil || p.Max == nil {
			return compiler.Descriptor{}, fmt.Errorf("param %q: min and max must be given together", p.Name)
		}
		d.Range = &compiler.Range{Min: *p.Min, Max: *p.Max}
	}
	for _, opt := range p.Options {
		d.Options = append(d.Options, compiler.Option{Value: opt.Value, Label: opt.Label})
	}
	if p.Codec != nil {
		d.Codec = compiler.CodecSpec{
			Name: p.Codec.Name,
			Options: codec.Options{
				Divisor:     p.Codec.Divisor,
				MinHz:       p.Codec.MinHz,
				MaxHz:       p.Codec.MaxHz,
				ForwardBody: p.Codec.Forward,
				InverseBody: p.Codec.Inverse,
			},
		}
	}
	return d, nil
}

// parseKind accepts both the descriptor-facing kind names and the host
// editor's slider/dropdown vocabulary.
func parseKind(s string) (compiler.Kind, error) {
	switch strings.ToLower(s) {
	case "continuous", "slider":
		return compiler.KindContinuous, nil
	case "enumerated", "dropdown":
		return compiler.KindEnumerated, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", s)
	}
}
