// Package codec holds the catalogue of display transforms used by the
// parameter compiler.
//
// A codec is a named, parametrized mapping between a raw stored integer and
// its human-readable display string. Each codec owns four things: a semantic
// forward function (raw -> display, total over the legal raw range), a
// semantic inverse function (display -> raw, partial; a false result is the
// defined invalid-input signal, never an error), and the two JavaScript
// fragments the host editor needs — a switch-case for its display formatter
// and an expression body for its display parser. The semantic pair is the
// contract the emitted fragments must honor: for every representable raw
// value v, Parse(Format(v)) == v within the codec's rounding granularity.
package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultName is the codec substituted when a descriptor names a codec that
// is not registered. Generation proceeds; the failure is recovered locally.
const DefaultName = "percentage"

// Options parametrizes a codec. Zero values mean "unset" and fall back to
// the codec's declared defaults when resolved, so a misspelled option name
// is a Go compile error rather than a silently ignored key.
type Options struct {
	// Divisor scales the ms codec: display = raw / Divisor. Default 1.
	Divisor float64

	// MinHz and MaxHz bound the hz codec's linear remap of raw 0..1000.
	// Defaults 0.1 and 20.
	MinHz float64
	MaxHz float64

	// ForwardBody and InverseBody are the verbatim snippet bodies for the
	// custom codec. The registry performs no validation on them and makes
	// no inversion guarantee.
	ForwardBody string
	InverseBody string
}

// merged overlays caller options on the defaults. Caller values win; unset
// fields keep the default.
func (o Options) merged(defaults Options) Options {
	m := defaults
	if o.Divisor != 0 {
		m.Divisor = o.Divisor
	}
	if o.MinHz != 0 {
		m.MinHz = o.MinHz
	}
	if o.MaxHz != 0 {
		m.MaxHz = o.MaxHz
	}
	if o.ForwardBody != "" {
		m.ForwardBody = o.ForwardBody
	}
	if o.InverseBody != "" {
		m.InverseBody = o.InverseBody
	}
	return m
}

// Definition describes one registered codec.
type Definition struct {
	Name     string
	Defaults Options

	// Format renders the display string for a raw value.
	Format func(raw int, o Options) string
	// Parse recovers the raw value from display text. ok is false when the
	// text does not parse or falls outside the codec's legal display range.
	Parse func(text string, o Options) (raw int, ok bool)

	// Forward renders the host-side formatter fragment (a switch case keyed
	// on the parameter name). Inverse renders the host-side parser body.
	Forward func(param string, o Options) string
	Inverse func(param string, o Options) string
}

// Registry is the fixed catalogue of codec definitions. The built-in set is
// pre-registered by NewRegistry; further Register calls extend it.
type Registry struct {
	byName map[string]*Definition
	order  []string
}

// NewRegistry returns a registry pre-loaded with the built-in catalogue.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Definition)}
	for _, def := range builtins() {
		if err := r.Register(def); err != nil {
			// Built-in names are distinct by construction.
			panic(err)
		}
	}
	return r
}

// Register adds a codec definition. Re-registration under an existing name
// fails with *DuplicateCodecError.
func (r *Registry) Register(def *Definition) error {
	if _, ok := r.byName[def.Name]; ok {
		return &DuplicateCodecError{Name: def.Name}
	}
	r.byName[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// Names returns the registered codec names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Resolve looks up a codec, merges the caller options over its defaults, and
// binds the parameter name into both renderers. The name is bound because
// the emitted case label must be the parameter's own name and any temporary
// variable must be unique per parameter when cases are concatenated into one
// switch. An empty name resolves to DefaultName; an unregistered name fails
// with *UnknownCodecError (callers are expected to fall back to DefaultName
// rather than propagate it).
func (r *Registry) Resolve(name string, opts Options, param string) (Binding, error) {
	if name == "" {
		name = DefaultName
	}
	def, ok := r.byName[name]
	if !ok {
		return Binding{}, &UnknownCodecError{Name: name}
	}
	return Binding{def: def, param: param, opts: opts.merged(def.Defaults)}, nil
}

// Binding is a codec resolved for one parameter: options merged, parameter
// name fixed. Bindings are immutable value objects.
type Binding struct {
	def   *Definition
	param string
	opts  Options
}

// Codec returns the bound codec's name.
func (b Binding) Codec() string { return b.def.Name }

// Format renders the display string for a raw value.
func (b Binding) Format(raw int) string { return b.def.Format(raw, b.opts) }

// Parse recovers the raw value from display text.
func (b Binding) Parse(text string) (int, bool) { return b.def.Parse(text, b.opts) }

// ForwardCase renders the formatter switch-case fragment.
func (b Binding) ForwardCase() string { return b.def.Forward(b.param, b.opts) }

// InverseExpr renders the parser body fragment.
func (b Binding) InverseExpr() string { return b.def.Inverse(b.param, b.opts) }

// builtins returns the fixed built-in catalogue. The emitted JavaScript
// mirrors the host editor's existing formatter and parser switches.
func builtins() []*Definition {
	return []*Definition{
		{
			Name: "percentage",
			Format: func(raw int, _ Options) string {
				return fmt.Sprintf("%.1f%%", float64(raw)/10)
			},
			Parse: func(text string, _ Options) (int, bool) {
				v, ok := parseDisplay(text, "%")
				if !ok {
					return 0, false
				}
				return int(math.Round(v * 10)), true
			},
			Forward: func(param string, _ Options) string {
				return forwardCase(param, "text = (val / 10).toFixed(1) + '%';")
			},
			Inverse: func(_ string, _ Options) string {
				return "return Math.round(val * 10);"
			},
		},
		{
			Name: "db",
			Format: func(raw int, _ Options) string {
				return fmt.Sprintf("%+.1f dB", float64(raw)/1000)
			},
			Parse: func(text string, _ Options) (int, bool) {
				v, ok := parseDisplay(text, "dB")
				if !ok {
					return 0, false
				}
				return int(math.Round(v * 1000)), true
			},
			Forward: func(param string, _ Options) string {
				return forwardCase(param, "text = (val >= 0 ? '+' : '') + (val / 1000).toFixed(1) + ' dB';")
			},
			Inverse: func(_ string, _ Options) string {
				return "return Math.round(val * 1000);"
			},
		},
		{
			Name: "semitones",
			Format: func(raw int, _ Options) string {
				return fmt.Sprintf("%+.2f st", float64(raw)/1000)
			},
			Parse: func(text string, _ Options) (int, bool) {
				v, ok := parseDisplay(text, "st")
				if !ok {
					return 0, false
				}
				return int(math.Round(v * 1000)), true
			},
			Forward: func(param string, _ Options) string {
				return forwardCase(param, "text = (val >= 0 ? '+' : '') + (val / 1000).toFixed(2) + ' st';")
			},
			Inverse: func(_ string, _ Options) string {
				return "return Math.round(val * 1000);"
			},
		},
		{
			Name:     "ms",
			Defaults: Options{Divisor: 1},
			Format: func(raw int, o Options) string {
				return fmt.Sprintf("%.1f ms", float64(raw)/o.Divisor)
			},
			Parse: func(text string, o Options) (int, bool) {
				v, ok := parseDisplay(text, "ms")
				if !ok {
					return 0, false
				}
				return int(math.Round(v * o.Divisor)), true
			},
			Forward: func(param string, o Options) string {
				return forwardCase(param, fmt.Sprintf("text = (val / %s).toFixed(1) + ' ms';", jsNum(o.Divisor)))
			},
			Inverse: func(_ string, o Options) string {
				return fmt.Sprintf("return Math.round(val * %s);", jsNum(o.Divisor))
			},
		},
		{
			Name:     "hz",
			Defaults: Options{MinHz: 0.1, MaxHz: 20},
			Format: func(raw int, o Options) string {
				hz := o.MinHz + (float64(raw)/1000)*(o.MaxHz-o.MinHz)
				return fmt.Sprintf("%.2f Hz", hz)
			},
			Parse: func(text string, o Options) (int, bool) {
				hz, ok := parseDisplay(text, "Hz")
				if !ok || hz < o.MinHz || hz > o.MaxHz {
					return 0, false
				}
				return int(math.Round((hz - o.MinHz) / (o.MaxHz - o.MinHz) * 1000)), true
			},
			Forward: func(param string, o Options) string {
				body := fmt.Sprintf("const hz_%s = %s + ((val / 1000) * (%s - %s));\n    text = hz_%s.toFixed(2) + ' Hz';",
					param, jsNum(o.MinHz), jsNum(o.MaxHz), jsNum(o.MinHz), param)
				return forwardCase(param, body)
			},
			Inverse: func(_ string, o Options) string {
				return fmt.Sprintf("const hz = parseFloat(text);\nif (isNaN(hz) || hz < %s || hz > %s) return null;\nreturn Math.round(((hz - %s) / (%s - %s)) * 1000);",
					jsNum(o.MinHz), jsNum(o.MaxHz), jsNum(o.MinHz), jsNum(o.MaxHz), jsNum(o.MinHz))
			},
		},
		{
			// The documented escape hatch: both bodies are caller-supplied
			// verbatim text and no round-trip guarantee is enforced. The
			// semantic pair defaults to the identity mapping the default
			// bodies describe.
			Name: "custom",
			Format: func(raw int, _ Options) string {
				return strconv.Itoa(raw)
			},
			Parse: func(text string, _ Options) (int, bool) {
				v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
				if err != nil || math.IsNaN(v) {
					return 0, false
				}
				return int(math.Round(v)), true
			},
			Forward: func(_ string, o Options) string {
				if o.ForwardBody != "" {
					return o.ForwardBody
				}
				return "// Add custom formatting here"
			},
			Inverse: func(_ string, o Options) string {
				if o.InverseBody != "" {
					return o.InverseBody
				}
				return "return Math.round(val);"
			},
		},
	}
}

// parseDisplay strips a unit suffix and parses the remainder as a number.
// The suffix is optional in the input; surrounding whitespace is ignored.
func parseDisplay(text, unit string) (float64, bool) {
	t := strings.TrimSpace(text)
	t = strings.TrimSpace(strings.TrimSuffix(t, unit))
	if t == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
