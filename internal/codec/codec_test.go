package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustResolve binds a codec for tests, failing on unexpected errors.
func mustResolve(t *testing.T, r *Registry, name string, opts Options, param string) Binding {
	t.Helper()
	b, err := r.Resolve(name, opts, param)
	require.NoError(t, err)
	return b
}

func TestRoundTripExact(t *testing.T) {
	r := NewRegistry()

	// Raw values chosen on each codec's rounding granularity: one display
	// decimal of raw/10 keeps every integer for percentage, db and
	// semitones only keep multiples of 100 and 10 respectively.
	tests := []struct {
		codec string
		opts  Options
		raws  []int
	}{
		{codec: "percentage", raws: []int{0, 1, 5, 123, 999, 1000}},
		{codec: "db", raws: []int{-12000, -4500, -100, 0, 100, 6000}},
		{codec: "semitones", raws: []int{-12000, -500, -10, 0, 10, 120, 12000}},
		{codec: "ms", raws: []int{0, 1, 17, 500, 10000}},
		{codec: "ms", opts: Options{Divisor: 10}, raws: []int{0, 3, 123, 4567}},
		{codec: "ms", opts: Options{Divisor: 2}, raws: []int{0, 1, 3, 5, 999}},
	}

	for _, tt := range tests {
		b := mustResolve(t, r, tt.codec, tt.opts, "p")
		for _, raw := range tt.raws {
			display := b.Format(raw)
			back, ok := b.Parse(display)
			require.True(t, ok, "%s: %q did not parse", tt.codec, display)
			assert.Equal(t, raw, back, "%s round-trip via %q", tt.codec, display)
		}
	}
}

func TestRoundTripHzWithinOneUnit(t *testing.T) {
	r := NewRegistry()

	for _, opts := range []Options{{}, {MinHz: 20, MaxHz: 20000}} {
		b := mustResolve(t, r, "hz", opts, "rate")
		for raw := 0; raw <= 1000; raw += 50 {
			display := b.Format(raw)
			back, ok := b.Parse(display)
			require.True(t, ok, "%q did not parse", display)
			assert.InDelta(t, raw, back, 1, "hz round-trip via %q", display)
		}
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		codec string
		opts  Options
		text  string
	}{
		{codec: "percentage", text: "abc"},
		{codec: "percentage", text: ""},
		{codec: "db", text: "loud dB"},
		{codec: "hz", text: "nonsense"},
		{codec: "hz", text: "25.00 Hz"},                             // above default max 20
		{codec: "hz", text: "0.05 Hz"},                              // below default min 0.1
		{codec: "hz", opts: Options{MinHz: 20, MaxHz: 20000}, text: "19.99 Hz"},
		{codec: "ms", text: "NaN"},
	}

	for _, tt := range tests {
		b := mustResolve(t, r, tt.codec, tt.opts, "p")
		_, ok := b.Parse(tt.text)
		assert.False(t, ok, "%s should reject %q", tt.codec, tt.text)
	}
}

func TestParseAcceptsUnitlessInput(t *testing.T) {
	r := NewRegistry()

	b := mustResolve(t, r, "percentage", Options{}, "p")
	raw, ok := b.Parse("12.3")
	require.True(t, ok)
	assert.Equal(t, 123, raw)

	b = mustResolve(t, r, "db", Options{}, "p")
	raw, ok = b.Parse("+1.5")
	require.True(t, ok)
	assert.Equal(t, 1500, raw)
}

func TestRegisterDuplicateFails(t *testing.T) {
	r := NewRegistry()

	err := r.Register(&Definition{Name: "percentage"})
	var dup *DuplicateCodecError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "percentage", dup.Name)

	// A fresh name is accepted and listed after the built-ins.
	require.NoError(t, r.Register(&Definition{Name: "cents"}))
	names := r.Names()
	assert.Equal(t, "cents", names[len(names)-1])
}

func TestResolveUnknownFails(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("bogus", Options{}, "p")
	var unknown *UnknownCodecError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Name)
}

func TestResolveEmptyNameUsesDefault(t *testing.T) {
	r := NewRegistry()

	b := mustResolve(t, r, "", Options{}, "p")
	assert.Equal(t, DefaultName, b.Codec())
}

func TestForwardCaseFragments(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		codec   string
		opts    Options
		param   string
		forward string
		inverse string
	}{
		{
			codec:   "percentage",
			param:   "distortion",
			forward: "case 'distortion':\n    text = (val / 10).toFixed(1) + '%';\n    break;",
			inverse: "return Math.round(val * 10);",
		},
		{
			codec:   "db",
			param:   "gaindb",
			forward: "case 'gaindb':\n    text = (val >= 0 ? '+' : '') + (val / 1000).toFixed(1) + ' dB';\n    break;",
			inverse: "return Math.round(val * 1000);",
		},
		{
			codec:   "semitones",
			param:   "pitch",
			forward: "case 'pitch':\n    text = (val >= 0 ? '+' : '') + (val / 1000).toFixed(2) + ' st';\n    break;",
			inverse: "return Math.round(val * 1000);",
		},
		{
			codec:   "ms",
			opts:    Options{Divisor: 2.5},
			param:   "envattack",
			forward: "case 'envattack':\n    text = (val / 2.5).toFixed(1) + ' ms';\n    break;",
			inverse: "return Math.round(val * 2.5);",
		},
		{
			codec: "hz",
			opts:  Options{MinHz: 20, MaxHz: 20000},
			param: "filtercutoff",
			forward: "case 'filtercutoff':\n" +
				"    const hz_filtercutoff = 20 + ((val / 1000) * (20000 - 20));\n" +
				"    text = hz_filtercutoff.toFixed(2) + ' Hz';\n" +
				"    break;",
			inverse: "const hz = parseFloat(text);\n" +
				"if (isNaN(hz) || hz < 20 || hz > 20000) return null;\n" +
				"return Math.round(((hz - 20) / (20000 - 20)) * 1000);",
		},
	}

	for _, tt := range tests {
		b := mustResolve(t, r, tt.codec, tt.opts, tt.param)
		assert.Equal(t, tt.forward, b.ForwardCase(), "%s forward", tt.codec)
		assert.Equal(t, tt.inverse, b.InverseExpr(), "%s inverse", tt.codec)
	}
}

func TestHzDefaultOptions(t *testing.T) {
	r := NewRegistry()

	b := mustResolve(t, r, "hz", Options{}, "lforate")
	assert.Contains(t, b.InverseExpr(), "hz < 0.1 || hz > 20")

	// Partial options keep the remaining defaults.
	b = mustResolve(t, r, "hz", Options{MinHz: 0.5}, "lforate")
	assert.Contains(t, b.InverseExpr(), "hz < 0.5 || hz > 20")
}

func TestCustomCodecVerbatim(t *testing.T) {
	r := NewRegistry()

	opts := Options{
		ForwardBody: "text = lookupTable[val];",
		InverseBody: "return lookupTable.indexOf(text);",
	}
	b := mustResolve(t, r, "custom", opts, "wavetable")
	assert.Equal(t, opts.ForwardBody, b.ForwardCase())
	assert.Equal(t, opts.InverseBody, b.InverseExpr())

	// Without bodies the documented placeholders come back.
	b = mustResolve(t, r, "custom", Options{}, "wavetable")
	assert.Equal(t, "// Add custom formatting here", b.ForwardCase())
	assert.Equal(t, "return Math.round(val);", b.InverseExpr())
}

func TestEscapeJS(t *testing.T) {
	assert.Equal(t, `it\'s`, EscapeJS("it's"))
	assert.Equal(t, `a\\b`, EscapeJS(`a\b`))
	assert.Equal(t, "plain", EscapeJS("plain"))
}

func TestForwardCaseEscapesParamName(t *testing.T) {
	r := NewRegistry()

	b := mustResolve(t, r, "percentage", Options{}, "odd'name")
	assert.Contains(t, b.ForwardCase(), `case 'odd\'name':`)
}
