// Package compiler turns one parameter descriptor into the full bundle of
// editor-side artifacts: a markup fragment, a default-value entry, the
// display codec pair for continuous controls, and the updated registry
// membership lists.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/matthewbaird/paramgen/internal/codec"
)

// Kind classifies a parameter as a continuous (slider) or enumerated
// (dropdown) control. The kind is fixed once a descriptor is built and
// determines which descriptor fields are required.
type Kind int

const (
	KindContinuous Kind = iota
	KindEnumerated
)

// String returns the descriptor-facing kind name.
func (k Kind) String() string {
	switch k {
	case KindContinuous:
		return "continuous"
	case KindEnumerated:
		return "enumerated"
	default:
		return "unknown"
	}
}

// Range bounds a continuous parameter's raw value.
type Range struct {
	Min int
	Max int
}

// Option is one entry of an enumerated parameter, in display order.
type Option struct {
	Value string
	Label string
}

// CodecSpec selects and parametrizes a display codec for a continuous
// parameter. An empty Name selects the default codec.
type CodecSpec struct {
	Name    string
	Options codec.Options
}

// Descriptor is the declarative input describing one control.
//
// Name is the key in every downstream registry: unique within a snapshot and
// stable across regenerations. Default is the raw stored value — an integer
// for continuous parameters, an opaque token for enumerated ones; a nil
// Default means 0 / "0". Range and Codec apply to continuous parameters
// only, Options to enumerated ones only.
type Descriptor struct {
	Name    string
	Kind    Kind
	Label   string
	Default any
	Range   *Range
	Options []Option
	Codec   CodecSpec
}

// InvalidDescriptorError reports a malformed or contradictory descriptor.
// Nothing is generated and the snapshot is untouched when it is returned.
type InvalidDescriptorError struct {
	Name   string // parameter name, may be empty when the name itself is bad
	Field  string // offending descriptor field
	Reason string
}

func (e *InvalidDescriptorError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid descriptor: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid descriptor %q: %s: %s", e.Name, e.Field, e.Reason)
}

// validate checks the descriptor against its own kind and the snapshot.
// It is the only step allowed to reject a compilation.
func (d Descriptor) validate(snap *Snapshot) error {
	if d.Name == "" {
		return &InvalidDescriptorError{Field: "name", Reason: "must not be empty"}
	}
	if k, ok := snap.Lookup(d.Name); ok && k != d.Kind {
		return &InvalidDescriptorError{
			Name:   d.Name,
			Field:  "kind",
			Reason: fmt.Sprintf("already registered as %s", k),
		}
	}

	switch d.Kind {
	case KindContinuous:
		if len(d.Options) > 0 {
			return &InvalidDescriptorError{Name: d.Name, Field: "options", Reason: "not allowed for continuous parameters"}
		}
		if d.Range == nil {
			return &InvalidDescriptorError{Name: d.Name, Field: "range", Reason: "required for continuous parameters"}
		}
		if d.Range.Min >= d.Range.Max {
			return &InvalidDescriptorError{
				Name:   d.Name,
				Field:  "range",
				Reason: fmt.Sprintf("min %d must be less than max %d", d.Range.Min, d.Range.Max),
			}
		}
		dv, ok := d.defaultInt()
		if !ok {
			return &InvalidDescriptorError{Name: d.Name, Field: "default", Reason: "must be an integer for continuous parameters"}
		}
		if dv < d.Range.Min || dv > d.Range.Max {
			return &InvalidDescriptorError{
				Name:   d.Name,
				Field:  "default",
				Reason: fmt.Sprintf("%d outside range [%d, %d]", dv, d.Range.Min, d.Range.Max),
			}
		}
	case KindEnumerated:
		if d.Range != nil {
			return &InvalidDescriptorError{Name: d.Name, Field: "range", Reason: "not allowed for enumerated parameters"}
		}
		if d.Codec.Name != "" {
			return &InvalidDescriptorError{Name: d.Name, Field: "codec", Reason: "not allowed for enumerated parameters"}
		}
		if len(d.Options) == 0 {
			return &InvalidDescriptorError{Name: d.Name, Field: "options", Reason: "required for enumerated parameters"}
		}
		seen := make(map[string]bool, len(d.Options))
		for _, opt := range d.Options {
			if seen[opt.Value] {
				return &InvalidDescriptorError{
					Name:   d.Name,
					Field:  "options",
					Reason: fmt.Sprintf("duplicate value %q", opt.Value),
				}
			}
			seen[opt.Value] = true
		}
	default:
		return &InvalidDescriptorError{Name: d.Name, Field: "kind", Reason: fmt.Sprintf("unknown kind %d", d.Kind)}
	}
	return nil
}

// defaultInt coerces Default to an integer. Loaders hand back int, int64 or
// float64 depending on the source format; nil means 0.
func (d Descriptor) defaultInt() (int, bool) {
	switch v := d.Default.(type) {
	case nil:
		return 0, true
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// defaultToken coerces Default to the enumerated token form. The token is
// opaque to the compiler; nil means "0".
func (d Descriptor) defaultToken() string {
	switch v := d.Default.(type) {
	case nil:
		return "0"
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
