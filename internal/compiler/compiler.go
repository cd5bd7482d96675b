package compiler

import (
	"errors"
	"fmt"

	"github.com/matthewbaird/paramgen/internal/codec"
)

// Bundle is the complete set of generated text fragments for one parameter.
// The fields are opaque text to be placed into the host editor by hand or by
// a downstream insertion tool; nothing here is executed.
type Bundle struct {
	Name         string     `json:"name"`
	Markup       string     `json:"markup"`
	DefaultEntry string     `json:"default_entry"`
	ForwardCase  string     `json:"forward_case,omitempty"`
	InverseExpr  string     `json:"inverse_expr,omitempty"`
	Membership   Membership `json:"membership"`
}

// Membership carries the four host membership views: the listener-wiring and
// modal-population registries each keep one list per control kind. The two
// views of a kind are always byte-identical; the duplication belongs to the
// host, which maintains the registries independently.
type Membership struct {
	ListenerSliders   []string `json:"setup_parameter_listeners_sliders"`
	ListenerDropdowns []string `json:"setup_parameter_listeners_dropdowns"`
	ModalSliders      []string `json:"load_params_to_modal_sliders"`
	ModalDropdowns    []string `json:"load_params_to_modal_dropdowns"`
}

// Compiler generates artifact bundles from descriptors. Codec lookups go
// through its registry; the default registry carries the built-in catalogue.
type Compiler struct {
	codecs *codec.Registry
}

// New returns a compiler backed by the built-in codec catalogue.
func New() *Compiler {
	return &Compiler{codecs: codec.NewRegistry()}
}

// NewWithRegistry returns a compiler backed by a caller-supplied registry.
func NewWithRegistry(r *codec.Registry) *Compiler {
	return &Compiler{codecs: r}
}

// Compile produces the artifact bundle for one descriptor and records its
// name in the snapshot.
//
// The steps run in a fixed order: validate, render markup, render the
// default entry, render the codec pair (continuous only), then append to the
// snapshot and take the membership views. Everything before the append is
// pure, so a failed compilation never mutates the snapshot. Recompiling an
// already-known descriptor of the same kind is idempotent: the bundle is
// identical and the membership lists do not grow.
func (c *Compiler) Compile(snap *Snapshot, d Descriptor) (Bundle, error) {
	if err := d.validate(snap); err != nil {
		return Bundle{}, err
	}

	markup, err := renderMarkup(d)
	if err != nil {
		return Bundle{}, err
	}

	b := Bundle{
		Name:         d.Name,
		Markup:       markup,
		DefaultEntry: renderDefaultEntry(d),
	}

	if d.Kind == KindContinuous {
		binding, err := c.resolveCodec(d)
		if err != nil {
			return Bundle{}, err
		}
		b.ForwardCase = binding.ForwardCase()
		b.InverseExpr = binding.InverseExpr()
	}

	snap.add(d.Name, d.Kind)
	b.Membership = snap.membership()
	return b, nil
}

// resolveCodec binds the descriptor's codec. An unknown codec name is
// recovered locally by substituting the default codec with the same options;
// generation proceeds and the caller is not interrupted.
func (c *Compiler) resolveCodec(d Descriptor) (codec.Binding, error) {
	binding, err := c.codecs.Resolve(d.Codec.Name, d.Codec.Options, d.Name)
	if err != nil {
		var unknown *codec.UnknownCodecError
		if !errors.As(err, &unknown) {
			return codec.Binding{}, err
		}
		binding, err = c.codecs.Resolve(codec.DefaultName, d.Codec.Options, d.Name)
		if err != nil {
			return codec.Binding{}, fmt.Errorf("resolve default codec: %w", err)
		}
	}
	return binding, nil
}

// renderDefaultEntry pairs the name with its default value for the host's
// empty-record template: a numeric literal for continuous parameters, a
// quoted token for enumerated ones.
func renderDefaultEntry(d Descriptor) string {
	if d.Kind == KindEnumerated {
		return fmt.Sprintf("%s: '%s'", d.Name, codec.EscapeJS(d.defaultToken()))
	}
	dv, _ := d.defaultInt()
	return fmt.Sprintf("%s: %d", d.Name, dv)
}
