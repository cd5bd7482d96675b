package codec

import "fmt"

// DuplicateCodecError reports a Register call with an already-taken name.
// It is a registry-construction-time failure, fatal to registry setup but
// never to a single compilation.
type DuplicateCodecError struct {
	Name string
}

func (e *DuplicateCodecError) Error() string {
	return fmt.Sprintf("codec %q is already registered", e.Name)
}

// UnknownCodecError reports a Resolve call for a name that is not in the
// catalogue. Callers recover by substituting DefaultName.
type UnknownCodecError struct {
	Name string
}

func (e *UnknownCodecError) Error() string {
	return fmt.Sprintf("unknown codec %q", e.Name)
}
