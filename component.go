package aecs

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
)

// Kind is the index of a registered component kind. It doubles as the kind's
// bit position in a Mask.
type Kind uint8

// MaxComponentKinds is the largest number of kinds a Registry can hold.
const MaxComponentKinds = maskWords * bitsPerWord

// Component is a component payload. Kind ties the Go type to its registered
// index, so a payload can never be stored under another kind's column.
type Component interface {
	Kind() Kind
}

// KindSpec describes one registered kind: its name and a constructor for its
// default payload.
type KindSpec struct {
	Name string
	New  func() Component
}

// kindEntry is the registry's resolved view of a KindSpec.
type kindEntry struct {
	name string
	typ  reflect.Type
	new  func() Component
}

// Registry is the fixed, ordered table of component kinds. The position of a
// spec in the table is its Kind. A Registry is immutable once built and may
// be shared between worlds.
type Registry struct {
	kinds  []kindEntry
	byName map[string]Kind
}

// NewRegistry builds a registry from specs, assigning kinds in order. Each
// spec's default payload must report its own position from Kind().
//
// Parameters:
//   - specs: The component kinds, indexed from 0.
//
// Returns:
//   - The registry, or an error wrapping ErrInvalidSpec, ErrDuplicateKind or
//     ErrRegistryFull.
func NewRegistry(specs ...KindSpec) (*Registry, error) {
	if len(specs) > MaxComponentKinds {
		return nil, eris.Wrapf(ErrRegistryFull, "%d kinds requested, maximum is %d", len(specs), MaxComponentKinds)
	}
	r := &Registry{
		kinds:  make([]kindEntry, 0, len(specs)),
		byName: make(map[string]Kind, len(specs)),
	}
	for i, spec := range specs {
		k := Kind(i)
		if spec.Name == "" || spec.New == nil {
			return nil, eris.Wrapf(ErrInvalidSpec, "kind %d needs a name and a constructor", k)
		}
		if _, ok := r.byName[spec.Name]; ok {
			return nil, eris.Wrapf(ErrDuplicateKind, "kind %q", spec.Name)
		}
		def := spec.New()
		if def == nil {
			return nil, eris.Wrapf(ErrInvalidSpec, "kind %q constructor returned nil", spec.Name)
		}
		if def.Kind() != k {
			return nil, eris.Wrapf(ErrKindMismatch, "kind %q registered at %d reports %d", spec.Name, k, def.Kind())
		}
		r.kinds = append(r.kinds, kindEntry{name: spec.Name, typ: reflect.TypeOf(def), new: spec.New})
		r.byName[spec.Name] = k
	}
	return r, nil
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	return len(r.kinds)
}

// Valid reports whether k is a registered kind.
func (r *Registry) Valid(k Kind) bool {
	return int(k) < len(r.kinds)
}

// Name returns the registered name of k, or "" for an unknown kind.
func (r *Registry) Name(k Kind) string {
	if !r.Valid(k) {
		return ""
	}
	return r.kinds[k].name
}

// KindByName looks up a kind by its registered name.
func (r *Registry) KindByName(name string) (Kind, bool) {
	k, ok := r.byName[name]
	return k, ok
}

// Mask returns the mask holding every registered kind.
func (r *Registry) Mask() Mask {
	var m Mask
	for i := range r.kinds {
		m.Set(Kind(i))
	}
	return m
}

// DefaultInstance builds the payload stored for k. A nil data yields the
// kind's default; otherwise data is the whole new payload and any field it
// leaves unset stays at its zero value. Nothing of a previous instance
// survives. Use DecodeInstance to overlay a partial payload on the default.
func (r *Registry) DefaultInstance(k Kind, data Component) (Component, error) {
	if !r.Valid(k) {
		return nil, eris.Wrapf(ErrInvalidComponentKind, "kind %d (registry holds %d)", k, len(r.kinds))
	}
	entry := r.kinds[k]
	if data == nil {
		return entry.new(), nil
	}
	if data.Kind() != k || reflect.TypeOf(data) != entry.typ {
		return nil, eris.Wrapf(ErrKindMismatch, "%T for kind %q", data, entry.name)
	}
	return data, nil
}

// DecodeInstance overlays the JSON object raw onto a fresh default for k.
// Fields absent from raw keep their default value.
func (r *Registry) DecodeInstance(k Kind, raw []byte) (Component, error) {
	if !r.Valid(k) {
		return nil, eris.Wrapf(ErrInvalidComponentKind, "kind %d (registry holds %d)", k, len(r.kinds))
	}
	entry := r.kinds[k]
	def := entry.new()
	if entry.typ.Kind() == reflect.Pointer {
		if err := json.Unmarshal(raw, def); err != nil {
			return nil, eris.Wrapf(err, "decode %q payload", entry.name)
		}
		return def, nil
	}
	ptr := reflect.New(entry.typ)
	ptr.Elem().Set(reflect.ValueOf(def))
	if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
		return nil, eris.Wrapf(err, "decode %q payload", entry.name)
	}
	return ptr.Elem().Interface().(Component), nil
}

// Schema returns the JSON schema describing k's payload shape.
func (r *Registry) Schema(k Kind) ([]byte, error) {
	if !r.Valid(k) {
		return nil, eris.Wrapf(ErrInvalidComponentKind, "kind %d (registry holds %d)", k, len(r.kinds))
	}
	schema := jsonschema.Reflect(r.kinds[k].new())
	buf, err := json.Marshal(schema)
	if err != nil {
		return nil, eris.Wrapf(err, "marshal %q schema", r.kinds[k].name)
	}
	return buf, nil
}
