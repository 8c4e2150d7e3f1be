package archgrid

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/TheBitDrifter/bark"
)

// ComponentID identifies a registered component or tag type. Components and
// tags share this id space: both ultimately occupy a bit position in an
// archetype's mask.Mask signature, so a component and a tag can never be
// assigned the same id.
type ComponentID uint32

// TagID is a ComponentID registered through RegisterTag. The alias exists
// so call sites read as tag-shaped even though storage is unified.
type TagID = ComponentID

// maxSignatureBits bounds how many distinct components+tags a process may
// register. It is sized to the bit width backing mask.Mask; registering
// past this limit fails loudly rather than silently aliasing bits.
const maxSignatureBits = 64

// ComponentType describes a registered component: its identity, and the
// size/alignment of the Go type backing it, used to lay out archetype
// pages. A zero-sized T (an empty struct, typically) produces a zero-sized
// column that occupies no page bytes.
type ComponentType struct {
	id    ComponentID
	size  uintptr
	align uintptr
	name  string
}

// ID returns the component's assigned bit position.
func (c ComponentType) ID() ComponentID { return c.id }

// String renders the short, package-stripped type name.
func (c ComponentType) String() string { return shortTypeName(c.name) }

func shortTypeName(full string) string {
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == '.' {
			return full[i+1:]
		}
	}
	return full
}

var componentRegistry = FactoryNewCache[ComponentType](maxSignatureBits)

// RegisterComponent registers T as a component if it hasn't been seen
// before and returns its ComponentType. Calling it again for the same T is
// cheap and returns the same descriptor; component constructors are
// typically written once per type and reused.
func RegisterComponent[T any]() ComponentType {
	var zero T
	name := reflect.TypeOf(zero).String()
	if idx, ok := componentRegistry.GetIndex(name); ok {
		return *componentRegistry.GetItem(idx)
	}
	idx, err := componentRegistry.Register(name, ComponentType{
		size:  unsafe.Sizeof(zero),
		align: unsafe.Alignof(zero),
		name:  name,
	})
	if err != nil {
		panic(bark.AddTrace(fmt.Errorf("archgrid: registering component %s: %w", name, err)))
	}
	item := componentRegistry.GetItem(idx)
	item.id = ComponentID(idx)
	return *item
}

// RegisterTag registers T as a tag. Tags are expected to be zero-sized
// (an empty struct), but any type works: only its identity is used, its
// bytes are never stored.
func RegisterTag[T any]() TagID {
	return RegisterComponent[T]().id
}

func componentIDOf[T any]() ComponentID {
	return RegisterComponent[T]().id
}

// componentValue pairs a registered ComponentType with a boxed pointer to
// a value of that type, for writing into a page column. Constructed with
// WithComponent.
type componentValue struct {
	ct  ComponentType
	ptr unsafe.Pointer
}

// WithComponent captures v as the initial value for a component, for use
// with Store.AddComponents/CreateEntityWithArchetype. v is boxed so its bytes can be
// copied into a page column without per-arity generated setters.
func WithComponent[T any](v T) componentValue {
	ct := RegisterComponent[T]()
	return componentValue{ct: ct, ptr: unsafe.Pointer(&v)}
}
