package node

//go:generate go tool stringer -type=DispatcherEnum -output=kind_string.go

// DispatcherEnum selects the traversal strategy for a type.
type DispatcherEnum int

const (
	DispatcherOpaque DispatcherEnum = iota // chan, func, unsafe.Pointer: never traversed
	DispatcherPrimitive
	DispatcherInterface
	DispatcherPointer
	DispatcherSlice
	DispatcherArray
	DispatcherMap
	DispatcherStruct

	// DispatcherTotal is a constant that represents the total number of kinds defined
	DispatcherTotal = int(iota)
)
