package motion

// PropertySink receives the computed values of manual-loop animations. Apply
// is called once per tick for every running manual animation with the
// animation's element reference and its current values. The map is reused
// by the engine; copy it to keep it past the call.
type PropertySink interface {
	Apply(element any, values Target)
}

// PropertySinkFunc adapts a function to PropertySink.
type PropertySinkFunc func(element any, values Target)

// Apply calls f(element, values).
func (f PropertySinkFunc) Apply(element any, values Target) { f(element, values) }

// LayerHost is implemented by sinks that can give an element its own
// compositing layer. The engine calls Promote when an animation is granted a
// layer and Demote when the layer is taken away.
type LayerHost interface {
	Promote(element any)
	Demote(element any)
}
