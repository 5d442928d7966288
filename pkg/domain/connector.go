package domain

// Wire colors for presentation, derived from the carried value.
const (
	ColorHigh = "green"
	ColorLow  = "black"
)

// Connector is a directed wire from one output port to one input port. It
// does not own its ports; it keeps non-owning handles plus the ids of the
// components on either end for lookup and rendering. Both endpoints must be
// set at construction; Circuit.Connect enforces that, and Propagate does not
// re-check it.
type Connector struct {
	ID string

	SourceComponent string
	SinkComponent   string

	SourcePort *Port
	SinkPort   *Port

	// Value caches the source port's value at last propagation, for
	// rendering.
	Value bool
}

// Propagate copies the source port's current value into the sink port,
// caching it on the connector along the way.
func (c *Connector) Propagate() {
	v := c.SourcePort.Value
	c.Value = v
	c.SinkPort.Value = v
}

// Color returns the wire's presentation color for its cached value.
func (c *Connector) Color() string {
	if c.Value {
		return ColorHigh
	}
	return ColorLow
}
