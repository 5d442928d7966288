package domain

// Point is a 2D canvas position. It is presentation data only; the simulation
// never reads it.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Direction tells whether a port receives or emits a signal.
type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// Port is a boolean-valued connection point on a component. Its id is unique
// within the owning component (in0, in1, out0, ...), not globally.
// A port never rejects a value; it is plain storage.
type Port struct {
	ID        string
	Direction Direction
	Position  Point
	Value     bool
}

// NewPort creates a port with the signal low.
func NewPort(id string, dir Direction) *Port {
	return &Port{ID: id, Direction: dir}
}
