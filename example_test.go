package breadboard_test

import (
	"fmt"
	"log"

	"github.com/aretw0/breadboard"
	"github.com/aretw0/breadboard/pkg/adapters/memory"
	"github.com/aretw0/breadboard/pkg/domain"
)

// Example demonstrates running a circuit without the file system, using the
// in-memory store. This is useful for testing or embedded scenarios.
func Example() {
	gen := domain.NewSequentialGenerator()
	and2 := domain.NewCircuit("and2", "and2")

	a := domain.NewSwitch(gen, "A", domain.Point{X: 10, Y: 20})
	b := domain.NewSwitch(gen, "B", domain.Point{X: 10, Y: 60})
	gate := domain.NewAnd(gen, "and", domain.Point{X: 80, Y: 40})
	q := domain.NewLed(gen, "Q", domain.Point{X: 150, Y: 40})
	for _, comp := range []*domain.Component{a, b, gate, q} {
		and2.AddComponent(comp)
	}
	if _, err := and2.Connect(gen, a, a.OutputPort(0), gate, gate.InputPort(0)); err != nil {
		log.Fatal(err)
	}
	if _, err := and2.Connect(gen, b, b.OutputPort(0), gate, gate.InputPort(1)); err != nil {
		log.Fatal(err)
	}
	if _, err := and2.Connect(gen, gate, gate.OutputPort(0), q, q.InputPort(0)); err != nil {
		log.Fatal(err)
	}

	store, err := memory.NewFromCircuits(and2)
	if err != nil {
		log.Fatal(err)
	}

	wb, err := breadboard.Open("", breadboard.WithRepository(store))
	if err != nil {
		log.Fatal(err)
	}

	outputs, err := wb.Simulate("and2", map[string]bool{"A": true, "B": true})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Q:", outputs["Q"])

	exprs, err := wb.Expressions("and2")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Q =", exprs[0])

	// Output:
	// Q: true
	// Q = A·B
}
