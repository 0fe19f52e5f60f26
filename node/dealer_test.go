package node_test

import (
	"deepgraph/node"
	"fmt"
)

func ExampleDealer() {
	var d node.Dealer[string]

	d.Needs("head")
	item, ok := d.NextNeeds()
	fmt.Println("head:", item, ok)

	_, ok = d.NextNeeds()
	fmt.Println("empty:", ok)

	d.Needs("first")
	d.Needs("second")
	item, _ = d.NextNeeds()
	fmt.Println("last in:", item)

	item, _ = d.NextNeeds()
	fmt.Println("then:", item)

	_, ok = d.NextNeeds()
	fmt.Println("no more items:", ok, d.Dealt())

	// Output:
	// head: head true
	// empty: false
	// last in: second
	// then: first
	// no more items: false 3
}
