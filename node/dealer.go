package node

// Dealer hands out pending work items. Items are dealt last-in first-out,
// which keeps the backlog short while walking chains of references.
type Dealer[T any] struct {
	needs []T
	dealt int
}

// NextNeeds pops the most recently queued item.
func (d *Dealer[T]) NextNeeds() (item T, ok bool) {
	if len(d.needs) == 0 {
		return
	}

	last := len(d.needs) - 1
	item = d.needs[last]

	var zero T
	d.needs[last] = zero
	d.needs = d.needs[:last]
	d.dealt++

	return item, true
}

// Needs queues an item.
func (d *Dealer[T]) Needs(item T) {
	d.needs = append(d.needs, item)
}

// Pending returns the number of queued items.
func (d *Dealer[T]) Pending() int {
	return len(d.needs)
}

// Dealt returns the number of items handed out so far.
func (d *Dealer[T]) Dealt() int {
	return d.dealt
}
