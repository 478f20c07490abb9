package engine

import "math/rand"

// Bag is the 7-bag randomizer. Whenever the queue runs dry a shuffled copy
// of all seven kinds is appended, so every bag-aligned window of seven draws
// holds each kind exactly once.
type Bag struct {
	rng   *rand.Rand
	queue []Kind
}

// NewBag creates an empty bag drawing from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

// Next pops the next kind, refilling first if the queue is empty.
func (b *Bag) Next() Kind {
	if len(b.queue) == 0 {
		b.refill()
	}
	k := b.queue[0]
	b.queue = b.queue[1:]
	return k
}

// Peek returns the upcoming n kinds without consuming them.
func (b *Bag) Peek(n int) []Kind {
	for len(b.queue) < n {
		b.refill()
	}
	return append([]Kind(nil), b.queue[:n]...)
}

// Len returns the number of queued kinds.
func (b *Bag) Len() int {
	return len(b.queue)
}

// refill appends one Fisher-Yates shuffled bag.
func (b *Bag) refill() {
	bag := AllKinds
	for i := len(bag) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}
	b.queue = append(b.queue, bag[:]...)
}
