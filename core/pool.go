package core

// PoolCapacity is the fixed number of body slots
const PoolCapacity = 10

// PlayerIndex is the permanent slot of the player platform
const PlayerIndex = 0

// Pool is the fixed-capacity body array
// Value semantics: assignment copies every slot
type Pool [PoolCapacity]Body

// Player returns the player slot
func (p *Pool) Player() *Body {
	return &p[PlayerIndex]
}

// FirstEmpty returns the index of the first free slot, or -1 when full
func (p *Pool) FirstEmpty() int {
	for i := range p {
		if p[i].Kind == BodyEmpty {
			return i
		}
	}
	return -1
}

// Spawn places b in the first free slot and returns its index, or -1 when full
func (p *Pool) Spawn(b Body) int {
	i := p.FirstEmpty()
	if i < 0 {
		return -1
	}
	p[i] = b
	return i
}

// Count returns the number of bodies of kind k
func (p *Pool) Count(k BodyKind) int {
	n := 0
	for i := range p {
		if p[i].Kind == k {
			n++
		}
	}
	return n
}

// Reset empties every slot and places a fresh player at x
func (p *Pool) Reset(playerMass, playerX float64) {
	*p = Pool{}
	p[PlayerIndex] = NewPlayer(playerMass, playerX)
}

// CheckInvariants returns a description of the first violated pool invariant, or "" if none
func (p *Pool) CheckInvariants() string {
	if p[PlayerIndex].Kind != BodyPlayer {
		return "slot 0 is not the player"
	}
	for i := range p {
		b := &p[i]
		if i != PlayerIndex && b.Kind == BodyPlayer {
			return "second player outside slot 0"
		}
		if b.Kind != BodyEmpty && !(b.Mass > 0) {
			return b.Kind.String() + " with non-positive mass"
		}
	}
	return ""
}
