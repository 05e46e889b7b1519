package mangrove

// Source yields uniformly distributed integers in [0,n). *math/rand.Rand
// satisfies it.
type Source interface {
	Intn(n int) int
}

// chance is a one-in-n roll that succeeds when the draw equals 1.
type chance int

func (c chance) roll(rng Source) bool {
	return rng.Intn(int(c)) == 1
}

const (
	growChance       chance = 3
	matureChance     chance = 3
	podMatureChance  chance = 4
	podChance        chance = 10
	vineChance       chance = 12
	raggedEdgeChance chance = 12
)
