package random

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// Twister is a 32-bit Mersenne Twister. It is not safe for concurrent use.
type Twister struct {
	state [mtN]uint32
	index int
}

// NewMT19937 returns a Twister initialized with init_genrand(seed).
func NewMT19937(seed uint32) *Twister {
	t := &Twister{}
	t.Seed(seed)
	return t
}

// Seed resets the generator state.
func (t *Twister) Seed(seed uint32) {
	t.state[0] = seed
	for i := 1; i < mtN; i++ {
		prev := t.state[i-1]
		t.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	t.index = mtN
}

// Uint32 returns the next tempered 32-bit output.
func (t *Twister) Uint32() uint32 {
	if t.index >= mtN {
		t.twist()
	}
	y := t.state[t.index]
	t.index++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Float64 returns a value in [0, 1) with 53 bits of precision built from two
// consecutive outputs.
func (t *Twister) Float64() float64 {
	a := t.Uint32() >> 5
	b := t.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}

func (t *Twister) twist() {
	for i := 0; i < mtN; i++ {
		y := (t.state[i] & mtUpperMask) | (t.state[(i+1)%mtN] & mtLowerMask)
		next := t.state[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			next ^= mtMatrixA
		}
		t.state[i] = next
	}
	t.index = 0
}
