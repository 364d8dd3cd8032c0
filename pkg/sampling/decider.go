package sampling

import (
	"strings"

	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/random"
	"github.com/ajitpratap0/dataprep/pkg/rows"
)

// decider makes inclusion decisions for one run.
//
// In keyed mode the first row of each key value consumes one draw and the
// outcome is cached; later rows with that value reuse it without drawing.
// Without a key every row consumes one draw and nothing is cached.
type decider struct {
	gen      random.Generator
	rate     float64
	keyIndex int
	cache    map[string]bool
}

func newDecider(gen random.Generator, rate float64, keyIndex int) *decider {
	d := &decider{gen: gen, rate: rate, keyIndex: keyIndex}
	if keyIndex >= 0 {
		d.cache = make(map[string]bool)
	}
	return d
}

// keep decides row. rowNum is the 1-based data row number used in errors.
func (d *decider) keep(row rows.Row, rowNum int) (bool, error) {
	if d.keyIndex < 0 {
		return d.draw(), nil
	}
	if d.keyIndex >= len(row) {
		return false, errors.RowShape(rowNum, len(row), d.keyIndex)
	}

	key := row[d.keyIndex]
	if decision, seen := d.cache[key]; seen {
		return decision, nil
	}
	decision := d.draw()
	// csv records share one backing string; copy so the cache holds only the key
	d.cache[strings.Clone(key)] = decision
	return decision, nil
}

func (d *decider) draw() bool {
	return d.gen.Float64() < d.rate
}
