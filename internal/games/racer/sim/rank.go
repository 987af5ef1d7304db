package sim

import "sort"

// competitor is one entry passed to rank, in field order.
type competitor struct {
	id       string
	distance float64
	player   bool
}

// rank sorts competitors by distance, furthest first, and assigns positions
// 1..N. Equal distances keep field order: the player, then opponents in
// roster order.
func rank(field []competitor) []Standing {
	order := make([]int, len(field))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		da, db := field[order[a]].distance, field[order[b]].distance
		if da != db {
			return da > db
		}
		return order[a] < order[b]
	})

	out := make([]Standing, len(field))
	for pos, idx := range order {
		c := field[idx]
		out[pos] = Standing{ID: c.id, Position: pos + 1, Distance: c.distance, Player: c.player}
	}
	return out
}
