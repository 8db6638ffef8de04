/*
Package ship
File: power.go
Description:
    Firepower and engine power aggregates, and battery-gated activation of
    double cannons, double engines and shields.
*/

package ship

// AlienBonus is added by a purple alien to firepower and by a brown alien to
// engine power, as long as the ship already has some.
const AlienBonus = 2

// BatteryCharge is the total number of charges left on the ship.
func (b *Board) BatteryCharge() int {
	total := 0
	for _, c := range b.Find(func(comp *Component) bool { return comp.Kind == KindBatteryBox }) {
		total += b.get(c).Charge
	}
	return total
}

// useBattery spends one charge from the box at c.
func (b *Board) useBattery(c Coordinates) bool {
	comp := b.get(c)
	if comp == nil || comp.Kind != KindBatteryBox || comp.Charge == 0 {
		return false
	}
	comp.Charge--
	return true
}

// spendOne consumes the first usable entry of batteries and returns the rest.
func (b *Board) spendOne(batteries []Coordinates) (bool, []Coordinates) {
	for i, c := range batteries {
		if b.useBattery(c) {
			return true, batteries[i+1:]
		}
	}
	return false, nil
}

// ActivateDoubles switches on the requested double components of the given
// kind, one battery charge each. Doubles without a charge stay off.
func (b *Board) ActivateDoubles(kind Kind, doubles, batteries []Coordinates) []Coordinates {
	var active []Coordinates
	seen := make(map[Coordinates]bool)
	for _, c := range doubles {
		comp := b.get(c)
		if comp == nil || comp.Kind != kind || seen[c] {
			continue
		}
		ok, rest := b.spendOne(batteries)
		if !ok {
			break
		}
		batteries = rest
		seen[c] = true
		active = append(active, c)
	}
	return active
}

// FirePower sums the ship's cannons. Singles always count, doubles only when
// listed in active. Cannons not firing forward count half.
func (b *Board) FirePower(active []Coordinates) float64 {
	on := toSet(active)
	total := 0.0
	for _, c := range b.Find((*Component).IsCannon) {
		comp := b.get(c)
		value := 1.0
		if comp.IsDouble() {
			if !on[c] {
				continue
			}
			value = 2
		}
		if comp.Facing() != North {
			value /= 2
		}
		total += value
	}
	if total > 0 && b.hasAlien(Purple) {
		total += AlienBonus
	}
	return total
}

// EnginePower sums the ship's engines; doubles only count when listed in active.
func (b *Board) EnginePower(active []Coordinates) int {
	on := toSet(active)
	total := 0
	for _, c := range b.Find((*Component).IsEngine) {
		comp := b.get(c)
		if comp.Facing() != South {
			continue
		}
		if comp.IsDouble() {
			if on[c] {
				total += 2
			}
			continue
		}
		total++
	}
	if total > 0 && b.hasAlien(Brown) {
		total += AlienBonus
	}
	return total
}

func toSet(cs []Coordinates) map[Coordinates]bool {
	out := make(map[Coordinates]bool, len(cs))
	for _, c := range cs {
		out[c] = true
	}
	return out
}
