/*
Package ship
File: cargo.go
Description:
    Cargo cubes held in storages: loading rewards, losing the most valuable
    cubes as a penalty, and the sale value at the end of the flight.
*/

package ship

import "sort"

// LoadCube stores cube in the storage at c. It reports false when the cell is
// not a storage, the storage is full or it cannot hold the color.
func (b *Board) LoadCube(c Coordinates, cube CubeColor) bool {
	comp := b.get(c)
	if comp == nil || !comp.Accepts(cube) {
		return false
	}
	comp.Cubes = append(comp.Cubes, cube)
	return true
}

// Cubes lists every cube on the ship, most valuable first.
func (b *Board) Cubes() []CubeColor {
	var out []CubeColor
	for _, c := range b.Find((*Component).IsStorage) {
		out = append(out, b.get(c).Cubes...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// CubeValue is the raw sale value of the cargo.
func (b *Board) CubeValue() int {
	total := 0
	for _, cube := range b.Cubes() {
		total += cube.Value()
	}
	return total
}

// RemoveMostValuableCubes takes away n cubes, most valuable first. When the
// cargo runs out the remainder is paid in battery charges. It returns the
// number of cubes and charges lost.
func (b *Board) RemoveMostValuableCubes(n int) (cubes, charges int) {
	storages := b.Find((*Component).IsStorage)
	for cubes < n {
		best, bestIdx := Invalid, -1
		var bestColor CubeColor
		for _, c := range storages {
			for i, cube := range b.get(c).Cubes {
				if cube > bestColor {
					best, bestIdx, bestColor = c, i, cube
				}
			}
		}
		if bestIdx < 0 {
			break
		}
		comp := b.get(best)
		comp.Cubes = append(comp.Cubes[:bestIdx], comp.Cubes[bestIdx+1:]...)
		cubes++
	}
	for _, c := range b.Find(func(comp *Component) bool { return comp.Kind == KindBatteryBox }) {
		for cubes+charges < n && b.useBattery(c) {
			charges++
		}
	}
	return cubes, charges
}
