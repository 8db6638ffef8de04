package ship

import "testing"

func TestCargoLoadingAndPenalty(t *testing.T) {
	b := NewBoard(2)
	mustPlace(t, b, At(2, 4), NewComponent(1, KindStorage, conn(Empty, Empty, Empty, Universal), 2), 0)
	mustPlace(t, b, At(2, 2), NewComponent(2, KindSpecialStorage, conn(Empty, Universal, Empty, Empty), 1), 0)
	mustPlace(t, b, At(3, 3), NewComponent(3, KindBatteryBox, conn(Universal, Empty, Empty, Empty), 2), 0)

	if b.LoadCube(At(2, 4), Red) {
		t.Fatal("standard storage must reject red cubes")
	}
	if !b.LoadCube(At(2, 4), Yellow) || !b.LoadCube(At(2, 4), Blue) {
		t.Fatal("standard storage should take yellow and blue")
	}
	if b.LoadCube(At(2, 4), Green) {
		t.Fatal("full storage must reject cubes")
	}
	if !b.LoadCube(At(2, 2), Red) {
		t.Fatal("special storage should take red")
	}
	if got := b.CubeValue(); got != 8 {
		t.Fatalf("cube value = %d, want 8", got)
	}

	cubes, charges := b.RemoveMostValuableCubes(4)
	if cubes != 3 || charges != 1 {
		t.Fatalf("lost %d cubes and %d charges, want 3 and 1", cubes, charges)
	}
	if b.CubeValue() != 0 || b.BatteryCharge() != 1 {
		t.Fatalf("cube value %d, charge %d after penalty", b.CubeValue(), b.BatteryCharge())
	}
}

func TestRemoveMostValuableCubesOrder(t *testing.T) {
	b := NewBoard(2)
	mustPlace(t, b, At(2, 4), NewComponent(1, KindSpecialStorage, conn(Empty, Empty, Empty, Universal), 3), 0)
	b.LoadCube(At(2, 4), Green)
	b.LoadCube(At(2, 4), Red)
	b.LoadCube(At(2, 4), Blue)
	b.RemoveMostValuableCubes(1)
	cubes := b.Cubes()
	if len(cubes) != 2 || cubes[0] != Green || cubes[1] != Blue {
		t.Fatalf("cubes = %v, want [green blue]", cubes)
	}
}
