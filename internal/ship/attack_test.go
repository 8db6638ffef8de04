package ship

import "testing"

// newShieldedShip: exposed structural on the nose, a shield covering north
// and east, and a battery box.
func newShieldedShip(t *testing.T, nose Connector) *Board {
	t.Helper()
	b := NewBoard(2)
	mustPlace(t, b, At(1, 3), NewComponent(1, KindStructural, conn(nose, Empty, Universal, Empty), 0), 0)
	mustPlace(t, b, At(2, 4), NewComponent(2, KindShield, conn(Empty, Empty, Empty, Universal), 0), 0)
	mustPlace(t, b, At(2, 2), NewComponent(3, KindBatteryBox, conn(Empty, Universal, Empty, Empty), 2), 0)
	return b
}

func TestOrderedComponentsInDirection(t *testing.T) {
	b := newShieldedShip(t, Single)
	got := b.OrderedComponentsInDirection(West, 7)
	want := []Coordinates{At(2, 2), At(2, 3), At(2, 4)}
	if len(got) != len(want) {
		t.Fatalf("ordered = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordered = %v, want %v", got, want)
		}
	}
	first, ok := b.FirstComponentInDirection(East, 7)
	if !ok || first != At(2, 4) {
		t.Fatalf("first from east = %v, want (7,8)", first)
	}
}

func TestHandleDangerousObject(t *testing.T) {
	shield := Defense{Shield: At(2, 4), Cannon: Invalid, Batteries: []Coordinates{At(2, 2)}}
	tests := []struct {
		name      string
		nose      Connector
		obj       DangerousObject
		def       Defense
		defended  bool
		destroyed bool
		charge    int
	}{
		{"small meteorite on exposed side", Single, DangerousObject{SmallMeteorite, North, 7}, NoDefense, false, true, 2},
		{"small meteorite bounces off smooth side", Empty, DangerousObject{SmallMeteorite, North, 7}, shield, true, false, 2},
		{"small meteorite stopped by shield", Single, DangerousObject{SmallMeteorite, North, 7}, shield, true, false, 1},
		{"shield without battery", Single, DangerousObject{SmallMeteorite, North, 7}, Defense{Shield: At(2, 4), Cannon: Invalid}, false, true, 2},
		{"light shot from the side", Single, DangerousObject{LightShot, East, 7}, shield, true, false, 1},
		{"light shot on uncovered side", Single, DangerousObject{LightShot, West, 7}, shield, false, true, 0},
		{"heavy shot ignores shields", Single, DangerousObject{HeavyShot, North, 7}, shield, false, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newShieldedShip(t, tt.nose)
			out := b.HandleDangerousObject(tt.obj, tt.def)
			if out.Hit.IsInvalid() {
				t.Fatal("object should hit the ship")
			}
			if out.Defended != tt.defended || out.Destroyed != tt.destroyed {
				t.Fatalf("outcome = %+v, want defended=%v destroyed=%v", out, tt.defended, tt.destroyed)
			}
			if b.IsOccupied(out.Hit) == tt.destroyed {
				t.Fatalf("hit component presence mismatch at %s", out.Hit)
			}
			if got := b.BatteryCharge(); got != tt.charge {
				t.Fatalf("battery charge = %d, want %d", got, tt.charge)
			}
		})
	}
}

func TestDangerousObjectMisses(t *testing.T) {
	b := newShieldedShip(t, Single)
	out := b.HandleDangerousObject(DangerousObject{HeavyShot, North, 4}, NoDefense)
	if !out.Hit.IsInvalid() || out.Destroyed {
		t.Fatalf("outcome = %+v, want a miss", out)
	}
}

func TestBigMeteoriteNeedsCannonInLine(t *testing.T) {
	b := NewBoard(2)
	mustPlace(t, b, At(1, 3), NewComponent(1, KindCannon, conn(Empty, Empty, Universal, Empty), 0), 0)
	mustPlace(t, b, At(2, 4), NewComponent(2, KindShield, conn(Empty, Empty, Empty, Universal), 0), 0)

	if out := b.HandleDangerousObject(DangerousObject{BigMeteorite, North, 7}, NoDefense); !out.Defended {
		t.Fatalf("cannon in the same column should shoot it down: %+v", out)
	}
	out := b.HandleDangerousObject(DangerousObject{BigMeteorite, North, 8}, NoDefense)
	if out.Defended || !out.Destroyed || out.Hit != At(2, 4) {
		t.Fatalf("front meteorite one column off should hit the shield: %+v", out)
	}
}

func TestBigMeteoriteFromSideUsesDoubleCannonOnAdjacentRow(t *testing.T) {
	b := newGunBoat(t)
	def := Defense{Shield: Invalid, Cannon: At(2, 2), Batteries: []Coordinates{At(3, 3)}}
	out := b.HandleDangerousObject(DangerousObject{BigMeteorite, West, 8}, def)
	if !out.Defended || out.Hit != At(3, 3) {
		t.Fatalf("outcome = %+v, want battery box defended by the double cannon", out)
	}
	if got := b.BatteryCharge(); got != 1 {
		t.Fatalf("battery charge = %d, want 1", got)
	}
	out = b.HandleDangerousObject(DangerousObject{BigMeteorite, West, 7}, NoDefense)
	if out.Defended || !out.Destroyed {
		t.Fatalf("undefended double cannon should be destroyed: %+v", out)
	}
}
