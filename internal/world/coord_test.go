package world

import "testing"

func TestDirectionsAreConsistent(t *testing.T) {
	for _, dir := range AllDirections {
		v := dir.Vector()
		o := dir.Opposite().Vector()
		if v.Add(o.X, o.Y, o.Z) != (BlockCoord{}) {
			t.Fatalf("%s and its opposite do not cancel", dir)
		}
		if dir.Opposite().Opposite() != dir {
			t.Fatalf("%s opposite is not an involution", dir)
		}
		if dir.Vertical() != (v.Z != 0) {
			t.Fatalf("%s vertical mismatch", dir)
		}
	}
	if North.Vector().Y != -1 || East.Vector().X != 1 {
		t.Fatalf("unexpected compass orientation")
	}
}

func TestBoundsAround(t *testing.T) {
	center := BlockCoord{X: 10, Y: -4, Z: 64}
	b := BoundsAround(center, BlockCoord{X: -4, Y: -4, Z: -2}, BlockCoord{X: 4, Y: 4, Z: 10})
	if b.Size() != (Dimensions{Width: 9, Depth: 9, Height: 13}) {
		t.Fatalf("unexpected size %+v", b.Size())
	}
	if !b.Contains(center.Offset(Down, 2)) || b.Contains(center.Offset(Down, 3)) {
		t.Fatalf("unexpected vertical containment for %+v", b)
	}
	if !b.Contains(center.Offset(West, 4)) || b.Contains(center.Offset(East, 5)) {
		t.Fatalf("unexpected horizontal containment for %+v", b)
	}
}

func TestFaces(t *testing.T) {
	faces := FaceFor(North) | FaceFor(Up)
	if faces&FaceNorth == 0 || faces&FaceUp == 0 || faces&FaceSouth != 0 {
		t.Fatalf("unexpected faces %05b", faces)
	}
	if FaceFor(Down) != 0 {
		t.Fatalf("down must carry no face")
	}
}
