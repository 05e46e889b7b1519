package mangrove

import (
	"testing"

	"mangrovesim/internal/world"
)

func TestAssembleVine(t *testing.T) {
	pos := world.BlockCoord{X: 3, Y: -2, Z: 7}
	leaves := world.Block{Type: world.BlockMangroveLeaves}
	log := world.Block{Type: world.BlockMangroveLog}

	tests := []struct {
		name      string
		neighbors map[world.Direction]world.Block
		wantOK    bool
		want      world.Faces
	}{
		{name: "nothing around"},
		{
			name:      "leaves below only",
			neighbors: map[world.Direction]world.Block{world.Down: leaves},
		},
		{
			name:      "foreign leaves do not anchor",
			neighbors: map[world.Direction]world.Block{world.North: {Type: world.BlockLeaves, Material: "oak"}},
		},
		{
			name:      "roots do not anchor",
			neighbors: map[world.Direction]world.Block{world.East: {Type: world.BlockMangroveRoots}},
		},
		{
			name:      "trunk to the west",
			neighbors: map[world.Direction]world.Block{world.West: log},
			wantOK:    true,
			want:      world.FaceWest,
		},
		{
			name: "canopy overhead and north",
			neighbors: map[world.Direction]world.Block{
				world.Up:    leaves,
				world.North: leaves,
				world.Down:  log,
			},
			wantOK: true,
			want:   world.FaceUp | world.FaceNorth,
		},
		{
			name: "boxed in",
			neighbors: map[world.Direction]world.Block{
				world.North: leaves, world.South: log, world.East: leaves, world.West: log, world.Up: leaves,
			},
			wantOK: true,
			want:   world.FaceNorth | world.FaceSouth | world.FaceEast | world.FaceWest | world.FaceUp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newMapGrid()
			for dir, block := range tt.neighbors {
				g.put(pos.Neighbor(dir), block)
			}
			got, ok := AssembleVine(g, pos)
			if ok != tt.wantOK {
				t.Fatalf("AssembleVine() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Type != world.BlockVine {
				t.Fatalf("AssembleVine() type = %s, want vine", got.Type)
			}
			if got.Faces != tt.want {
				t.Fatalf("AssembleVine() faces = %05b, want %05b", got.Faces, tt.want)
			}
		})
	}
}
