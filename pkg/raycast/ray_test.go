package raycast

import (
	gomath "math"
	"testing"
)

func TestNearest(t *testing.T) {
	origin := Point{0, 0}
	near := &Intercept{Kind: VerticalCrossing, Point: Point{3, 4}}
	far := &Intercept{Kind: HorizontalCrossing, Point: Point{6, 8}}
	tieH := &Intercept{Kind: HorizontalCrossing, Point: Point{0, 5}}
	tieV := &Intercept{Kind: VerticalCrossing, Point: Point{5, 0}}
	closest := &Intercept{Kind: HorizontalCrossing, Point: Point{1, 1}}

	tests := []struct {
		name       string
		horizontal *Intercept
		vertical   *Intercept
		want       *Intercept
	}{
		{"neither", nil, nil, nil},
		{"horizontal only", far, nil, far},
		{"vertical only", nil, near, near},
		{"vertical nearer", far, near, near},
		{"horizontal nearer", closest, near, closest},
		{"tie prefers horizontal", tieH, tieV, tieH},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nearest(origin, tt.horizontal, tt.vertical); got != tt.want {
				t.Errorf("Nearest = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectHeight(t *testing.T) {
	if got := ProjectHeight(10000, 150); !approxEqual(got, 10000.0/150.0, tolerance) {
		t.Errorf("ProjectHeight(10000, 150) = %v", got)
	}
	if got := ProjectHeight(5000, 100); got != 50 {
		t.Errorf("ProjectHeight(5000, 100) = %v, want 50", got)
	}
	for _, d := range []float64{0, -1, gomath.NaN()} {
		if got := ProjectHeight(10000, d); got != MaxProjectedHeight {
			t.Errorf("ProjectHeight(10000, %v) = %v, want MaxProjectedHeight", d, got)
		}
	}
}

func TestCast_EndToEnd(t *testing.T) {
	var walls [][2]int
	for y := 0; y < 10; y++ {
		walls = append(walls, [2]int{7, y})
	}
	g := newTestGrid(t, 10, 10, 50, walls...)

	r := Cast(g, GridPoint{4, 4}, 0, DefaultProjection)
	if r.Hit == nil {
		t.Fatal("expected a hit")
	}
	if index, ok := r.Tile(); !ok || index != 47 {
		t.Errorf("expected tile 47, got %d (ok=%v)", index, ok)
	}
	if !approxEqual(r.Distance, 150, tolerance) {
		t.Errorf("expected distance 150, got %v", r.Distance)
	}
	if !approxEqual(r.ProjectedHeight, DefaultProjection/150, tolerance) {
		t.Errorf("expected height %v, got %v", DefaultProjection/150, r.ProjectedHeight)
	}
	if r.Hit.Point != (Point{350, 200}) {
		t.Errorf("expected hit point (350, 200), got %v", r.Hit.Point)
	}
	if len(r.HorizontalCrossings) != 0 {
		t.Errorf("expected no horizontal crossings, got %d", len(r.HorizontalCrossings))
	}
	if len(r.VerticalCrossings) != 3 {
		t.Errorf("expected 3 vertical crossings, got %d", len(r.VerticalCrossings))
	}
}

func TestCast_ZeroDistanceHit(t *testing.T) {
	// Origin on the top edge of its tile, facing the wall directly above.
	g := newTestGrid(t, 10, 10, 50, [2]int{4, 4})

	r := Cast(g, GridPoint{4.5, 5}, 3*gomath.Pi/2, DefaultProjection)
	if r.Hit == nil {
		t.Fatal("expected a hit")
	}
	if index, _ := r.Tile(); index != 44 {
		t.Errorf("expected tile 44, got %d", index)
	}
	if r.Distance != 0 {
		t.Errorf("expected zero distance, got %v", r.Distance)
	}
	if r.ProjectedHeight != MaxProjectedHeight {
		t.Errorf("expected MaxProjectedHeight, got %v", r.ProjectedHeight)
	}
}

func TestRay_UpdateReplacesState(t *testing.T) {
	g := newTestGrid(t, 10, 10, 50, [2]int{7, 4})

	var r Ray
	r.Update(g, GridPoint{4.5, 4.5}, 0, DefaultProjection)
	if r.Hit == nil {
		t.Fatal("expected a hit facing the wall")
	}

	r.Update(g, GridPoint{4.5, 4.5}, gomath.Pi, DefaultProjection)
	if r.Hit != nil {
		t.Errorf("expected no hit facing away, got %v", r.Hit)
	}
	if r.Distance != 0 || r.ProjectedHeight != 0 {
		t.Errorf("expected cleared distance and height, got %v, %v", r.Distance, r.ProjectedHeight)
	}
	if r.Angle != gomath.Pi {
		t.Errorf("expected angle π, got %v", r.Angle)
	}
	if _, ok := r.Tile(); ok {
		t.Error("expected no tile")
	}
}
