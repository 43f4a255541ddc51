package spatial

import "testing"

func cellsOf(g Groups, index int) []int {
	var cells []int
	for c := range g {
		for _, r := range g[c] {
			if r.Index == index {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

func TestPartition(t *testing.T) {
	ref := BoxAt(20, 20, 10, 10)

	tests := []struct {
		name      string
		box       Box
		threshold float64
		want      []int
	}{
		{"TopLeft", BoxAt(0, 0, 10, 10), 0.5, []int{TopLeft}},
		{"TopCenter", BoxAt(20, 0, 10, 10), 0.5, []int{TopCenter}},
		{"MiddleLeft", BoxAt(0, 20, 10, 10), 0.5, []int{MiddleLeft}},
		{"Inside", BoxAt(22, 22, 4, 4), 0.5, []int{MiddleCenter}},
		{"BottomRight", BoxAt(40, 40, 10, 10), 0.5, []int{BottomRight}},
		{"CentreOnEdgeIsInside", BoxAt(10, 20, 20, 10), 0.5, []int{MiddleCenter}},
		{"PromotedDown", BoxAt(0, 5, 10, 24), 0.5, []int{TopLeft, MiddleLeft}},
		{"NotPromotedAtOne", BoxAt(0, 5, 10, 24), 1, []int{TopLeft}},
		{"PromotedRight", BoxAt(12, 0, 14, 5), 0.5, []int{TopLeft, TopCenter}},
		{"BelowThreshold", BoxAt(12, 0, 12, 5), 0.5, []int{TopLeft}},
		{"ZeroThresholdTouching", BoxAt(0, 0, 20, 20), 0, []int{TopLeft, TopCenter, MiddleLeft}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Partition([]Rect{NewRect(tt.box, 0)}, ref, tt.threshold)
			got := cellsOf(g, 0)
			if len(got) != len(tt.want) {
				t.Fatalf("cells = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("cells = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestPartitionEveryRectPlaced(t *testing.T) {
	ref := BoxAt(20, 20, 10, 10)
	var rects []Rect
	for i := 0; i < 25; i++ {
		rects = append(rects, NewRect(BoxAt(float64(i%5)*12, float64(i/5)*12, 8, 8), i))
	}

	g := Partition(rects, ref, 0.5)
	for i := range rects {
		if len(cellsOf(g, i)) == 0 {
			t.Errorf("rect %d not placed", i)
		}
	}
}
