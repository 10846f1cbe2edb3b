package geometry

import (
	"testing"

	"github.com/OpenTraceLab/boardforge/pkg/svgdom"
)

func mustParse(t *testing.T, input string) *svgdom.Document {
	t.Helper()
	doc, err := svgdom.ParseString(input)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func TestShapeBounds(t *testing.T) {
	tests := []struct {
		name    string
		element string
		want    BoundingBox
		ok      bool
	}{
		{
			name:    "rect",
			element: `<rect x="1" y="2" width="3" height="4"/>`,
			want:    BoxAt(1, 2, 3, 4),
			ok:      true,
		},
		{
			name:    "circle",
			element: `<circle cx="5" cy="5" r="2"/>`,
			want:    BoxAt(3, 3, 4, 4),
			ok:      true,
		},
		{
			name:    "path",
			element: `<path d="M 0,0 L 10,5 L 2,-3"/>`,
			want:    BoundingBox{Min: Position{X: 0, Y: -3}, Max: Position{X: 10, Y: 5}},
			ok:      true,
		},
		{
			name:    "path with odd leftover coordinate",
			element: `<path d="M 0,0 L 10,5 3"/>`,
			want:    BoundingBox{Min: Position{X: 0, Y: 0}, Max: Position{X: 10, Y: 5}},
			ok:      true,
		},
		{
			name:    "path with no coordinates",
			element: `<path d="Z"/>`,
			ok:      false,
		},
		{
			name:    "line has no modelled extent",
			element: `<line x1="0" y1="0" x2="5" y2="5"/>`,
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, `<svg xmlns="http://www.w3.org/2000/svg">`+tt.element+`</svg>`)
			shape := FromElement(doc.Drawables()[0])
			got, ok := shape.Bounds()
			if ok != tt.ok {
				t.Fatalf("Bounds ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Bounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTreeBoundsViewBoxAuthoritative(t *testing.T) {
	// The declared view-box wins even when shapes extend past it.
	doc := mustParse(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 30">
  <rect x="-100" y="-100" width="500" height="500"/>
</svg>`)
	if got := TreeBounds(doc); got != BoxAt(0, 0, 40, 30) {
		t.Errorf("TreeBounds = %+v, want view-box bounds", got)
	}
}

func TestTreeBoundsUnionOfShapes(t *testing.T) {
	doc := mustParse(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <rect x="1" y="2" width="3" height="4"/>
  <circle cx="10" cy="10" r="2"/>
</svg>`)
	want := BoundingBox{Min: Position{X: 1, Y: 2}, Max: Position{X: 12, Y: 12}}
	if got := TreeBounds(doc); got != want {
		t.Errorf("TreeBounds = %+v, want %+v", got, want)
	}
}

func TestTreeBoundsFallback(t *testing.T) {
	doc := mustParse(t, `<svg xmlns="http://www.w3.org/2000/svg"><line x1="0" y1="0" x2="1" y2="1"/></svg>`)
	if got := TreeBounds(doc); got != BoxAt(0, 0, 100, 100) {
		t.Errorf("TreeBounds fallback = %+v, want 0,0 100x100", got)
	}
}

func TestArtworkBoundsFallback(t *testing.T) {
	doc := mustParse(t, `<svg xmlns="http://www.w3.org/2000/svg"/>`)
	if got := ArtworkBounds(doc); got != BoxAround(0, 0, 10, 10) {
		t.Errorf("ArtworkBounds fallback = %+v, want origin-centered 10x10", got)
	}
}

func TestShapesProjection(t *testing.T) {
	doc := mustParse(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <rect x="0" y="0" width="1" height="1"/>
  <circle cx="0" cy="0" r="1"/>
  <path d="M 0,0 L 1,1"/>
  <polygon points="0,0 1,0 1,1"/>
</svg>`)
	shapes := Shapes(doc)
	if len(shapes) != 4 {
		t.Fatalf("got %d shapes, want 4", len(shapes))
	}
	if _, ok := shapes[0].(Rect); !ok {
		t.Errorf("shape 0 is %T, want Rect", shapes[0])
	}
	if _, ok := shapes[1].(Circle); !ok {
		t.Errorf("shape 1 is %T, want Circle", shapes[1])
	}
	if _, ok := shapes[2].(Path); !ok {
		t.Errorf("shape 2 is %T, want Path", shapes[2])
	}
	if _, ok := shapes[3].(Other); !ok {
		t.Errorf("shape 3 is %T, want Other", shapes[3])
	}
}
