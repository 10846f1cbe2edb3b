package svgdom

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// pathLexer tokenizes SVG path data. Only the numeric tokens matter for
// geometry: command letters and separators are recognised so the lexer
// never stalls, then discarded. Curve control points therefore appear in
// the output as ordinary coordinates. That is a deliberate approximation
// for bounds purposes; board layers are dominated by straight and arc
// pad outlines, where it is exact enough.
var pathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `-?[0-9]+\.?[0-9]*(?:[eE][-+]?[0-9]+)?`},
	{Name: "Command", Pattern: `[A-Za-z]`},
	{Name: "Separator", Pattern: `[\s,]+`},
	{Name: "Other", Pattern: `.`},
})

var numberToken = pathLexer.Symbols()["Number"]

// Coordinates extracts the flat numeric sequence from a path data string
// in emission order. Malformed input yields whatever numbers precede the
// failure.
func Coordinates(d string) []float64 {
	lex, err := pathLexer.LexString("", d)
	if err != nil {
		return nil
	}
	var coords []float64
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			return coords
		}
		if tok.Type != numberToken {
			continue
		}
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			continue
		}
		coords = append(coords, v)
	}
}

// CoordinatePairs returns the coordinate sequence grouped into (x, y)
// pairs. An odd leftover coordinate is discarded.
func CoordinatePairs(d string) [][2]float64 {
	coords := Coordinates(d)
	pairs := make([][2]float64, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pairs = append(pairs, [2]float64{coords[i], coords[i+1]})
	}
	return pairs
}
