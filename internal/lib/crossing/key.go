package crossing

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/dpup/strem/server/internal/lib/geo"
)

// Key returns a content hash identifying a (track, route) input pair.
// Coordinates are hashed by their exact bit patterns, and the two roles are
// length-prefixed so swapping track and route gives a different key.
func Key(track, route geo.Polyline) string {
	h := sha256.New()
	writePolyline(h, track)
	writePolyline(h, route)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func writePolyline(w io.Writer, p geo.Polyline) {
	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], uint64(len(p.Points)))
	w.Write(buf[:])

	for _, pt := range p.Points {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(pt.X))
		w.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(pt.Y))
		w.Write(buf[:])
	}
}
