package tilemap

// Raw cell values carry flip flags in the top three bits.
const (
	FlipHorizontal uint32 = 0x80000000
	FlipVertical   uint32 = 0x40000000
	FlipDiagonal   uint32 = 0x20000000
	GIDMask        uint32 = 0x1FFFFFFF
)

// GID is a decoded raw cell value
type GID struct {
	ID    uint32
	FlipH bool
	FlipV bool
	FlipD bool
}

// Decode splits a raw cell value into its tile id and flip flags
func Decode(raw uint32) GID {
	return GID{
		ID:    raw & GIDMask,
		FlipH: raw&FlipHorizontal != 0,
		FlipV: raw&FlipVertical != 0,
		FlipD: raw&FlipDiagonal != 0,
	}
}

// Empty reports whether the cell holds no tile
func (g GID) Empty() bool {
	return g.ID == 0
}

// Encode packs the id and flags back into a raw cell value
func (g GID) Encode() uint32 {
	raw := g.ID & GIDMask
	if g.FlipH {
		raw |= FlipHorizontal
	}
	if g.FlipV {
		raw |= FlipVertical
	}
	if g.FlipD {
		raw |= FlipDiagonal
	}
	return raw
}
