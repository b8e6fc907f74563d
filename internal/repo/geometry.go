package repo

import (
	"encoding/binary"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
)

// GeoPackage geometry columns hold a StandardGeoPackageBinary blob: an
// 8-byte header (magic "GP", version, flags, SRID) followed by WKB.
// Envelopes are optional and not written; point envelopes add nothing.

const gpkgHeaderSize = 8

// encodeGeometry renders a point as a GeoPackage standard binary blob.
func encodeGeometry(p *geom.Point) ([]byte, error) {
	header := make([]byte, gpkgHeaderSize)
	header[0] = 'G'
	header[1] = 'P'
	header[2] = 0    // version 1, encoded as 0
	header[3] = 0x01 // little-endian header values, no envelope
	binary.LittleEndian.PutUint32(header[4:], uint32(domain.SRID))

	body, err := wkb.Marshal(p, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("repo.encodeGeometry: %w", err)
	}
	return append(header, body...), nil
}

// decodeGeometry parses a GeoPackage standard binary blob back into a
// point, skipping any envelope the writer included.
func decodeGeometry(blob []byte) (*geom.Point, error) {
	if len(blob) < gpkgHeaderSize {
		return nil, fmt.Errorf("repo.decodeGeometry: blob too short (%d bytes)", len(blob))
	}
	if blob[0] != 'G' || blob[1] != 'P' {
		return nil, fmt.Errorf("repo.decodeGeometry: bad magic %q", blob[:2])
	}

	// Envelope contents indicator (flags bits 1-3) determines how many
	// bytes sit between the header and the WKB body.
	var envelopeSizes = [...]int{0, 32, 48, 48, 64}
	indicator := int(blob[3]>>1) & 0x07
	if indicator >= len(envelopeSizes) {
		return nil, fmt.Errorf("repo.decodeGeometry: invalid envelope indicator %d", indicator)
	}
	offset := gpkgHeaderSize + envelopeSizes[indicator]
	if len(blob) < offset {
		return nil, fmt.Errorf("repo.decodeGeometry: blob shorter than envelope (%d bytes)", len(blob))
	}

	g, err := wkb.Unmarshal(blob[offset:])
	if err != nil {
		return nil, fmt.Errorf("repo.decodeGeometry: %w", err)
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return nil, fmt.Errorf("repo.decodeGeometry: expected point geometry, got %T", g)
	}
	return p.SetSRID(domain.SRID), nil
}
