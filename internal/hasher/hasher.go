package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen (0 or >16 keeps all 16 chars).
func ContentHash(data []byte, hexLen int) string {
	return truncHex(xxhash.Sum64(data), hexLen)
}

// ContentHashReader computes xxHash64 from a reader, streaming.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncHex(h.Sum64(), hexLen), nil
}

// Params are the encoding parameters that, together with the source
// bytes, fully determine a placeholder.
type Params struct {
	ComponentsX int
	ComponentsY int
	SampleSize  int
	Punch       float64
	PreviewW    int
	Formats     []string
}

// Fingerprint hashes the source bytes together with the parameters.  Two
// builds with equal fingerprints produce the same manifest entry.
func Fingerprint(data []byte, p Params) string {
	h := xxhash.New()
	_, _ = h.Write(data)

	var buf [8]byte
	for _, v := range []uint64{
		uint64(p.ComponentsX), uint64(p.ComponentsY),
		uint64(p.SampleSize), math.Float64bits(p.Punch),
		uint64(p.PreviewW),
	} {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	for _, f := range p.Formats {
		_, _ = h.WriteString(f)
		_, _ = h.Write([]byte{0})
	}
	return truncHex(h.Sum64(), 0)
}

func truncHex(v uint64, hexLen int) string {
	full := hex.EncodeToString(binary.BigEndian.AppendUint64(nil, v))
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
