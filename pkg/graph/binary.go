package graph

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unsafe"

	"arli/pkg/spatial"
)

const (
	magicBytes = "ARLIGRAF"
	version    = uint32(1)
	maxNodes   = 50_000_000
	maxEdges   = 200_000_000
	maxPoints  = 400_000_000
)

// fileHeader is the binary header for a persisted CompactSpatialGraph[Segment].
type fileHeader struct {
	Magic     [8]byte
	Version   uint32
	NumNodes  uint32
	NumEdges  uint32
	NumPoints uint32
}

// WriteBinary serializes a road graph to path: node payload, forward CSR
// (outOff/outRefs — incoming adjacency and the spatial index are rebuilt on
// load rather than stored) and geometry. Writes to a temp file and renames
// atomically so a crash mid-write never leaves a corrupt file at path.
func WriteBinary(path string, g *CompactSpatialGraph[Segment]) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	cw := &crc32Writer{w: f, hash: crc32.NewIEEE()}

	numNodes := uint32(g.NumNodes())
	outRefs := g.edgeRefs[:g.numEdges]

	hdr := fileHeader{
		Version:   version,
		NumNodes:  numNodes,
		NumEdges:  uint32(g.numEdges),
		NumPoints: uint32(len(g.points)),
	}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := writeSegmentSlice(cw, g.data); err != nil {
		return fmt.Errorf("write segments: %w", err)
	}
	if err := writeUint32Slice(cw, g.outOff); err != nil {
		return fmt.Errorf("write outOff: %w", err)
	}
	if err := writeUint32Slice(cw, outRefs); err != nil {
		return fmt.Errorf("write outRefs: %w", err)
	}
	if err := writeUint32Slice(cw, g.geomStart); err != nil {
		return fmt.Errorf("write geomStart: %w", err)
	}
	if err := writeUint32Slice(cw, g.geomEnd); err != nil {
		return fmt.Errorf("write geomEnd: %w", err)
	}
	if err := writePositionSlice(cw, g.points); err != nil {
		return fmt.Errorf("write points: %w", err)
	}

	checksum := cw.hash.Sum32()
	if err := binary.Write(f, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ReadBinary deserializes a road graph from path, validates the CRC32
// trailer and CSR invariants, and rebuilds incoming adjacency and the
// spatial index via FromRowData/NewCompactSpatialGraph.
func ReadBinary(path string) (*CompactSpatialGraph[Segment], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	cr := &crc32Reader{r: f, hash: crc32.NewIEEE()}

	var hdr fileHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != magicBytes {
		return nil, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}
	if hdr.NumNodes > maxNodes {
		return nil, fmt.Errorf("NumNodes %d exceeds limit %d", hdr.NumNodes, maxNodes)
	}
	if hdr.NumEdges > maxEdges {
		return nil, fmt.Errorf("NumEdges %d exceeds limit %d", hdr.NumEdges, maxEdges)
	}
	if hdr.NumPoints > maxPoints {
		return nil, fmt.Errorf("NumPoints %d exceeds limit %d", hdr.NumPoints, maxPoints)
	}

	data, err := readSegmentSlice(cr, int(hdr.NumNodes))
	if err != nil {
		return nil, fmt.Errorf("read segments: %w", err)
	}
	outOff, err := readUint32Slice(cr, int(hdr.NumNodes)+1)
	if err != nil {
		return nil, fmt.Errorf("read outOff: %w", err)
	}
	outRefs, err := readUint32Slice(cr, int(hdr.NumEdges))
	if err != nil {
		return nil, fmt.Errorf("read outRefs: %w", err)
	}
	geomStart, err := readUint32Slice(cr, int(hdr.NumNodes))
	if err != nil {
		return nil, fmt.Errorf("read geomStart: %w", err)
	}
	geomEnd, err := readUint32Slice(cr, int(hdr.NumNodes))
	if err != nil {
		return nil, fmt.Errorf("read geomEnd: %w", err)
	}
	points, err := readPositionSlice(cr, int(hdr.NumPoints))
	if err != nil {
		return nil, fmt.Errorf("read points: %w", err)
	}

	expectedCRC := cr.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(f, binary.LittleEndian, &storedCRC); err != nil {
		return nil, fmt.Errorf("read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, fmt.Errorf("CRC32 mismatch: stored=%08x computed=%08x", storedCRC, expectedCRC)
	}

	if err := validateOutCSR(outOff, outRefs, hdr.NumNodes); err != nil {
		return nil, fmt.Errorf("CSR invalid: %w", err)
	}

	// outOff includes the trailing sentinel that FromRowData re-derives
	// itself; pass only the per-node starts.
	base := FromRowData(data, outOff[:hdr.NumNodes], outRefs)
	return NewCompactSpatialGraph(base, points, geomStart, geomEnd), nil
}

func validateOutCSR(outOff, outRefs []uint32, numNodes uint32) error {
	if uint32(len(outOff)) != numNodes+1 {
		return fmt.Errorf("outOff length %d != NumNodes+1 %d", len(outOff), numNodes+1)
	}
	if outOff[numNodes] != uint32(len(outRefs)) {
		return fmt.Errorf("outOff[NumNodes]=%d != len(outRefs)=%d", outOff[numNodes], len(outRefs))
	}
	for i := uint32(1); i <= numNodes; i++ {
		if outOff[i] < outOff[i-1] {
			return fmt.Errorf("outOff not monotonic at %d: %d < %d", i, outOff[i], outOff[i-1])
		}
	}
	for i, ref := range outRefs {
		if ref >= numNodes {
			return fmt.Errorf("outRefs[%d]=%d >= NumNodes=%d", i, ref, numNodes)
		}
	}
	return nil
}

// Zero-copy I/O helpers using unsafe.Slice, matching the teacher's approach
// for the fixed-width arrays that dominate file size.

func writeUint32Slice(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func readUint32Slice(r io.Reader, n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func writePositionSlice(w io.Writer, s []spatial.Position) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

func readPositionSlice(r io.Reader, n int) ([]spatial.Position, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]spatial.Position, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func writeSegmentSlice(w io.Writer, s []Segment) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(Segment{})))
	_, err := w.Write(b)
	return err
}

func readSegmentSlice(r io.Reader, n int) ([]Segment, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]Segment, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*int(unsafe.Sizeof(Segment{})))
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

// CRC32 wrapping writers/readers.

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
