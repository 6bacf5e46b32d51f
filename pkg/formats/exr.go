package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"

	"github.com/vertexanim/vatbake/pkg/vat"
)

// EXR format errors.
var (
	ErrInvalidGrid = errors.New("invalid pixel grid")
)

const (
	exrMagic   uint32 = 0x01312f76
	exrVersion uint32 = 2

	exrPixelTypeHalf   int32 = 1
	exrCompressionZIPS uint8 = 2
	exrLineOrderIncY   uint8 = 0
)

// exrChannels lists the stored channels in the order the format requires
// (ascending by name) with the grid pixel component each one reads.
// Grid pixels are (R, G, B, A).
var exrChannels = []struct {
	name      string
	component int
}{
	{"A", 3},
	{"B", 2},
	{"G", 1},
	{"R", 0},
}

// WriteEXR writes a pixel grid as a scanline OpenEXR 2.0 image: 16-bit
// half RGBA, ZIPS compression, increasing line order. Pixel values are
// written as-is; the data is linear ("Raw" intent) and carries no tone
// response.
func WriteEXR(w io.Writer, grid *vat.Grid) error {
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		return fmt.Errorf("%w: no dimensions", ErrInvalidGrid)
	}
	if len(grid.Pixels) != grid.Width*grid.Height {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidGrid, len(grid.Pixels), grid.Width, grid.Height)
	}

	header := buildEXRHeader(grid.Width, grid.Height)

	// One ZIPS chunk per scanline.
	chunks := make([][]byte, grid.Height)
	for y := 0; y < grid.Height; y++ {
		chunks[y] = compressScanline(scanlineBytes(grid, y))
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, exrMagic)
	binary.Write(&buf, binary.LittleEndian, exrVersion)
	buf.Write(header)

	// Chunk offset table: absolute file offsets, one entry per scanline.
	offset := uint64(buf.Len() + 8*grid.Height)
	for y := 0; y < grid.Height; y++ {
		binary.Write(&buf, binary.LittleEndian, offset)
		offset += 8 + uint64(len(chunks[y]))
	}

	for y := 0; y < grid.Height; y++ {
		binary.Write(&buf, binary.LittleEndian, int32(y))
		binary.Write(&buf, binary.LittleEndian, int32(len(chunks[y])))
		buf.Write(chunks[y])
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteEXRFile writes a pixel grid to an .exr file on disk.
func WriteEXRFile(path string, grid *vat.Grid) error {
	var buf bytes.Buffer
	if err := WriteEXR(&buf, grid); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing EXR file: %w", err)
	}
	return nil
}

// buildEXRHeader serializes the attribute list, terminated by an empty
// name. Attributes appear in alphabetical order.
func buildEXRHeader(width, height int) []byte {
	var buf bytes.Buffer

	var chlist bytes.Buffer
	for _, ch := range exrChannels {
		chlist.WriteString(ch.name)
		chlist.WriteByte(0)
		binary.Write(&chlist, binary.LittleEndian, exrPixelTypeHalf)
		chlist.Write([]byte{0, 0, 0, 0})                          // pLinear + reserved
		binary.Write(&chlist, binary.LittleEndian, [2]int32{1, 1}) // x/y sampling
	}
	chlist.WriteByte(0)
	writeEXRAttr(&buf, "channels", "chlist", chlist.Bytes())

	writeEXRAttr(&buf, "compression", "compression", []byte{exrCompressionZIPS})

	var box bytes.Buffer
	binary.Write(&box, binary.LittleEndian, [4]int32{0, 0, int32(width - 1), int32(height - 1)})
	writeEXRAttr(&buf, "dataWindow", "box2i", box.Bytes())
	writeEXRAttr(&buf, "displayWindow", "box2i", box.Bytes())

	writeEXRAttr(&buf, "lineOrder", "lineOrder", []byte{exrLineOrderIncY})

	var f32 bytes.Buffer
	binary.Write(&f32, binary.LittleEndian, float32(1))
	writeEXRAttr(&buf, "pixelAspectRatio", "float", f32.Bytes())

	var center bytes.Buffer
	binary.Write(&center, binary.LittleEndian, [2]float32{0, 0})
	writeEXRAttr(&buf, "screenWindowCenter", "v2f", center.Bytes())
	writeEXRAttr(&buf, "screenWindowWidth", "float", f32.Bytes())

	buf.WriteByte(0) // end of header
	return buf.Bytes()
}

func writeEXRAttr(buf *bytes.Buffer, name, typeName string, data []byte) {
	buf.WriteString(name)
	buf.WriteByte(0)
	buf.WriteString(typeName)
	buf.WriteByte(0)
	binary.Write(buf, binary.LittleEndian, int32(len(data)))
	buf.Write(data)
}

// scanlineBytes serializes one scanline channel-by-channel in chlist
// order, each channel as width little-endian halfs.
func scanlineBytes(grid *vat.Grid, y int) []byte {
	raw := make([]byte, 0, grid.Width*len(exrChannels)*2)
	for _, ch := range exrChannels {
		for x := 0; x < grid.Width; x++ {
			h := floatToHalf(grid.At(x, y)[ch.component])
			raw = append(raw, byte(h), byte(h>>8))
		}
	}
	return raw
}

// compressScanline applies the OpenEXR ZIP preprocessing (two-plane
// reorder then delta predictor) and deflates the result. Per the format,
// the raw bytes are stored instead when compression does not help.
func compressScanline(raw []byte) []byte {
	n := len(raw)
	tmp := make([]byte, n)

	// Split even-index bytes into the first half, odd into the second.
	t1, t2 := 0, (n+1)/2
	for s := 0; s < n; {
		tmp[t1] = raw[s]
		t1++
		s++
		if s < n {
			tmp[t2] = raw[s]
			t2++
			s++
		}
	}

	// Delta predictor.
	prev := int(tmp[0])
	for i := 1; i < n; i++ {
		d := int(tmp[i]) - prev + (128 + 256)
		prev = int(tmp[i])
		tmp[i] = byte(d)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(tmp)
	zw.Close()

	if buf.Len() >= n {
		out := make([]byte, n)
		copy(out, raw)
		return out
	}
	return buf.Bytes()
}
