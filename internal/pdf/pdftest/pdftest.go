// Package pdftest builds small documents and images for tests.
package pdftest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// A4 page size in points.
const (
	A4Width  = 595.0
	A4Height = 842.0
)

// Blank returns a valid single-page PDF with an empty page of the given size.
func Blank(width, height float64) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Resources << >> >>", width, height),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// Streams returns the contents of every stream in doc, joined by newlines.
// Flate-encoded streams are inflated; anything else is returned as stored.
func Streams(doc []byte) string {
	var out bytes.Buffer
	rest := doc
	for {
		i := bytes.Index(rest, []byte("stream"))
		if i < 0 {
			break
		}
		if i >= 3 && string(rest[i-3:i]) == "end" {
			rest = rest[i+len("stream"):]
			continue
		}
		body := rest[i+len("stream"):]
		body = bytes.TrimPrefix(body, []byte("\r"))
		body = bytes.TrimPrefix(body, []byte("\n"))
		end := bytes.Index(body, []byte("endstream"))
		if end < 0 {
			break
		}
		raw := body[:end]
		rest = body[end+len("endstream"):]

		if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if inflated, err := io.ReadAll(zr); err == nil {
				raw = inflated
			}
			zr.Close()
		}
		out.Write(raw)
		out.WriteByte('\n')
	}
	return out.String()
}

// WriteTemplate writes a blank A4 template into a temp dir and returns its path.
func WriteTemplate(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.pdf")
	if err := os.WriteFile(path, Blank(A4Width, A4Height), 0600); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	return path
}

// PNG returns a solid PNG image of the given size.
func PNG(width, height int) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(width, height)); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// JPEG returns a solid JPEG image of the given size.
func JPEG(width, height int) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(width, height), &jpeg.Options{Quality: 80}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// BlankPNG returns an all-black grayscale PNG. It compresses to a few kilobytes
// whatever its size.
func BlankPNG(width, height int) []byte {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, image.NewGray(image.Rect(0, 0, width, height))); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// PNGHeader returns only the signature and IHDR chunk of a grayscale PNG
// declaring the given size. It is enough for image.DecodeConfig and nothing
// else.
func PNGHeader(width, height uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = 8 // bit depth; color type, compression, filter and interlace stay 0

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func solid(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	c := color.NRGBA{R: 0x2a, G: 0x6f, B: 0xb5, A: 0xff}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
