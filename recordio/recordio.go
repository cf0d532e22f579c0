package recordio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/davidvella/topq/ordered"
)

var (
	Uint64Size = int64(binary.Size(uint64(0)))
	Int64Size  = int64(binary.Size(int64(0)))
	// MagicBytes Magic bytes to identify valid recordio frames (TPQ).
	MagicBytes           = []byte{0x54, 0x50, 0x51}
	ErrInvalidMagicBytes = errors.New("invalid magic bytes - not a valid recordio file")
	ErrFrameTooLarge     = errors.New("frame too large")
)

// MaxFrameSize bounds the payload length ReadBytes accepts.
const MaxFrameSize = 64 << 20

// Codec converts values to and from their binary payload.
type Codec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(b []byte) (V, error)
}

// BinaryWriter handles writing binary data with error handling.
type BinaryWriter struct {
	w io.Writer
}

func NewBinaryWriter(w io.Writer) BinaryWriter {
	return BinaryWriter{w: w}
}

func (bw BinaryWriter) WriteString(s string) (int64, error) {
	return bw.WriteBytes([]byte(s))
}

func (bw BinaryWriter) WriteInt64(i int64) (int64, error) {
	err := binary.Write(bw.w, binary.LittleEndian, i)
	if err != nil {
		return 0, err
	}
	return Int64Size, nil
}

func (bw BinaryWriter) WriteBytes(b []byte) (int64, error) {
	// Write bytes length (uint64)
	if err := binary.Write(bw.w, binary.LittleEndian, uint64(len(b))); err != nil {
		return 0, fmt.Errorf("error writing length: %w", err)
	}

	n, err := bw.w.Write(b)
	if err != nil {
		return Uint64Size, fmt.Errorf("error writing content: %w", err)
	}

	// Return total bytes written (length field + content)
	return Uint64Size + int64(n), nil
}

// BinaryReader handles reading binary data with error handling.
type BinaryReader struct {
	r io.Reader
}

func NewBinaryReader(r io.Reader) BinaryReader {
	return BinaryReader{r: r}
}

func (br BinaryReader) ReadString() (string, error) {
	b, err := br.ReadBytes()
	return string(b), err
}

func (br BinaryReader) ReadInt64() (int64, error) {
	var value int64
	err := binary.Read(br.r, binary.LittleEndian, &value)
	return value, err
}

func (br BinaryReader) ReadBytes() ([]byte, error) {
	var length uint64
	if err := binary.Read(br.r, binary.LittleEndian, &length); err != nil {
		return nil, fmt.Errorf("error reading length: %w", err)
	}
	if length > MaxFrameSize {
		return nil, fmt.Errorf("error reading length: %w: %d bytes", ErrFrameTooLarge, length)
	}

	b := make([]byte, length)
	if _, err := io.ReadFull(br.r, b); err != nil {
		return nil, fmt.Errorf("error reading content: %w", err)
	}
	return b, nil
}

// Write writes a single framed value to the writer.
func Write[V any](w io.Writer, c Codec[V], v V) (int64, error) {
	payload, err := c.Encode(v)
	if err != nil {
		return 0, fmt.Errorf("failed to encode value: %w", err)
	}

	mn, err := w.Write(MagicBytes)
	if err != nil {
		return int64(mn), fmt.Errorf("failed to write magic bytes: %w", err)
	}

	n, err := NewBinaryWriter(w).WriteBytes(payload)
	if err != nil {
		return int64(mn) + n, fmt.Errorf("error writing payload: %w", err)
	}

	return int64(mn) + n, nil
}

// Read reads a single framed value from the reader. It returns io.EOF when
// the reader is exhausted on a frame boundary.
func Read[V any](r io.Reader, c Codec[V]) (V, error) {
	var zero V

	magicBytes := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(r, magicBytes); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, io.EOF
		}
		return zero, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if !bytes.Equal(magicBytes, MagicBytes) {
		return zero, ErrInvalidMagicBytes
	}

	payload, err := NewBinaryReader(r).ReadBytes()
	if err != nil {
		return zero, fmt.Errorf("error reading payload: %w", err)
	}

	v, err := c.Decode(payload)
	if err != nil {
		return zero, fmt.Errorf("failed to decode value: %w", err)
	}
	return v, nil
}

// Seq creates an iterator over values. It stops at the first error.
func Seq[V any](r io.Reader, c Codec[V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for {
			v, err := Read(r, c)
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// ReadAll reads values until the reader is exhausted. Unlike Seq it reports
// any error other than a clean end of input.
func ReadAll[V any](r io.Reader, c Codec[V]) ([]V, error) {
	var vs []V
	for {
		v, err := Read(r, c)
		if errors.Is(err, io.EOF) {
			return vs, nil
		}
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
}

// Size calculates the total size in bytes a payload of n bytes occupies once
// framed.
func Size(n int) int64 {
	return int64(len(MagicBytes)) + Uint64Size + int64(n)
}

// Codec values typed as interfaces so generic calls infer the value type.
var (
	Int64  Codec[ordered.Value[int64]]  = Int64Codec{}
	String Codec[ordered.Value[string]] = StringCodec{}
	Time   Codec[ordered.Time]          = TimeCodec{}
)

// Int64Codec encodes ordered int64 values as eight little-endian bytes.
type Int64Codec struct{}

func (Int64Codec) Encode(v ordered.Value[int64]) ([]byte, error) {
	return binary.LittleEndian.AppendUint64(nil, uint64(v.Get())), nil
}

func (Int64Codec) Decode(b []byte) (ordered.Value[int64], error) {
	if len(b) != int(Int64Size) {
		return ordered.Value[int64]{}, fmt.Errorf("int64 payload has %d bytes", len(b))
	}
	return ordered.Of(int64(binary.LittleEndian.Uint64(b))), nil
}

// StringCodec encodes ordered strings as their raw bytes.
type StringCodec struct{}

func (StringCodec) Encode(v ordered.Value[string]) ([]byte, error) {
	return []byte(v.Get()), nil
}

func (StringCodec) Decode(b []byte) (ordered.Value[string], error) {
	return ordered.Of(string(b)), nil
}

// TimeCodec encodes instants as Unix nanoseconds followed by the location name.
type TimeCodec struct{}

func (TimeCodec) Encode(v ordered.Time) ([]byte, error) {
	var buf bytes.Buffer
	bw := NewBinaryWriter(&buf)
	if _, err := bw.WriteInt64(v.Get().UnixNano()); err != nil {
		return nil, fmt.Errorf("error writing timestamp: %w", err)
	}
	if _, err := bw.WriteString(v.Get().Location().String()); err != nil {
		return nil, fmt.Errorf("error writing timezone: %w", err)
	}
	return buf.Bytes(), nil
}

func (TimeCodec) Decode(b []byte) (ordered.Time, error) {
	br := NewBinaryReader(bytes.NewReader(b))

	unixNano, err := br.ReadInt64()
	if err != nil {
		return ordered.Time{}, fmt.Errorf("error reading timestamp: %w", err)
	}

	timezone, err := br.ReadString()
	if err != nil {
		return ordered.Time{}, fmt.Errorf("error reading timezone: %w", err)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return ordered.OfTime(time.Unix(0, unixNano).In(loc)), nil
}
