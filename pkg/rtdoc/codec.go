package rtdoc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"unicode/utf8"
)

const (
	MagicString = "RTDOC\x00"
	VersionV1   = uint16(1)

	headerSize = len(MagicString) + 2 + 4 + 4
	noAttach   = ^uint32(0)
)

var (
	ErrInvalidMagic      = errors.New("rtdoc: invalid magic")
	ErrUnsupportedVer    = errors.New("rtdoc: unsupported version")
	ErrChecksum          = errors.New("rtdoc: checksum mismatch")
	ErrTruncated         = errors.New("rtdoc: truncated payload")
	ErrPasswordRequired  = errors.New("rtdoc: password required")
	ErrInvalidPassword   = errors.New("rtdoc: invalid password")
	ErrInvalidSecureFile = errors.New("rtdoc: invalid secure file")
)

func Save(path string, t *Text) error {
	return SaveWithOptions(path, t, SaveOptions{})
}

func SaveWithOptions(path string, t *Text, opts SaveOptions) error {
	blob, err := Encode(t)
	if err != nil {
		return err
	}
	if opts.Compression || opts.Encryption.Enabled {
		blob, err = encodeSecureEnvelope(blob, opts)
		if err != nil {
			return err
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func Load(path string) (*Text, error) {
	return LoadWithOptions(path, LoadOptions{})
}

func LoadWithOptions(path string, opts LoadOptions) (*Text, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isSecureEnvelope(b) {
		b, err = decodeSecureEnvelope(b, opts)
		if err != nil {
			return nil, err
		}
	}
	return Decode(b)
}

func InspectEnvelope(path string) (EnvelopeInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return EnvelopeInfo{}, err
	}
	return inspectEnvelopeBytes(b)
}

// Encode serializes t: header (magic, version, body length, CRC32) followed
// by the text, typing attributes, alignments, runs and attachment images.
func Encode(t *Text) ([]byte, error) {
	if t == nil {
		return nil, errors.New("rtdoc: text is nil")
	}
	var attachments []*Attachment
	index := map[*Attachment]uint32{}
	attIndex := func(a *Attachment) uint32 {
		if a == nil {
			return noAttach
		}
		if i, ok := index[a]; ok {
			return i
		}
		i := uint32(len(attachments))
		index[a] = i
		attachments = append(attachments, a)
		return i
	}

	body := make([]byte, 0, 64+len(t.buf)*4+len(t.runs)*96)
	body = appendString(body, string(t.buf))
	body = appendAttr(body, t.typing, attIndex(t.typing.Attachment))
	body = appendU32(body, uint32(len(t.align)))
	for _, a := range t.align {
		body = append(body, byte(a))
	}
	body = appendU32(body, uint32(len(t.runs)))
	for _, r := range t.runs {
		body = appendU32(body, uint32(r.Start))
		body = appendU32(body, uint32(r.End))
		body = appendAttr(body, r.Attr, attIndex(r.Attr.Attachment))
	}
	body = appendU32(body, uint32(len(attachments)))
	for i, a := range attachments {
		var buf bytes.Buffer
		if a.Image != nil {
			if err := png.Encode(&buf, a.Image); err != nil {
				return nil, fmt.Errorf("rtdoc: encode attachment %d: %w", i, err)
			}
		}
		body = appendU32(body, uint32(a.Width))
		body = appendU32(body, uint32(a.Height))
		body = appendString(body, buf.String())
	}

	out := make([]byte, headerSize, headerSize+len(body))
	copy(out, MagicString)
	binary.LittleEndian.PutUint16(out[len(MagicString):], VersionV1)
	binary.LittleEndian.PutUint32(out[len(MagicString)+2:], uint32(len(body)))
	binary.LittleEndian.PutUint32(out[len(MagicString)+6:], crc32.ChecksumIEEE(body))
	return append(out, body...), nil
}

func Decode(blob []byte) (*Text, error) {
	if len(blob) < headerSize || string(blob[:len(MagicString)]) != MagicString {
		return nil, ErrInvalidMagic
	}
	version := binary.LittleEndian.Uint16(blob[len(MagicString):])
	if version != VersionV1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVer, version)
	}
	bodyLen := binary.LittleEndian.Uint32(blob[len(MagicString)+2:])
	sum := binary.LittleEndian.Uint32(blob[len(MagicString)+6:])
	body := blob[headerSize:]
	if uint32(len(body)) != bodyLen {
		return nil, ErrTruncated
	}
	if crc32.ChecksumIEEE(body) != sum {
		return nil, ErrChecksum
	}

	rd := &reader{b: body}
	s := rd.str()
	if !utf8.ValidString(s) {
		return nil, errors.New("rtdoc: text is not valid UTF-8")
	}
	typing, typingAtt := rd.attr()
	alignN := int(rd.u32())
	align := make([]Alignment, 0, min(alignN, len(body)))
	for i := 0; i < alignN && rd.err == nil; i++ {
		align = append(align, Alignment(rd.u8()))
	}
	runN := int(rd.u32())
	runs := make([]Run, 0, min(runN, len(body)))
	runAtt := make([]uint32, 0, min(runN, len(body)))
	for i := 0; i < runN && rd.err == nil; i++ {
		start := int(rd.u32())
		end := int(rd.u32())
		a, ai := rd.attr()
		runs = append(runs, Run{Start: start, End: end, Attr: a})
		runAtt = append(runAtt, ai)
	}
	attN := int(rd.u32())
	attachments := make([]*Attachment, 0, min(attN, len(body)))
	for i := 0; i < attN && rd.err == nil; i++ {
		w := int(rd.u32())
		h := int(rd.u32())
		raw := rd.str()
		att := &Attachment{Width: w, Height: h}
		if raw != "" {
			img, err := png.Decode(bytes.NewReader([]byte(raw)))
			if err != nil {
				return nil, fmt.Errorf("rtdoc: decode attachment %d: %w", i, err)
			}
			att.Image = img
		}
		attachments = append(attachments, att)
	}
	if rd.err != nil {
		return nil, rd.err
	}

	resolve := func(i uint32) (*Attachment, error) {
		if i == noAttach {
			return nil, nil
		}
		if int(i) >= len(attachments) {
			return nil, fmt.Errorf("rtdoc: attachment index %d out of range", i)
		}
		return attachments[i], nil
	}
	var err error
	if typing.Attachment, err = resolve(typingAtt); err != nil {
		return nil, err
	}
	for i := range runs {
		if runs[i].Attr.Attachment, err = resolve(runAtt[i]); err != nil {
			return nil, err
		}
	}

	t := NewTextWithRuns(s, runs)
	t.typing = typing
	if len(align) == len(t.align) {
		copy(t.align, align)
	}
	return t, nil
}

func appendAttr(dst []byte, a StyleAttributes, att uint32) []byte {
	f := a.Font
	dst = append(dst, byte(f.Origin))
	dst = appendString(dst, f.Family)
	dst = append(dst, byte(f.Style))
	dst = appendF64(dst, f.Size)
	dst = appendF64(dst, float64(f.Weight))
	dst = appendF64(dst, float64(f.Width))
	dst = append(dst, byte(f.Traits), byte(a.Underline), byte(a.Strikethrough))
	dst = appendU32(dst, uint32(a.Foreground))
	dst = appendU32(dst, uint32(a.Background))
	dst = appendF64(dst, a.BaselineOffset)
	dst = appendF64(dst, a.Kerning)
	dst = appendF64(dst, a.Tracking)
	return appendU32(dst, att)
}

type reader struct {
	b   []byte
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.b) < n {
		r.err = ErrTruncated
		return nil
	}
	out := r.b[:n]
	r.b = r.b[n:]
	return out
}

func (r *reader) u8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (r *reader) f64() float64 {
	if b := r.take(8); b != nil {
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return 0
}

func (r *reader) str() string {
	n := int(r.u32())
	return string(r.take(n))
}

func (r *reader) attr() (StyleAttributes, uint32) {
	var a StyleAttributes
	a.Font.Origin = FontOrigin(r.u8())
	a.Font.Family = r.str()
	a.Font.Style = TextStyle(r.u8())
	a.Font.Size = r.f64()
	a.Font.Weight = Weight(r.f64())
	a.Font.Width = Width(r.f64())
	a.Font.Traits = Traits(r.u8())
	a.Underline = LineStyle(r.u8())
	a.Strikethrough = LineStyle(r.u8())
	a.Foreground = Color(r.u32())
	a.Background = Color(r.u32())
	a.BaselineOffset = r.f64()
	a.Kerning = r.f64()
	a.Tracking = r.f64()
	return a, r.u32()
}

func appendString(dst []byte, s string) []byte {
	dst = appendU32(dst, uint32(len(s)))
	return append(dst, s...)
}

func appendU32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

func appendF64(dst []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
}

// AttachmentBounds reports the placeholder size of an attachment image.
func AttachmentBounds(img image.Image) (int, int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
