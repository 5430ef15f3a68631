package rtdoc

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	secureMagic      = "RTDOC_SECURE"
	secureVersionV1  = uint16(1)
	secureFlagComp   = uint16(1 << 0)
	secureFlagEnc    = uint16(1 << 1)
	secureSaltSize   = 16
	secureNonceSize  = 12
	secureHeaderSize = len(secureMagic) + 2 + 2 + secureSaltSize + secureNonceSize + 8
	kdfIterations    = 200000
)

type EncryptionOptions struct {
	Enabled  bool
	Password string
}

type SaveOptions struct {
	Compression bool
	Encryption  EncryptionOptions
}

type LoadOptions struct {
	Password string
}

type EnvelopeInfo struct {
	Wrapped     bool
	Compressed  bool
	Encrypted   bool
	EnvelopeVer uint16
}

func isSecureEnvelope(b []byte) bool {
	return len(b) >= len(secureMagic) && string(b[:len(secureMagic)]) == secureMagic
}

func inspectEnvelopeBytes(b []byte) (EnvelopeInfo, error) {
	info := EnvelopeInfo{}
	if !isSecureEnvelope(b) {
		return info, nil
	}
	if len(b) < secureHeaderSize {
		return info, ErrInvalidSecureFile
	}
	version := binary.LittleEndian.Uint16(b[len(secureMagic) : len(secureMagic)+2])
	if version != secureVersionV1 {
		return info, fmt.Errorf("%w: secure envelope version %d", ErrUnsupportedVer, version)
	}
	flags := binary.LittleEndian.Uint16(b[len(secureMagic)+2 : len(secureMagic)+4])
	info.Wrapped = true
	info.Compressed = flags&secureFlagComp != 0
	info.Encrypted = flags&secureFlagEnc != 0
	info.EnvelopeVer = version
	return info, nil
}

func deriveGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, kdfIterations, 32, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encodeSecureEnvelope(payload []byte, opts SaveOptions) ([]byte, error) {
	flags := uint16(0)
	if opts.Compression {
		flags |= secureFlagComp
		var err error
		payload, err = compressBytes(payload)
		if err != nil {
			return nil, err
		}
	}

	salt := make([]byte, secureSaltSize)
	nonce := make([]byte, secureNonceSize)
	if opts.Encryption.Enabled {
		if strings.TrimSpace(opts.Encryption.Password) == "" {
			return nil, ErrPasswordRequired
		}
		flags |= secureFlagEnc
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
			return nil, err
		}
		gcm, err := deriveGCM(opts.Encryption.Password, salt)
		if err != nil {
			return nil, err
		}
		payload = gcm.Seal(nil, nonce, payload, nil)
	}

	out := make([]byte, secureHeaderSize, secureHeaderSize+len(payload))
	off := copy(out, secureMagic)
	binary.LittleEndian.PutUint16(out[off:], secureVersionV1)
	binary.LittleEndian.PutUint16(out[off+2:], flags)
	off += 4
	off += copy(out[off:], salt)
	off += copy(out[off:], nonce)
	binary.LittleEndian.PutUint64(out[off:], uint64(len(payload)))
	return append(out, payload...), nil
}

func decodeSecureEnvelope(b []byte, opts LoadOptions) ([]byte, error) {
	info, err := inspectEnvelopeBytes(b)
	if err != nil {
		return nil, err
	}
	if !info.Wrapped {
		return nil, ErrInvalidSecureFile
	}
	off := len(secureMagic) + 4
	salt := append([]byte(nil), b[off:off+secureSaltSize]...)
	off += secureSaltSize
	nonce := append([]byte(nil), b[off:off+secureNonceSize]...)
	off += secureNonceSize
	payloadLen := binary.LittleEndian.Uint64(b[off:])
	if uint64(len(b)-secureHeaderSize) != payloadLen {
		return nil, ErrInvalidSecureFile
	}
	payload := append([]byte(nil), b[secureHeaderSize:]...)

	if info.Encrypted {
		if strings.TrimSpace(opts.Password) == "" {
			return nil, ErrPasswordRequired
		}
		gcm, err := deriveGCM(opts.Password, salt)
		if err != nil {
			return nil, err
		}
		payload, err = gcm.Open(nil, nonce, payload, nil)
		if err != nil {
			return nil, ErrInvalidPassword
		}
	}
	if info.Compressed {
		payload, err = decompressBytes(payload)
		if err != nil {
			return nil, fmt.Errorf("rtdoc: decompress: %w", err)
		}
	}
	return payload, nil
}

func compressBytes(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(in); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressBytes(in []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
