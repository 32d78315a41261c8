package wire

import (
	"encoding/binary"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/crypto"
	"golang.org/x/xerrors"
)

// writer appends little-endian fields to a buffer.
type writer struct {
	buffer []byte
}

func newWriter(size int) *writer {
	return &writer{buffer: make([]byte, 0, size)}
}

func (w *writer) u8(v uint8) {
	w.buffer = append(w.buffer, v)
}

func (w *writer) u16(v uint16) {
	w.buffer = binary.LittleEndian.AppendUint16(w.buffer, v)
}

func (w *writer) u32(v uint32) {
	w.buffer = binary.LittleEndian.AppendUint32(w.buffer, v)
}

func (w *writer) u64(v numeric.UInt64) {
	w.buffer = binary.LittleEndian.AppendUint64(w.buffer, uint64(v))
}

func (w *writer) raw(data []byte) {
	w.buffer = append(w.buffer, data...)
}

// reader reads little-endian fields from a buffer. The first failure is kept
// and every following read returns zero values.
type reader struct {
	buffer []byte
	offset int
	err    error

	schema *crypto.SignSchema
}

func newReader(buffer []byte, schema *crypto.SignSchema) *reader {
	return &reader{buffer: buffer, schema: schema}
}

func (r *reader) remaining() int {
	return len(r.buffer) - r.offset
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) next(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}

	if n < 0 || n > r.remaining() {
		r.fail(xerrors.Errorf("field of %d bytes at offset %d exceeds the %d remaining bytes: %w",
			n, r.offset, r.remaining(), catapult.ErrMalformedPayload))

		return make([]byte, n)
	}

	chunk := r.buffer[r.offset : r.offset+n]
	r.offset += n

	return chunk
}

func (r *reader) u8() uint8 {
	return r.next(1)[0]
}

func (r *reader) u16() uint16 {
	return binary.LittleEndian.Uint16(r.next(2))
}

func (r *reader) u32() uint32 {
	return binary.LittleEndian.Uint32(r.next(4))
}

func (r *reader) u64() numeric.UInt64 {
	return numeric.UInt64(binary.LittleEndian.Uint64(r.next(8)))
}

// reserved reads a 4-byte reserved field that must be zero.
func (r *reader) reserved() {
	offset := r.offset

	if r.u32() != 0 {
		r.fail(xerrors.Errorf("reserved field at offset %d is not zero: %w", offset, catapult.ErrMalformedPayload))
	}
}

func (r *reader) bytes(n int) []byte {
	return append([]byte{}, r.next(n)...)
}

func (r *reader) copyTo(dst []byte) {
	copy(dst, r.next(len(dst)))
}

// address reads an address and verifies its checksum when the reader has a
// schema. Alias addresses have no checksum.
func (r *reader) address() account.Address {
	var addr account.Address
	r.copyTo(addr[:])

	if r.err == nil && r.schema != nil && !addr.IsAlias() && !addr.VerifyChecksum(*r.schema) {
		r.fail(xerrors.Errorf("address %v has an invalid checksum: %w", addr, catapult.ErrInvalidIdentifier))
	}

	return addr
}

// done returns an error if a read failed or if bytes are left.
func (r *reader) done() error {
	if r.err != nil {
		return r.err
	}

	if r.remaining() != 0 {
		return xerrors.Errorf("%d trailing bytes: %w", r.remaining(), catapult.ErrMalformedPayload)
	}

	return nil
}
