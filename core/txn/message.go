package txn

import (
	"unicode/utf8"

	"go.dedis.ch/catapult"
	"golang.org/x/xerrors"
)

// MessageType defines how the payload of a message is interpreted.
type MessageType uint8

const (
	// PlainMessage is a message readable by anyone.
	PlainMessage MessageType = 0x00
	// EncryptedMessage is a message encrypted for the recipient.
	EncryptedMessage MessageType = 0x01
	// PersistentHarvestingDelegationMessage carries a delegated harvesting
	// request.
	PersistentHarvestingDelegationMessage MessageType = 0xFE
)

// MaxMessageSize is the maximum size of a message including its type byte.
const MaxMessageSize = 0xFF

// Message is the message attached to a transfer. The payload is UTF-8 text
// for every type, encrypted payloads being hex text.
type Message struct {
	Type    MessageType
	Payload string
}

// NewPlainMessage returns a plain message with the text.
func NewPlainMessage(text string) Message {
	return Message{
		Type:    PlainMessage,
		Payload: text,
	}
}

// Size returns the number of bytes of the message on the wire.
func (m Message) Size() int {
	return 1 + len(m.Payload)
}

// Bytes returns the bytes of the message on the wire.
func (m Message) Bytes() []byte {
	buffer := make([]byte, 0, m.Size())
	buffer = append(buffer, byte(m.Type))

	return append(buffer, m.Payload...)
}

func (m Message) validate() error {
	switch m.Type {
	case PlainMessage, EncryptedMessage, PersistentHarvestingDelegationMessage:
	default:
		return xerrors.Errorf("unknown message type %#x: %w", m.Type, catapult.ErrPreconditionViolation)
	}

	if !utf8.ValidString(m.Payload) {
		return xerrors.Errorf("message payload is not valid UTF-8: %w", catapult.ErrPreconditionViolation)
	}

	if m.Size() > MaxMessageSize {
		return xerrors.Errorf("message is %d bytes, max is %d: %w",
			m.Size(), MaxMessageSize, catapult.ErrPreconditionViolation)
	}

	return nil
}
