package mkv

import (
	"errors"
	"fmt"
	"io"
)

// Element IDs used by the reader, with their length markers intact.
const (
	idEBML         = 0x1A45DFA3
	idSegment      = 0x18538067
	idTracks       = 0x1654AE6B
	idCluster      = 0x1F43B675
	idTrackEntry   = 0xAE
	idTrackNumber  = 0xD7
	idTrackType    = 0x83
	idCodecID      = 0x86
	idName         = 0x536E
	idLanguage     = 0x22B59C
	idLanguageIETF = 0x22B59D
)

const trackTypeSubtitle = 0x11

var errInvalidVint = errors.New("invalid EBML variable-length integer")

// readVint decodes an EBML variable-length integer. IDs keep their length
// marker bit; sizes drop it. unknown reports the reserved all-ones size.
func readVint(r io.ByteReader, keepMarker bool) (value uint64, length int, unknown bool, err error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, 0, false, err
	}
	if first == 0 {
		return 0, 0, false, errInvalidVint
	}
	length = 1
	for mask := byte(0x80); first&mask == 0; mask >>= 1 {
		length++
	}
	if keepMarker && length > 4 {
		return 0, 0, false, errInvalidVint
	}

	value = uint64(first)
	if !keepMarker {
		value &= uint64(0xFF >> length)
	}
	allOnes := value == uint64(0xFF>>length)
	for i := 1; i < length; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, 0, false, unexpected(err)
		}
		value = value<<8 | uint64(b)
		if b != 0xFF {
			allOnes = false
		}
	}
	return value, length, !keepMarker && allOnes, nil
}

type header struct {
	id      uint64
	size    uint64
	unknown bool
	length  uint64 // encoded header bytes
}

func readHeader(r io.ByteReader) (header, error) {
	id, idLen, _, err := readVint(r, true)
	if err != nil {
		return header{}, err
	}
	size, sizeLen, unknown, err := readVint(r, false)
	if err != nil {
		return header{}, unexpected(err)
	}
	return header{id: id, size: size, unknown: unknown, length: uint64(idLen + sizeLen)}, nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func readUint(data []byte) (uint64, error) {
	if len(data) > 8 {
		return 0, fmt.Errorf("unsigned integer element of %d bytes", len(data))
	}
	var v uint64
	for _, b := range data {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

func readString(data []byte) string {
	end := len(data)
	for end > 0 && data[end-1] == 0 {
		end--
	}
	return string(data[:end])
}
