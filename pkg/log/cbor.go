package log

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// traceEncMode is the CBOR encoder mode for trace events.
// Configured for nanosecond-precision timestamps and deterministic encoding.
var traceEncMode cbor.EncMode

// traceDecMode is the CBOR decoder mode for trace events.
// Configured strictly: unknown keys, duplicate keys and indefinite lengths
// are rejected.
var traceDecMode cbor.DecMode

// traceMaxNesting bounds decoding depth. An event is a map holding at most
// one level of payload maps; 4 is the smallest limit the decoder accepts.
const traceMaxNesting = 4

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	traceEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create trace CBOR encoder mode: %v", err))
	}

	// Trace files are only written by this package, so anything outside
	// the Event schema means a corrupt or foreign file.
	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthForbidden,
		MaxNestedLevels:   traceMaxNesting,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}
	traceDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create trace CBOR decoder mode: %v", err))
	}
}

// EncodeEvent encodes an Event to CBOR bytes using integer keys for compactness.
func EncodeEvent(event Event) ([]byte, error) {
	return traceEncMode.Marshal(event)
}

// DecodeEvent decodes CBOR bytes into an Event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := traceDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewEncoder creates a CBOR encoder for trace events that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return traceEncMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder for trace events that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return traceDecMode.NewDecoder(r)
}
