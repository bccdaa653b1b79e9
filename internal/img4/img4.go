// Package img4 performs a shallow sanity check on decrypted firmware containers.
// It does not parse the container; it only looks for the signs of an IMG4 payload.
package img4

import "bytes"

// Format describes what the leading bytes of a payload look like
type Format string

const (
	// FormatASN1Sequence means the payload starts with a DER SEQUENCE tag
	FormatASN1Sequence Format = "asn1-sequence"

	// FormatMarkers means an IM4P or IMG4 tag appears in the payload header
	FormatMarkers Format = "img4-markers"

	// FormatUnknown means neither check matched
	FormatUnknown Format = "unknown"
)

const (
	asn1SequenceTag = 0x30

	// HeaderWindow is how many leading bytes are searched for markers
	HeaderWindow = 100
)

var markers = [][]byte{[]byte("IM4P"), []byte("IMG4")}

// Detect classifies a decrypted payload
func Detect(data []byte) Format {
	if len(data) == 0 {
		return FormatUnknown
	}

	if data[0] == asn1SequenceTag {
		return FormatASN1Sequence
	}

	header := data
	if len(header) > HeaderWindow {
		header = header[:HeaderWindow]
	}
	for _, m := range markers {
		if bytes.Contains(header, m) {
			return FormatMarkers
		}
	}

	return FormatUnknown
}

// Recognized reports whether the format looks like an IMG4 container
func (f Format) Recognized() bool {
	return f == FormatASN1Sequence || f == FormatMarkers
}

// Description returns a human-readable label for reports
func (f Format) Description() string {
	switch f {
	case FormatASN1Sequence:
		return "Valid IMG4 format (ASN.1 SEQUENCE)"
	case FormatMarkers:
		return "Contains IMG4 markers"
	default:
		return "Unrecognized payload"
	}
}
