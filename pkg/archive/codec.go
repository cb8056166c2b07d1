package archive

import (
	"bufio"
	"bytes"
	"encoding/json"

	"github.com/golang/snappy"
)

// EncodeWindow frames a window's samples as newline-delimited JSON, one
// line per sample, then snappy-compresses the whole block. This mirrors
// how CompressedWAL frames its segments: compress whole records rather
// than individual fields.
func EncodeWindow(w Window) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, sample := range w.Samples {
		if err := enc.Encode(sample); err != nil {
			return nil, err
		}
	}
	return snappy.Encode(nil, buf.Bytes()), nil
}

// DecodeWindow reverses EncodeWindow. Exported for the export-only
// consumers SPEC_FULL.md §3 mentions (the daemon itself never calls it).
func DecodeWindow(payload []byte) ([]Sample, error) {
	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, err
	}

	var samples []Sample
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var sample Sample
		if err := json.Unmarshal(line, &sample); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, scanner.Err()
}
