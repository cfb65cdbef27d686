package compiler

import (
	"encoding/json"
	"strings"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// sourceMapV3 is the Source Map v3 JSON shape.
type sourceMapV3 struct {
	Version        int      `json:"version"`
	File           string   `json:"file"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// GenerateSourceMap builds an identity line-to-line Source Map v3 for the
// submitted text. Each non-empty source line gets one segment encoding the
// relative line delta since the previous non-empty line; empty lines
// contribute an empty segment. The original text is embedded verbatim in
// sourcesContent.
func GenerateSourceMap(source string) string {
	lines := strings.Split(source, "\n")
	segments := make([]string, len(lines))

	lastLine := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// [generatedCol, sourceIdx, sourceLineDelta, sourceCol]
		segments[i] = encodeVLQ(0) + encodeVLQ(0) + encodeVLQ(i-lastLine) + encodeVLQ(0)
		lastLine = i
	}

	m := sourceMapV3{
		Version:        3,
		File:           "game.wasm",
		Sources:        []string{"game.ts"},
		SourcesContent: []string{source},
		Names:          []string{},
		Mappings:       strings.Join(segments, ";"),
	}

	data, _ := json.Marshal(m)
	return string(data)
}

// encodeVLQ encodes a signed integer as Base64-VLQ: the sign moves to the
// low bit, then the value is emitted in little-endian 5-bit groups with a
// continuation bit.
func encodeVLQ(v int) string {
	vlq := v << 1
	if v < 0 {
		vlq = (-v << 1) | 1
	}

	var b strings.Builder
	for {
		digit := vlq & 0x1f
		vlq >>= 5
		if vlq != 0 {
			digit |= 0x20
		}
		b.WriteByte(base64Alphabet[digit])
		if vlq == 0 {
			return b.String()
		}
	}
}
