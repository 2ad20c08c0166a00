package rtfde

import (
	"bytes"
)

// BinRecord describes one `\binN <N raw bytes>` region excised from the
// stream before tokenization. Start/BinStart/End reference the ORIGINAL
// stream, for diagnostics; StrippedAt is the offset in the STRIPPED stream
// at which Data must be reinserted to reproduce the original exactly. The
// optional single delimiter space between `\binN` and the payload is left
// in the stripped stream (only the N payload bytes are excised), so
// splicing Data back in at StrippedAt reproduces the original byte for
// byte.
type BinRecord struct {
	Start      int // offset of the `\bin` control word
	BinStart   int // offset where the raw payload began
	End        int // offset one past the payload
	StrippedAt int
	Data       []byte
}

// stripBinaryPayloads excises every `\binN` payload from raw so the
// tokenizer never has to interpret binary bytes as RTF syntax. `\bin`
// without a numeric parameter is left untouched: the tokenizer will see it
// as an ordinary (malformed-looking) control word, per spec.
func stripBinaryPayloads(raw []byte) ([]byte, []BinRecord) {
	var records []BinRecord
	var out bytes.Buffer
	cursor := 0
	for i := 0; i+4 <= len(raw); i++ {
		if !matchesBin(raw, i) {
			continue
		}
		numStart := i + 4
		numEnd := numStart
		for numEnd < len(raw) && raw[numEnd] >= '0' && raw[numEnd] <= '9' {
			numEnd++
		}
		if numEnd == numStart {
			// `\bin` with no numeric argument: not a binary marker.
			continue
		}
		n, ok := parseSignedInt(string(raw[numStart:numEnd]))
		if !ok {
			continue
		}
		binStart := numEnd
		if binStart < len(raw) && raw[binStart] == ' ' {
			binStart++
		}
		if n <= 0 {
			out.Write(raw[cursor:numEnd])
			cursor = numEnd
			i = numEnd - 1
			continue
		}
		end := binStart + n
		if end > len(raw) {
			end = len(raw)
		}
		out.Write(raw[cursor:binStart])
		records = append(records, BinRecord{
			Start:      i,
			BinStart:   binStart,
			End:        end,
			StrippedAt: out.Len(),
			Data:       append([]byte(nil), raw[binStart:end]...),
		})
		cursor = end
		i = end - 1
	}
	out.Write(raw[cursor:])
	return out.Bytes(), records
}

func matchesBin(raw []byte, i int) bool {
	return i+4 <= len(raw) &&
		raw[i] == '\\' && raw[i+1] == 'b' && raw[i+2] == 'i' && raw[i+3] == 'n'
}

// SpliceBinaryRecords reinserts previously-extracted binary payloads into a
// stripped stream at the offsets stripBinaryPayloads recorded, reproducing
// the original bytes exactly.
func SpliceBinaryRecords(stripped []byte, records []BinRecord) []byte {
	if len(records) == 0 {
		return stripped
	}
	var out bytes.Buffer
	cursor := 0
	for _, rec := range records {
		if rec.StrippedAt < cursor || rec.StrippedAt > len(stripped) {
			continue
		}
		out.Write(stripped[cursor:rec.StrippedAt])
		out.Write(rec.Data)
		cursor = rec.StrippedAt
	}
	out.Write(stripped[cursor:])
	return out.Bytes()
}
