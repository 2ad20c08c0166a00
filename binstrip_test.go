package rtfde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripBinaryPayloads_ExcisesPayloadAndRecordsOffsets(t *testing.T) {
	raw := []byte(`{\pict\bin4 ABCDtail}`)
	stripped, records := stripBinaryPayloads(raw)

	require.Len(t, records, 1)
	assert.Equal(t, []byte("ABCD"), records[0].Data)
	assert.Equal(t, []byte(`{\pict\bin4 tail}`), stripped)
}

func TestStripBinaryPayloads_ZeroLengthIsNoOp(t *testing.T) {
	raw := []byte(`{\bin0 tail}`)
	stripped, records := stripBinaryPayloads(raw)
	assert.Empty(t, records)
	assert.Equal(t, raw, stripped)
}

func TestStripBinaryPayloads_NoBinIsUnchanged(t *testing.T) {
	raw := []byte(`{\rtf1\ansi hello}`)
	stripped, records := stripBinaryPayloads(raw)
	assert.Empty(t, records)
	assert.Equal(t, raw, stripped)
}

func TestSpliceBinaryRecords_ReinsertsPayloadAtRecordedOffset(t *testing.T) {
	raw := []byte(`{\pict\bin4 ABCDtail}`)
	stripped, records := stripBinaryPayloads(raw)
	restored := SpliceBinaryRecords(stripped, records)
	assert.Equal(t, raw, restored)
}
