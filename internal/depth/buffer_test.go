package depth

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	t.Run("accepts matching length", func(t *testing.T) {
		buf, err := NewBuffer(3, 2, make([]uint16, 6))
		require.NoError(t, err)
		assert.Equal(t, 3, buf.Width)
		assert.Equal(t, 2, buf.Height)
		assert.Len(t, buf.Samples, 6)
	})

	t.Run("rejects short buffer", func(t *testing.T) {
		_, err := NewBuffer(3, 2, make([]uint16, 5))
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("rejects long buffer", func(t *testing.T) {
		_, err := NewBuffer(3, 2, make([]uint16, 7))
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		_, err := NewBuffer(0, 2, nil)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

func TestBuffer_At(t *testing.T) {
	buf, err := NewBuffer(3, 2, []uint16{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	assert.Equal(t, uint16(1), buf.At(0, 0))
	assert.Equal(t, uint16(3), buf.At(2, 0))
	assert.Equal(t, uint16(4), buf.At(0, 1))
	assert.Equal(t, uint16(6), buf.At(2, 1))

	assert.True(t, buf.Contains(2, 1))
	assert.False(t, buf.Contains(3, 1))
	assert.False(t, buf.Contains(0, -1))
}

func TestBuffer_Summarize(t *testing.T) {
	buf, err := NewBuffer(3, 2, []uint16{0, 900, 650, 0, 0, 1200})
	require.NoError(t, err)

	assert.Equal(t, Summary{Valid: 3, Invalid: 3, Min: 650, Max: 1200}, buf.Summarize())

	empty, err := NewBuffer(2, 1, []uint16{0, 0})
	require.NoError(t, err)
	assert.Equal(t, Summary{Invalid: 2}, empty.Summarize())
}

func TestReadRaw(t *testing.T) {
	// Little-endian: 0x01F4 = 500, 0x03E8 = 1000.
	data := []byte{0xF4, 0x01, 0x00, 0x00, 0xE8, 0x03, 0x01, 0x00}

	buf, err := ReadRaw(bytes.NewReader(data), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint16{500, 0, 1000, 1}, buf.Samples)
}

func TestReadRaw_DimensionMismatch(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", make([]byte, 6)},
		{"too long", make([]byte, 10)},
		{"odd length", make([]byte, 7)},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRaw(bytes.NewReader(tt.data), 2, 2)
			assert.ErrorIs(t, err, ErrDimensionMismatch)
		})
	}
}

func TestWriteRaw_ReadRaw(t *testing.T) {
	buf, err := NewBuffer(4, 3, []uint16{0, 1, 500, 65535, 42, 700, 0, 0, 9000, 3, 2, 1})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteRaw(&out, buf))
	assert.Equal(t, 24, out.Len())

	back, err := ReadRaw(&out, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, buf.Samples, back.Samples)
}

func TestLoadRaw(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "DepthData.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xBC, 0x02, 0x00, 0x00}, 0o644))

	buf, err := LoadRaw(path, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint16{700, 0}, buf.Samples)

	_, err = LoadRaw(path, 3, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = LoadRaw(filepath.Join(dir, "missing.bin"), 2, 1)
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestRect_NormalizeClamp(t *testing.T) {
	r := Rect{X0: 8, Y0: 1, X1: -2, Y1: 12}

	n := r.Normalize()
	assert.Equal(t, Rect{X0: -2, Y0: 1, X1: 8, Y1: 12}, n)
	assert.True(t, n.Normalized())
	assert.False(t, r.Normalized())

	c := n.Clamp(5, 10)
	assert.Equal(t, Rect{X0: 0, Y0: 1, X1: 5, Y1: 10}, c)
	assert.Equal(t, 45, c.Area())
	assert.False(t, c.Empty())

	assert.True(t, Rect{X0: 3, Y0: 0, X1: 3, Y1: 9}.Empty())
	assert.Equal(t, c.Image(), r.Normalize().Clamp(5, 10).Image())
}
