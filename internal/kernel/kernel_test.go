package kernel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cksum/testutil"
)

var allKinds = []Kind{Slice8, Chorba, Fold128, Fold256, Fold512}

// engineLengths crosses every internal threshold: slice strides, chorba
// small strides and tail, fold block/round thresholds, and the large-chorba
// priming, mixed and steady-state phases.
var engineLengths = []int{
	0, 1, 3, 4, 7, 8, 9, 15, 16, 17, 31, 32, 33, 63, 64, 65, 72, 73,
	127, 128, 129, 511, 512, 513, 640, 641, 1215, 1216, 1217, 2048, 4096,
	118959, 118960, 118961, 119472, 238431, 238432, 238433, 250000,
}

func TestTableMatchesBitSerial(t *testing.T) {
	for i := 0; i < 256; i++ {
		require.Equal(t, testutil.RefUpdate(0, []byte{byte(i)}), crctab[0][i], "row 0 byte %#x", i)
	}
	// Row k advances row 0 by k zero bytes.
	for row := 1; row < 8; row++ {
		p := make([]byte, row+1)
		for i := 0; i < 256; i += 17 {
			p[0] = byte(i)
			require.Equal(t, testutil.RefUpdate(0, p), crctab[row][i], "row %d byte %#x", row, i)
		}
	}
}

func TestUpdateMatchesReference(t *testing.T) {
	data := testutil.Bytes(260000)

	for _, n := range engineLengths {
		p := data[:n]
		want := testutil.RefUpdate(0, p)
		for _, k := range allKinds {
			assert.Equal(t, want, Update(k, 0, p), "kind=%s len=%d", k, n)
		}
	}
}

func TestUpdateNonZeroRegister(t *testing.T) {
	data := testutil.Bytes(250000)

	for _, n := range []int{0, 1, 3, 5, 37, 1217, 5000, 119000, 240000} {
		p := data[:n]
		const start = 0xDEADBEEF
		want := testutil.RefUpdate(start, p)
		for _, k := range allKinds {
			assert.Equal(t, want, Update(k, start, p), "kind=%s len=%d", k, n)
		}
	}
}

func TestUpdateComposes(t *testing.T) {
	data := testutil.Bytes(250000)

	for _, n := range []int{1, 9, 73, 1216, 5000, 119000, 240000} {
		p := data[:n]
		want := testutil.RefUpdate(0, p)
		for _, cut := range []int{0, 1, n / 3, n / 2, n} {
			for _, k := range allKinds {
				got := Update(k, Update(k, 0, p[:cut]), p[cut:])
				assert.Equal(t, want, got, "kind=%s len=%d cut=%d", k, n, cut)
			}
		}
	}
}

// The raw register is GF(2)-linear in the data for a fixed length.
func TestUpdateLinearity(t *testing.T) {
	a := testutil.BytesSeed(4096, 1)
	b := testutil.BytesSeed(4096, 2)
	xor := make([]byte, len(a))
	for i := range xor {
		xor[i] = a[i] ^ b[i]
	}

	for _, k := range allKinds {
		got := Update(k, 0, a) ^ Update(k, 0, b)
		assert.Equal(t, Update(k, 0, xor), got, "kind=%s", k)
	}
}

func TestUpdateRandomSweep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping randomized sweep in short mode")
	}

	for trial := 0; trial < 25; trial++ {
		seed := uint32(0x9E3779B9 * (trial + 1))
		n := int(seed % 250000)
		p := testutil.BytesSeed(n, seed)
		want := Update(Slice8, 0, p)
		for _, k := range allKinds[1:] {
			require.Equal(t, want, Update(k, 0, p), "kind=%s seed=%#x len=%d", k, seed, n)
		}
	}
}

func TestFinalizeKnownVectors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{name: "empty", data: nil, want: 4294967295},
		{name: "single zero byte", data: []byte{0x00}, want: 4215202376},
		{name: "digits", data: []byte("123456789"), want: 930766865},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crc := Update(Slice8, 0, tt.data)
			assert.Equal(t, tt.want, Finalize(crc, uint64(len(tt.data))))
		})
	}
}

func TestKindString(t *testing.T) {
	for _, k := range allKinds {
		parsed, ok := ParseKind(k.String())
		require.True(t, ok, "kind=%s", k)
		assert.Equal(t, k, parsed)
	}

	_, ok := ParseKind("bogus")
	assert.False(t, ok)

	parsed, ok := ParseKind("  FOLD256 ")
	require.True(t, ok)
	assert.Equal(t, Fold256, parsed)
}

func TestAvailable(t *testing.T) {
	assert.True(t, Available(Slice8, 0))
	assert.True(t, Available(Chorba, 0))
	assert.False(t, Available(Fold128, 0))
	assert.True(t, Available(Fold128, CapCLMUL))
	assert.True(t, Available(Fold128, CapPMULL))
	assert.False(t, Available(Fold256, CapCLMUL))
	assert.True(t, Available(Fold256, CapCLMUL256))
	assert.False(t, Available(Fold512, CapCLMUL256))
	assert.True(t, Available(Fold512, CapCLMUL512))
}

func TestSelect(t *testing.T) {
	t.Setenv(kernelEnv, "")

	tests := []struct {
		caps Capability
		want Kind
	}{
		{caps: 0, want: Chorba},
		{caps: CapCLMUL, want: Fold128},
		{caps: CapPMULL, want: Fold128},
		{caps: CapCLMUL | CapCLMUL256, want: Fold256},
		{caps: CapCLMUL | CapCLMUL256 | CapCLMUL512, want: Fold512},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Select(tt.caps), "caps=%08b", tt.caps)
	}
}

func TestDetectedSelection(t *testing.T) {
	t.Setenv(kernelEnv, "")

	// Whatever the startup probe found, selection must admit the pick and
	// the picked engine must agree with the bit-serial reference.
	caps := Detect()
	k := Select(caps)
	require.True(t, Available(k, caps), "caps=%08b kernel=%s", caps, k)

	data := testutil.Bytes(5000)
	assert.Equal(t, testutil.RefUpdate(0, data), Update(k, 0, data), "kernel=%s", k)
}

func TestSelectEnvOverride(t *testing.T) {
	t.Setenv(kernelEnv, "slice8")
	assert.Equal(t, Slice8, Select(CapCLMUL|CapCLMUL256|CapCLMUL512))

	// Overrides naming an engine the capability set does not admit fall back
	// to auto-selection, as do unparseable values.
	t.Setenv(kernelEnv, "fold512")
	assert.Equal(t, Fold128, Select(CapCLMUL))

	t.Setenv(kernelEnv, "warp-drive")
	assert.Equal(t, Chorba, Select(0))
}

func TestLengthFold(t *testing.T) {
	// Finalize is the length fold plus complement.
	crc := Update(Slice8, 0, []byte("123456789"))
	assert.Equal(t, ^LengthFold(crc, 9), Finalize(crc, 9))

	// Zero length folds nothing.
	assert.Equal(t, crc, LengthFold(crc, 0))
}

func ExampleUpdate() {
	crc := Update(Slice8, 0, []byte("123456789"))
	fmt.Println(Finalize(crc, 9))
	// Output: 930766865
}
