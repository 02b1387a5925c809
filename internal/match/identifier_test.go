package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractModelNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"gpu spaced", "NVIDIA GeForce RTX 3080", []string{"rtx3080"}},
		{"gpu suffix", "GeForce RTX 3080 Ti", []string{"rtx3080", "3080ti"}},
		{"glued suffix", "GTX 980Ti", []string{"gtx980ti", "980ti"}},
		{"cpu dashed", "Intel Core i7-12700K", []string{"i712700k", "12700k"}},
		{"chipset", "B550", []string{"b550"}},
		{"chipset with board suffix", "ASUS PRIME X570-P", []string{"x570p", "x570"}},
		{"no identifier", "Cable Ties", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractModelNumbers(tc.input))
		})
	}
}

func TestExtractModelNumbers_FirstIsGroupingKey(t *testing.T) {
	a := ExtractModelNumbers("AMD Ryzen 9 9950X3D")
	b := ExtractModelNumbers("AMD Ryzen 9 9950X3D 16-Core Processor")
	require.NotEmpty(t, a)
	require.NotEmpty(t, b)
	assert.Equal(t, "ryzen9", a[0])
	assert.Equal(t, a[0], b[0])
}

func TestExtractModelNumbers_Deterministic(t *testing.T) {
	name := "MSI GeForce RTX 4090 SUPRIM X 24G (912-V510-001)"
	first := ExtractModelNumbers(name)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExtractModelNumbers(name))
	}
}

func TestExtractIdentifiers_Span(t *testing.T) {
	name := "ASUS TUF RTX 4070 OC"
	ids := extractIdentifiers(name)
	require.NotEmpty(t, ids)
	assert.Equal(t, "RTX 4070", name[ids[0].start:ids[0].end])
}
