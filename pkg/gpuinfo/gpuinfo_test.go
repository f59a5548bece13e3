package gpuinfo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSMIMemory(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want uint64
		ok   bool
	}{
		{
			name: "single gpu",
			out:  "24576\n",
			want: 24576 * 1024 * 1024,
			ok:   true,
		},
		{
			name: "first gpu wins",
			out:  "24576\n11264\n",
			want: 24576 * 1024 * 1024,
			ok:   true,
		},
		{
			name: "fractional mib",
			out:  "16384.00\n",
			want: 16384 * 1024 * 1024,
			ok:   true,
		},
		{
			name: "unified memory device skipped",
			out:  "[N/A]\n8192\n",
			want: 8192 * 1024 * 1024,
			ok:   true,
		},
		{
			name: "garbage",
			out:  "not a number\n",
			ok:   false,
		},
		{
			name: "empty",
			out:  "",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSMIMemory(tt.out)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
