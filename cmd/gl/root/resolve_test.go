package root

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveID(t *testing.T) {
	ids := []string{"a1b2c3", "a1ffee", "9d0e11"}

	cases := []struct {
		arg     string
		want    string
		wantErr string
	}{
		{arg: "a1ffee", want: "a1ffee"},
		{arg: "2", want: "a1ffee"},
		{arg: "9d", want: "9d0e11"},
		{arg: "a1", wantErr: "ambiguous"},
		{arg: "4", wantErr: "not found"},
		{arg: "zz", wantErr: "not found"},
		{arg: "", wantErr: "required"},
	}
	for _, tc := range cases {
		got, err := resolveID("quest", ids, tc.arg)
		if tc.wantErr != "" {
			require.Error(t, err, tc.arg)
			assert.Contains(t, err.Error(), tc.wantErr)
			continue
		}
		require.NoError(t, err, tc.arg)
		assert.Equal(t, tc.want, got)
	}
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "Mon,Wed,Fri", formatDays([]int{1, 3, 5}))
	assert.Equal(t, "every day", formatDays([]int{0, 1, 2, 3, 4, 5, 6}))
	assert.Equal(t, "", formatDays(nil))
}
