package category_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-day-planner/internal/category"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    category.Category
		wantErr bool
	}{
		{"cs-study", category.CSStudy, false},
		{"study-cs", category.CSStudy, false},
		{"Study-Econ", category.EconStudy, false},
		{" gym ", category.Gym, false},
		{"reading", category.Reading, false},
		{"personal", category.Personal, false},
		{"cooking", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := category.Parse(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got)
	}
}

func TestEveryCategoryHasMetadata(t *testing.T) {
	seen := map[string]category.Category{}
	for _, c := range category.All() {
		require.True(t, c.Valid())
		m := c.Meta()
		require.NotEmpty(t, m.Label)
		require.Regexp(t, `^#[0-9A-F]{6}$`, m.Color)
		if prev, dup := seen[m.Color]; dup {
			t.Errorf("%s and %s share color %s", prev, c, m.Color)
		}
		seen[m.Color] = c
	}
}

func TestPersonalLabelIsShared(t *testing.T) {
	// Tracker, feed and suggestion views all read the same label.
	require.Equal(t, "Personal", category.Personal.Label())
}

func TestFallbackMeta(t *testing.T) {
	require.Equal(t, "#6B7280", category.Category("").Color())
	require.Equal(t, "Other", category.Category("").Label())
	require.Equal(t, "meetings", category.Category("meetings").Label())
}

func TestJSONRoundTripUsesCanonicalName(t *testing.T) {
	var got struct {
		C category.Category `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"c":"study-cs"}`), &got))
	require.Equal(t, category.CSStudy, got.C)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	require.JSONEq(t, `{"c":"cs-study"}`, string(out))

	require.Error(t, json.Unmarshal([]byte(`{"c":"bogus"}`), &got))
}
