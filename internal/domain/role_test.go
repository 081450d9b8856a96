package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "author", want: RoleAuthor},
		{in: "reader", want: RoleReader},
		{in: "Author", wantErr: true},
		{in: "admin", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, got.String())
	}
}

func TestRole_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{RoleAuthor})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"author"}`, string(b))

	var in struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"reader"}`), &in))
	assert.Equal(t, RoleReader, in.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"editor"}`), &in))
}

func TestRole_ValueScan(t *testing.T) {
	t.Parallel()

	v, err := RoleAuthor.Value()
	require.NoError(t, err)
	assert.Equal(t, "author", v)

	_, err = Role(0).Value()
	assert.Error(t, err)

	var r Role
	require.NoError(t, r.Scan([]byte("reader")))
	assert.Equal(t, RoleReader, r)
	assert.Error(t, r.Scan(42))
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusInactive.Valid())
	assert.False(t, Status("active").Valid())
	assert.False(t, Status("").Valid())
}
