package model_test

import (
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionMap_ValueAndScan(t *testing.T) {
	m := model.OptionMap{"color": "black", "size": "M"}

	v, err := m.Value()
	require.NoError(t, err)

	var back model.OptionMap
	require.NoError(t, back.Scan(v))
	assert.Equal(t, m, back)
}

// NULL列は空マップとして読む
func TestOptionMap_ScanNil(t *testing.T) {
	var m model.OptionMap
	require.NoError(t, m.Scan(nil))
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

// nilマップは空オブジェクトとして書く
func TestOptionMap_NilValue(t *testing.T) {
	var m model.OptionMap
	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)
}

func TestStringList_ValueAndScan(t *testing.T) {
	l := model.StringList{"black", "brown"}

	v, err := l.Value()
	require.NoError(t, err)

	var back model.StringList
	require.NoError(t, back.Scan(v))
	assert.Equal(t, l, back)
}

func TestStringList_ScanString(t *testing.T) {
	var l model.StringList
	require.NoError(t, l.Scan(`["s","m","l"]`))
	assert.Equal(t, model.StringList{"s", "m", "l"}, l)
}
