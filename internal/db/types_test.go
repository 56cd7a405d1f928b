package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArray_ScanAndValue(t *testing.T) {
	var a StringArray
	err := a.Scan([]byte(`["New York, NY","Remote"]`))
	require.NoError(t, err)
	assert.Equal(t, StringArray{"New York, NY", "Remote"}, a)

	v, err := a.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["New York, NY","Remote"]`, string(v.([]byte)))
}

func TestStringArray_ScanNil(t *testing.T) {
	var a StringArray
	err := a.Scan(nil)
	require.NoError(t, err)
	assert.Equal(t, StringArray{}, a)
}

func TestStringArray_ScanString(t *testing.T) {
	var a StringArray
	err := a.Scan(`["Remote"]`)
	require.NoError(t, err)
	assert.Equal(t, StringArray{"Remote"}, a)
}

func TestStringArray_ValueNil(t *testing.T) {
	var a StringArray
	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(v.([]byte)))
}

func TestStringArray_ScanUnsupported(t *testing.T) {
	var a StringArray
	assert.Error(t, a.Scan(42))
}
