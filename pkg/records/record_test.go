package records

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalKeepsUnknownFields(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"id":7,"color":"brown","disposition":"closed","owner":"ops","tags":["a"]}`), &r)
	require.NoError(t, err)

	assert.Equal(t, 7, r.ID)
	assert.Equal(t, "brown", r.Color)
	assert.Equal(t, DispositionClosed, r.Disposition)
	require.Len(t, r.Extra, 2)
	assert.JSONEq(t, `"ops"`, string(r.Extra["owner"]))
	assert.JSONEq(t, `["a"]`, string(r.Extra["tags"]))
}

func TestRecord_UnmarshalErrors(t *testing.T) {
	for _, body := range []string{
		`[1,2]`,
		`{"id":"seven","color":"red","disposition":"open"}`,
		`{"id":1,"color":3,"disposition":"open"}`,
		`{"id":1,"color":"red","disposition":false}`,
		`null`,
	} {
		var r Record
		assert.Error(t, json.Unmarshal([]byte(body), &r), body)
	}
}

func TestRecord_MarshalRoundTripsExtra(t *testing.T) {
	in := `{"id":7,"color":"brown","disposition":"closed","owner":"ops"}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(in), &r))

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestOpenRecord_MarshalAddsIsPrimary(t *testing.T) {
	o := OpenRecord{
		Record:    Record{ID: 1, Color: "red", Disposition: DispositionOpen},
		IsPrimary: true,
	}

	out, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"color":"red","disposition":"open","isPrimary":true}`, string(out))

	var back OpenRecord
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, o, back)
}

func TestResult_MarshalJSON(t *testing.T) {
	res := Shape([]Record{
		{ID: 1, Color: "red", Disposition: DispositionOpen},
		{ID: 2, Color: "green", Disposition: DispositionClosed},
		{ID: 3, Color: "blue", Disposition: DispositionClosed},
	}, 1)

	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"previousPage": null,
		"nextPage": null,
		"ids": [1, 2, 3],
		"open": [{"id": 1, "color": "red", "disposition": "open", "isPrimary": true}],
		"closedPrimaryCount": 1
	}`, string(out))
}

func TestOptions_Page(t *testing.T) {
	assert.Equal(t, 1, Options{}.page())
	assert.Equal(t, 1, Options{Page: -4}.page())
	assert.Equal(t, 1, Options{Page: 1}.page())
	assert.Equal(t, 7, Options{Page: 7}.page())
}
