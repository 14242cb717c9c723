package swapper

import (
	"encoding/json"
	"testing"

	"github.com/tokenswap/swapper/swaptest/assert"
)

func TestReadOptions(t *testing.T) {
	type entry struct {
		Key int `json:"key"`
	}

	cases := map[string]struct {
		json    string
		wantErr bool
		exp     []entry
	}{
		"happy path": {
			json: `{"list": [{"key": 1}, {"key": 2}]}`,
			exp:  []entry{{Key: 1}, {Key: 2}},
		},
		"missing key is not an error": {
			json: `{}`,
		},
		"wrong value": {
			json:    `{"list": [{"key": "one"}]}`,
			wantErr: true,
		},
		"wrong body": {
			json:    `{"list": "one"}`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o Options
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))

			var got []entry
			err := o.ReadOptions("list", &got)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want an error")
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.exp, got)
		})
	}
}
