package swapper_test

import (
	"testing"

	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/swaptest"
	"github.com/tokenswap/swapper/swaptest/assert"
)

func TestGetPath(t *testing.T) {
	assert.Equal(t, "offer/create", swapper.GetPath(&swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "offer/create"}}))
	assert.Equal(t, "(missing)", swapper.GetPath(&swaptest.Tx{}))
	assert.Equal(t, "(missing)", swapper.GetPath(&swaptest.Tx{Err: errors.ErrInvalidInput}))
}

type otherMsg struct {
	swaptest.Msg
}

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      swapper.Tx
		dst     interface{}
		wantErr *errors.Error
	}{
		"success": {
			tx:  &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "a/b"}},
			dst: &swaptest.Msg{},
		},
		"message cannot be read": {
			tx:      &swaptest.Tx{Err: errors.ErrInvalidInput},
			dst:     &swaptest.Msg{},
			wantErr: errors.ErrInvalidInput,
		},
		"destination is not a pointer": {
			tx:      &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "a/b"}},
			dst:     swaptest.Msg{},
			wantErr: errors.ErrHuman,
		},
		"destination of another type": {
			tx:      &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "a/b"}},
			dst:     &otherMsg{},
			wantErr: errors.ErrInvalidInput,
		},
		"invalid message": {
			tx:      &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "a/b", Err: errors.ErrInvalidAmount}},
			dst:     &swaptest.Msg{},
			wantErr: errors.ErrInvalidAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := swapper.LoadMsg(tc.tx, tc.dst)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, "a/b", tc.dst.(*swaptest.Msg).RoutePath)
		})
	}
}
