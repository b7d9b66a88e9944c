package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "wrapped error with op",
			err:  Input("read input", fs.ErrNotExist),
			want: "input error (read input): file does not exist",
		},
		{
			name: "message and wrapped error",
			err:  New(ErrorTypeProgressStore, "open", "record log locked", errors.New("busy")),
			want: "progress_store error (open): record log locked: busy",
		},
		{
			name: "message only",
			err:  New(ErrorTypeConfig, "", "left base url is required", nil),
			want: "config error: left base url is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestUnwrapAndClassify(t *testing.T) {
	err := fmt.Errorf("pair 3: %w", Composite("decode left", errors.New("png: invalid format")))

	assert.Equal(t, ErrorTypeComposite, TypeOf(err))
	assert.True(t, Is(err, ErrorTypeComposite))
	assert.False(t, Is(err, ErrorTypeCapture))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(errors.New("plain")))

	wrapped := Input("open", fs.ErrNotExist)
	assert.ErrorIs(t, wrapped, fs.ErrNotExist)
}

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(ErrorTypeCapture))
	for _, typ := range []ErrorType{ErrorTypeInput, ErrorTypeComposite, ErrorTypeProgressStore, ErrorTypeConfig, ErrorTypeUnknown} {
		assert.True(t, IsFatal(typ), "expected %s to be fatal", typ)
	}
}
