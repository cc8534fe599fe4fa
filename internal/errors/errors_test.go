package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidAttributeError(t *testing.T) {
	err := NewInvalidAttributeError("capacitance", "1O0u", nil)

	assert.Equal(t, ErrorTypeInvalidAttribute, err.Type)
	assert.True(t, Is(err, ErrInvalidAttribute))
	assert.True(t, stderrors.Is(err, ErrInvalidAttribute))
	assert.Contains(t, err.Error(), `invalid capacitance value "1O0u"`)
}

func TestInvalidAttributeErrorKeepsCause(t *testing.T) {
	cause := stderrors.New("strconv: bad digit")
	err := NewInvalidAttributeError("resistance", "4X7", cause)

	assert.True(t, Is(err, ErrInvalidAttribute), "sentinel must be reachable")
	assert.Contains(t, err.Error(), "4X7")
	assert.Equal(t, ErrorTypeInvalidAttribute, TypeOf(Wrap(err, "decoding")))
}

func TestPatternError(t *testing.T) {
	underlying := stderrors.New("missing closing )")
	err := NewPatternError("OPAMP_TI", "^(LM358", underlying)

	assert.Equal(t, ErrorTypePattern, err.Type)
	assert.True(t, stderrors.Is(err, underlying))
	assert.Equal(t, `pattern "^(LM358" for OPAMP_TI rejected: missing closing )`, err.Error())
}

func TestConfigError(t *testing.T) {
	underlying := stderrors.New("must be registration or specificity")
	err := NewConfigError("engine.ambiguity", "random", underlying)

	assert.True(t, stderrors.Is(err, underlying))
	assert.Equal(t, "config error for field engine.ambiguity (value random): must be registration or specificity", err.Error())

	noValue := NewConfigError("engine.workers", "", underlying)
	assert.Equal(t, "config error for field engine.workers: must be registration or specificity", noValue.Error())
}

func TestMultiError(t *testing.T) {
	t.Run("filters nil", func(t *testing.T) {
		err := NewMultiError([]error{nil, nil})
		assert.Empty(t, err.Errors)
		assert.NoError(t, err.ErrorOrNil())
		assert.Equal(t, "no errors", err.Error())
	})

	t.Run("single error message passes through", func(t *testing.T) {
		err := NewMultiError([]error{stderrors.New("one")})
		require.Error(t, err.ErrorOrNil())
		assert.Equal(t, "one", err.Error())
	})

	t.Run("unwraps every error", func(t *testing.T) {
		a := stderrors.New("a")
		b := NewConfigError("x", "", ErrUnknownType)
		err := NewMultiError([]error{a, b})
		assert.True(t, stderrors.Is(err, a))
		assert.True(t, stderrors.Is(err, ErrUnknownType))
		assert.Contains(t, err.Error(), "2 errors")
	})
}

func TestTypeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, ErrorTypeInternal, TypeOf(stderrors.New("boom")))
	assert.Equal(t, ErrorTypeConfig, TypeOf(NewConfigError("f", "", ErrUnknownType)))
}
