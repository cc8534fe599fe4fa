package patterns

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/mpnkit/internal/errors"
	"github.com/standardbeagle/mpnkit/internal/types"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New()
	require.NoError(t, r.Register(types.MOSFETAOS, `^AO[DTBIWK]\d{3,4}`))
	require.NoError(t, r.Register(types.OpAmp, `^LM358`))
	require.NoError(t, r.Register(types.OpAmpTI, `^LM358`))
	require.NoError(t, r.Register(types.MOSFET, `^AO[DTBIWK]\d{3,4}`))
	require.NoError(t, r.Register(types.OpAmp, `^LM324`))
	return r
}

func TestRegistryMatchInsertionOrder(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, []types.ComponentType{types.OpAmp, types.OpAmpTI}, r.Match("lm358n"))
	assert.Equal(t, []types.ComponentType{types.MOSFETAOS, types.MOSFET}, r.Match("AOD4184A"))
	assert.Equal(t, []types.ComponentType{types.OpAmp}, r.Match("LM324"))
	assert.Empty(t, r.Match("XYZ123"))
	assert.Empty(t, r.Match(""))
	assert.Empty(t, r.Match("   "))
}

func TestRegistryMatchesAndRules(t *testing.T) {
	r := newTestRegistry(t)

	assert.True(t, r.Matches("LM324DR", types.OpAmp))
	assert.False(t, r.Matches("LM324DR", types.OpAmpTI))
	assert.False(t, r.Matches("", types.OpAmp))

	rules := r.Rules(types.OpAmp)
	require.Len(t, rules, 2)
	assert.Equal(t, "LM358", rules[0].Prefix)
	assert.Equal(t, "LM324", rules[1].Prefix)

	assert.Equal(t, 5, r.Len())
	assert.Equal(t, []types.ComponentType{types.MOSFETAOS, types.OpAmp, types.OpAmpTI, types.MOSFET}, r.Types())

	matched := r.MatchRules("LM358")
	require.Len(t, matched, 2)
	assert.Equal(t, types.OpAmpTI, matched[1].Type)
}

func TestRegistryRejectsBadInput(t *testing.T) {
	r := New()

	err := r.Register(types.OpAmp, `^(LM358`)
	require.Error(t, err)
	var patErr *errors.PatternError
	require.True(t, errors.As(err, &patErr))
	assert.Equal(t, "OPAMP", patErr.ComponentType)

	err = r.Register(types.ComponentType("FLUX_CAPACITOR"), `^FC`)
	assert.ErrorIs(t, err, errors.ErrUnknownType)

	assert.Panics(t, func() { r.MustRegister(types.OpAmp, `[`) })
	assert.Equal(t, 0, r.Len())
}

func TestRegistryFreeze(t *testing.T) {
	r := newTestRegistry(t)
	r.Freeze()
	r.Freeze()

	assert.True(t, r.Frozen())
	err := r.Register(types.OpAmp, `^TL07`)
	assert.ErrorIs(t, err, errors.ErrFrozen)
	assert.Equal(t, 5, r.Len())
}

func TestRegistryConcurrentReadsAfterFreeze(t *testing.T) {
	r := newTestRegistry(t)
	r.Freeze()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.Len(t, r.Match("LM358"), 2)
			}
		}()
	}
	wg.Wait()
}

func TestLiteralPrefix(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{`^AOTL\d+`, "AOTL"},
		{`^AO\d{4}`, "AO"},
		{`^W25[QNX]\d+`, "W25"},
		{`^(IRF|IRL)\d+`, "IR"},
		{`^SN74(LS|HC)?\d+`, "SN74"},
		{`^1N400[1-7]$`, "1N400"},
		{`^LM358$`, "LM358"},
		{`\AESP32`, "ESP32"},
		{`LM358`, ""},
		{`^(?i)lm358`, ""},
		{`^[A-Z]+\d`, ""},
		{`^(`, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LiteralPrefix(tt.pattern), "pattern %s", tt.pattern)
	}
}
