package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/standardbeagle/mpnkit/internal/errors"
	"github.com/standardbeagle/mpnkit/internal/patterns"
	"github.com/standardbeagle/mpnkit/internal/types"
)

func overlappingCustoms(t *testing.T) []Handler {
	t.Helper()
	broad, err := NewCustom("broad", []CustomPattern{{Type: types.OpAmp, Pattern: `^LM\d+`}})
	require.NoError(t, err)
	narrow, err := NewCustom("narrow", []CustomPattern{{Type: types.OpAmp, Pattern: `^LM358`}})
	require.NoError(t, err)
	return []Handler{broad, narrow}
}

func TestResolveRegistrationOrder(t *testing.T) {
	set := NewSet(overlappingCustoms(t))
	reg := patterns.New()
	require.NoError(t, set.Register(reg))

	res, ok := set.Resolve("LM358N", reg)
	require.True(t, ok)
	assert.Equal(t, "broad", res.Handler.Name())
	assert.Equal(t, types.OpAmp, res.Type)
}

func TestResolveSpecificity(t *testing.T) {
	set := NewSet(overlappingCustoms(t), WithPolicy(PolicySpecificity))
	reg := patterns.New()
	require.NoError(t, set.Register(reg))

	res, ok := set.Resolve("LM358N", reg)
	require.True(t, ok)
	assert.Equal(t, "narrow", res.Handler.Name())

	// only the broad rule matches
	res, ok = set.Resolve("LM324N", reg)
	require.True(t, ok)
	assert.Equal(t, "broad", res.Handler.Name())
}

func TestHandlerSpecificityCountsOwnRules(t *testing.T) {
	hs := overlappingCustoms(t)
	broad, narrow := hs[0].(*Custom), hs[1].(*Custom)

	assert.Equal(t, 2, broad.specificity("LM358N"))
	assert.Equal(t, 5, narrow.specificity("LM358N"))
	assert.Equal(t, -1, narrow.specificity("LM324N"))
	assert.Equal(t, -1, broad.specificity("TL072"))
}

func TestResolveSpecificityTieKeepsOrder(t *testing.T) {
	// LM358DR2G is claimed by both; each rule's literal prefix is "LM".
	for _, order := range [][]Handler{{NewOnsemi(), NewTI()}, {NewTI(), NewOnsemi()}} {
		set := NewSet(order, WithPolicy(PolicySpecificity))
		reg := patterns.New()
		require.NoError(t, set.Register(reg))

		res, ok := set.Resolve("LM358DR2G", reg)
		require.True(t, ok)
		assert.Equal(t, order[0].Name(), res.Handler.Name())
	}
}

func TestResolveLogsAmbiguityAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	set := NewSet(overlappingCustoms(t), WithLogger(zap.New(core)))
	reg := patterns.New()
	require.NoError(t, set.Register(reg))

	_, ok := set.Resolve("LM358N", reg)
	require.True(t, ok)

	entries := logs.FilterMessage("ambiguous mpn").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "broad", entries[0].ContextMap()["winner"])
	assert.Equal(t, "narrow", entries[0].ContextMap()["runner_up"])

	_, ok = set.Resolve("LM324N", reg)
	require.True(t, ok)
	assert.Len(t, logs.FilterMessage("ambiguous mpn").All(), 1)
}

func TestResolveBlank(t *testing.T) {
	set, reg := newBuiltinSet(t)
	_, ok := set.Resolve("", reg)
	assert.False(t, ok)
	_, ok = set.Resolve("NOTAPART", reg)
	assert.False(t, ok)
}

func TestUnclaimedCandidateFallsBackToRegistryType(t *testing.T) {
	reg := patterns.New()
	require.NoError(t, reg.Register(types.Sensor, `^XS\d+`))
	set := NewSet(Builtin())

	c := set.Classify("XS100-TR", reg)
	assert.True(t, c.Recognized())
	assert.Equal(t, types.Sensor, c.Primary)
	assert.Equal(t, "", c.Handler)
	assert.Equal(t, "XS100", c.Attributes.Series)
}

func TestSetRegisterReportsFrozenRegistry(t *testing.T) {
	reg := patterns.New()
	reg.Freeze()

	err := NewSet([]Handler{NewAOS()}).Register(reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFrozen)
}

func TestNewCustomValidates(t *testing.T) {
	_, err := NewCustom("bad", []CustomPattern{
		{Type: types.OpAmp, Pattern: `^(`},
		{Type: types.ComponentType("WIDGET"), Pattern: `^W`},
		{Type: types.Diode, Pattern: `^D\d+`},
	})
	require.Error(t, err)
	var multi *errors.MultiError
	require.True(t, errors.As(err, &multi))
	assert.Len(t, multi.Errors, 2)

	h, err := NewCustom("", []CustomPattern{{Type: types.Diode, Pattern: `^D\d+`}})
	require.NoError(t, err)
	assert.Equal(t, "custom", h.Name())
	assert.Equal(t, []types.ComponentType{types.Diode}, h.SupportedTypes())
	series, ok := h.ExtractSeries("D123-TR")
	assert.True(t, ok)
	assert.Equal(t, "D123", series)
	_, ok = h.ExtractPackageCode("D123")
	assert.False(t, ok)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyRegistration, p)

	p, err = ParsePolicy(" Specificity ")
	require.NoError(t, err)
	assert.Equal(t, PolicySpecificity, p)
	assert.Equal(t, "specificity", p.String())

	_, err = ParsePolicy("random")
	var cfgErr *errors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "engine.ambiguity", cfgErr.Field)
}

func TestParseLogic(t *testing.T) {
	tests := []struct {
		in       string
		maker    string
		rng      string
		family   string
		function string
		suffix   string
	}{
		{"SN74HC00N", "SN", "74", "HC", "00", "N"},
		{"SN74HCT245DWR", "SN", "74", "HCT", "245", "DWR"},
		{"74LS138", "", "74", "LS", "138", ""},
		{"SN74AHCT1G125DBVR", "SN", "74", "AHCT", "1G125", "DBVR"},
		{"SN54LS00J", "SN", "54", "LS", "00", "J"},
		{"SN74HC00NE4", "SN", "74", "HC", "00", "N"},
		{"DM7400N", "DM", "74", "", "00", "N"},
	}

	for _, tt := range tests {
		p, ok := ParseLogic(tt.in)
		require.True(t, ok, tt.in)
		assert.Equal(t, tt.maker, p.Maker, tt.in)
		assert.Equal(t, tt.rng, p.Range, tt.in)
		assert.Equal(t, tt.family, p.Family, tt.in)
		assert.Equal(t, tt.function, p.Function, tt.in)
		assert.Equal(t, tt.suffix, p.Suffix, tt.in)
	}

	_, ok := ParseLogic("LM358N")
	assert.False(t, ok)
}

func TestSplitOpAmp(t *testing.T) {
	tests := []struct {
		in       string
		series   string
		line     string
		channels int
	}{
		{"LM358N", "LM358", "LM358", 2},
		{"LM324DR", "LM324", "LM324", 4},
		{"TL072CP", "TL072", "TL07", 2},
		{"TL074CN", "TL074", "TL07", 4},
		{"TL081CP", "TL081", "TL08", 1},
		{"OPA2134PA", "OPA2134", "OPA134", 2},
		{"OPA134PA", "OPA134", "OPA134", 1},
		{"OPA1611AID", "OPA1611", "OPA161", 1},
		{"OPA1612AIDR", "OPA1612", "OPA161", 2},
		{"OPA1614AIDR", "OPA1614", "OPA161", 4},
		{"OPA1656IDR", "OPA1656", "OPA1656", 2},
		{"MC34072DR2G", "MC34072", "MC3407", 2},
		{"NE5532P", "NE5532", "NE553", 2},
		{"TLV9062IDR", "TLV9062", "TLV906", 2},
	}
	for _, tt := range tests {
		p, ok := splitOpAmp(tt.in)
		require.True(t, ok, tt.in)
		assert.Equal(t, tt.series, p.series, tt.in)
		assert.Equal(t, tt.line, p.line, tt.in)
		assert.Equal(t, tt.channels, p.channels, tt.in)
	}
}
