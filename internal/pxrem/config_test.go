package pxrem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveConfig(t *testing.T) {
	tests := []struct {
		name  string
		opts  PluginOptions
		check func(t *testing.T, c Config)
	}{
		{
			name: "defaults",
			opts: PluginOptions{},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, DefaultMaxPxValue, c.MaxPxValue)
				assert.Len(t, c.PropertyAliases, 13)
				assert.Equal(t, Breakpoints{{"sm", 640}, {"max-md", 768}}, c.Breakpoints)
				_, ok := c.PropertyAliases.Lookup("m")
				assert.False(t, ok)
			},
		},
		{
			name: "max px override",
			opts: PluginOptions{MaxPxValue: 64},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 64, c.MaxPxValue)
			},
		},
		{
			name: "negative max passes through",
			opts: PluginOptions{MaxPxValue: -1},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, -1, c.MaxPxValue)
			},
		},
		{
			name: "alias merge keeps defaults and appends new prefixes",
			opts: PluginOptions{PropertyAliases: PropertyAliases{{"w", "inlineSize"}, {"gap", "gap"}}},
			check: func(t *testing.T, c Config) {
				assert.Len(t, c.PropertyAliases, 14)
				assert.Equal(t, PropertyAlias{"w", "inlineSize"}, c.PropertyAliases[0])
				assert.Equal(t, PropertyAlias{"gap", "gap"}, c.PropertyAliases[13])
				prop, ok := c.PropertyAliases.Lookup("h")
				assert.True(t, ok)
				assert.Equal(t, "height", prop)
			},
		},
		{
			name: "breakpoint merge",
			opts: PluginOptions{Breakpoints: Breakpoints{{"sm", 600}, {"xl", 1280}}},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, Breakpoints{{"sm", 600}, {"max-md", 768}, {"xl", 1280}}, c.Breakpoints)
			},
		},
		{
			name: "full mode ignores caller tables",
			opts: PluginOptions{
				Full:            true,
				PropertyAliases: PropertyAliases{{"custom", "inset"}},
				Breakpoints:     Breakpoints{{"tiny", 320}},
			},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, DefaultMaxPxValue, c.MaxPxValue)
				assert.Equal(t, FullPropertyAliases(), c.PropertyAliases)
				assert.Equal(t, FullBreakpoints(), c.Breakpoints)
				_, ok := c.PropertyAliases.Lookup("custom")
				assert.False(t, ok)
			},
		},
		{
			name: "responsive shorthands carried in both modes",
			opts: PluginOptions{Full: true, ResponsiveShorthands: true},
			check: func(t *testing.T, c Config) {
				assert.True(t, c.ResponsiveShorthands)
			},
		},
		{
			name: "full mode keeps max override",
			opts: PluginOptions{Full: true, MaxPxValue: 100},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 100, c.MaxPxValue)
				assert.Len(t, c.PropertyAliases, 32)
				assert.Len(t, c.Breakpoints, 10)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ResolveConfig(tt.opts))
		})
	}
}

func TestResolveConfig_DoesNotMutateDefaults(t *testing.T) {
	_ = ResolveConfig(PluginOptions{PropertyAliases: PropertyAliases{{"w", "blockSize"}}})

	prop, ok := DefaultConfig().PropertyAliases.Lookup("w")
	assert.True(t, ok)
	assert.Equal(t, "width", prop)
}
