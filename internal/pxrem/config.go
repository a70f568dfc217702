package pxrem

// DefaultMaxPxValue is the largest pixel value generated when no override is given
const DefaultMaxPxValue = 2000

// fullPropertyAliases is the maximal built-in alias table used in full mode
var fullPropertyAliases = PropertyAliases{
	{"w", "width"},
	{"h", "height"},
	{"min-w", "minWidth"},
	{"min-h", "minHeight"},
	{"max-w", "maxWidth"},
	{"max-h", "maxHeight"},
	{"m", "margin"},
	{"mt", "marginTop"},
	{"mr", "marginRight"},
	{"mb", "marginBottom"},
	{"ml", "marginLeft"},
	{"p", "padding"},
	{"pt", "paddingTop"},
	{"pr", "paddingRight"},
	{"pb", "paddingBottom"},
	{"pl", "paddingLeft"},
	{"gap", "gap"},
	{"gap-x", "columnGap"},
	{"gap-y", "rowGap"},
	{"text", "fontSize"},
	{"leading", "lineHeight"},
	{"tracking", "letterSpacing"},
	{"rounded", "borderRadius"},
	{"border", "borderWidth"},
	{"border-t", "borderTopWidth"},
	{"border-r", "borderRightWidth"},
	{"border-b", "borderBottomWidth"},
	{"border-l", "borderLeftWidth"},
	{"top", "top"},
	{"right", "right"},
	{"bottom", "bottom"},
	{"left", "left"},
}

// fullBreakpoints is the maximal built-in breakpoint table used in full mode
var fullBreakpoints = Breakpoints{
	{"sm", 640},
	{"md", 768},
	{"lg", 1024},
	{"xl", 1280},
	{"2xl", 1536},
	{"max-sm", 640},
	{"max-md", 768},
	{"max-lg", 1024},
	{"max-xl", 1280},
	{"max-2xl", 1536},
}

// defaultPropertyAliases is the minimal table merged with caller overrides
var defaultPropertyAliases = PropertyAliases{
	{"w", "width"},
	{"h", "height"},
	{"min-w", "minWidth"},
	{"min-h", "minHeight"},
	{"max-w", "maxWidth"},
	{"max-h", "maxHeight"},
	{"text", "fontSize"},
	{"leading", "lineHeight"},
	{"rounded", "borderRadius"},
	{"top", "top"},
	{"right", "right"},
	{"bottom", "bottom"},
	{"left", "left"},
}

var defaultBreakpoints = Breakpoints{
	{"sm", 640},
	{"max-md", 768},
}

// FullPropertyAliases returns a copy of the maximal alias table
func FullPropertyAliases() PropertyAliases {
	return append(PropertyAliases(nil), fullPropertyAliases...)
}

// FullBreakpoints returns a copy of the maximal breakpoint table
func FullBreakpoints() Breakpoints {
	return append(Breakpoints(nil), fullBreakpoints...)
}

// DefaultConfig returns the minimal built-in configuration
func DefaultConfig() Config {
	return Config{
		MaxPxValue:      DefaultMaxPxValue,
		PropertyAliases: append(PropertyAliases(nil), defaultPropertyAliases...),
		Breakpoints:     append(Breakpoints(nil), defaultBreakpoints...),
	}
}

// ResolveConfig merges caller options onto the built-in defaults.
//
// In full mode the maximal tables are used and caller aliases/breakpoints are
// ignored. Otherwise caller entries are shallow-merged over the minimal defaults.
// Values are not validated.
func ResolveConfig(options PluginOptions) Config {
	config := DefaultConfig()
	config.ResponsiveShorthands = options.ResponsiveShorthands
	if options.MaxPxValue != 0 {
		config.MaxPxValue = options.MaxPxValue
	}

	if options.Full {
		config.PropertyAliases = FullPropertyAliases()
		config.Breakpoints = FullBreakpoints()
		return config
	}

	config.PropertyAliases = config.PropertyAliases.Merge(options.PropertyAliases)
	config.Breakpoints = config.Breakpoints.Merge(options.Breakpoints)
	return config
}
