package l10n

// Operation names reported to hooks.
const (
	OpFormatNumber     = "format_number"
	OpFormatPercent    = "format_percent"
	OpFormatFileSize   = "format_file_size"
	OpParseNumber      = "parse_number"
	OpFormatCurrency   = "format_currency"
	OpFormatAccounting = "format_accounting"
	OpParseCurrency    = "parse_currency"
	OpFormatDate       = "format_date"
	OpFormatTime       = "format_time"
	OpFormatDateTime   = "format_datetime"
	OpFormatRelative   = "format_relative"
	OpParseDate        = "parse_date"
)

// FormatHook observes every public format and parse call.
type FormatHook interface {
	BeforeFormat(ctx *FormatHookContext)
	AfterFormat(ctx *FormatHookContext)
}

// FormatHookContext carries one call through the hooks. After hooks may
// rewrite Result; parse operations report the parsed value in Value.
type FormatHookContext struct {
	Operation string
	Locale    string
	Input     any
	Backend   string
	Fallback  bool
	Result    string
	Value     any
	Error     error
	Metadata  map[string]any
}

func (ctx *FormatHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
	ctx.Metadata[key] = value
}

func (ctx *FormatHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

type FormatHookFuncs struct {
	Before func(ctx *FormatHookContext)
	After  func(ctx *FormatHookContext)
}

func (h FormatHookFuncs) BeforeFormat(ctx *FormatHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h FormatHookFuncs) AfterFormat(ctx *FormatHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

func filterHooks(hooks []FormatHook) []FormatHook {
	if len(hooks) == 0 {
		return nil
	}
	filtered := make([]FormatHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		filtered = append(filtered, hook)
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

// runHooks wraps fn with the before and after hooks and returns the final
// context so callers pick up hook rewrites.
func runHooks(hooks []FormatHook, ctx *FormatHookContext, fn func(ctx *FormatHookContext)) *FormatHookContext {
	for _, hook := range hooks {
		hook.BeforeFormat(ctx)
	}

	fn(ctx)

	for _, hook := range hooks {
		hook.AfterFormat(ctx)
	}
	return ctx
}
