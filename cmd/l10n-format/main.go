// Command l10n-format formats and parses values from the command line.
//
//	l10n-format [flags] <command> [value]
//
// Pass "--" before negative numbers so they are not read as flags.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/lmittmann/tint"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-l10n"
)

type options struct {
	locale   string
	decimals int
	currency string
	preset   string
	timezone string
	noNative bool
	verbose  bool
	format   string
}

var errUsage = errors.New("usage: l10n-format [flags] <command> [value]")

const commandHelp = `commands:
  number <value>            format a number
  percent <ratio>           format a ratio as a percentage
  filesize <bytes>          format a byte count
  currency <amount>         format a currency amount
  accounting <amount>       format a currency amount, negatives in parentheses
  date [value]              format a date (default now)
  time [value]              format a time of day (default now)
  datetime [value]          format date and time (default now)
  relative <value>          describe a time relative to now
  parse-number <text>       parse a formatted number
  parse-currency <text>     parse a formatted currency amount
  parse-date <text>         parse a formatted date or time
  tables                    dump the locale and currency tables
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "l10n-format:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts := options{}

	flags := pflag.NewFlagSet("l10n-format", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.locale, "locale", "l", l10n.DefaultLocale, "locale code, e.g. en, de, hi, pt-BR")
	flags.IntVarP(&opts.decimals, "decimals", "d", l10n.DefaultDecimals, "fraction digits for number, percent and filesize")
	flags.StringVarP(&opts.currency, "currency", "c", "USD", "ISO 4217 currency code")
	flags.StringVarP(&opts.preset, "preset", "p", "medium", "date/time preset: short, medium, long, full")
	flags.StringVar(&opts.timezone, "tz", "", "IANA timezone for date output (default UTC)")
	flags.BoolVar(&opts.noNative, "no-native", false, "use the table driven number backend only")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log backend selection to stderr")
	flags.StringVar(&opts.format, "format", "yaml", "tables output: yaml or json")
	flags.Usage = func() {
		fmt.Fprintln(stderr, errUsage.Error())
		fmt.Fprint(stderr, commandHelp)
		fmt.Fprintln(stderr, "flags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return errUsage
	}
	command, values := rest[0], rest[1:]

	if command == "tables" {
		return writeTables(stdout, opts.format)
	}

	cfg, err := l10n.NewConfig(configOptions(opts, stderr)...)
	if err != nil {
		return err
	}

	out, err := execute(cfg, opts, command, values)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

func configOptions(opts options, stderr io.Writer) []l10n.Option {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))

	cfgOpts := []l10n.Option{
		l10n.WithDefaultLocale(opts.locale),
		l10n.WithDefaultTimezone(opts.timezone),
		l10n.WithLogger(logger),
	}
	if opts.noNative {
		cfgOpts = append(cfgOpts, l10n.WithoutNativeNumberBackend())
	}
	if opts.verbose {
		cfgOpts = append(cfgOpts, l10n.WithHooks(l10n.FormatHookFuncs{
			After: func(ctx *l10n.FormatHookContext) {
				logger.Debug("formatted",
					slog.String("op", ctx.Operation),
					slog.String("locale", ctx.Locale),
					slog.String("backend", ctx.Backend),
					slog.Bool("fallback", ctx.Fallback),
				)
			},
		}))
	}
	return cfgOpts
}

func execute(cfg *l10n.Config, opts options, command string, values []string) (string, error) {
	numbers, currencies, dates := cfg.Numbers(), cfg.Currencies(), cfg.DateTimes()
	locale := opts.locale

	switch command {
	case "number", "percent", "filesize", "currency", "accounting":
		value, err := numberArg(values)
		if err != nil {
			return "", err
		}
		switch command {
		case "number":
			return numbers.Format(value, opts.decimals, locale), nil
		case "percent":
			return numbers.FormatPercent(value, opts.decimals, locale), nil
		case "filesize":
			return numbers.FormatFileSize(value, opts.decimals, locale), nil
		case "currency":
			return currencies.Format(value, opts.currency, locale), nil
		default:
			return currencies.FormatAccounting(value, opts.currency, locale), nil
		}

	case "date", "time", "datetime":
		preset, err := l10n.ParsePreset(opts.preset)
		if err != nil {
			return "", err
		}
		var value any
		if len(values) > 0 {
			value = strings.Join(values, " ")
		}
		switch command {
		case "date":
			return dates.FormatDate(value, preset, locale, opts.timezone)
		case "time":
			return dates.FormatTime(value, preset, locale, opts.timezone)
		default:
			return dates.Format(value, preset, locale, opts.timezone)
		}

	case "relative":
		if len(values) == 0 {
			return "", fmt.Errorf("%w: relative needs a time value", errUsage)
		}
		return dates.FormatRelative(strings.Join(values, " "), locale), nil

	case "parse-number", "parse-currency":
		if len(values) == 0 {
			return "", fmt.Errorf("%w: %s needs a value", errUsage, command)
		}
		text := strings.Join(values, " ")
		if command == "parse-number" {
			return cast.ToString(numbers.Parse(text, locale)), nil
		}
		return cast.ToString(currencies.Parse(text, opts.currency, locale)), nil

	case "parse-date":
		preset, err := l10n.ParsePreset(opts.preset)
		if err != nil {
			return "", err
		}
		if len(values) == 0 {
			return "", fmt.Errorf("%w: parse-date needs a value", errUsage)
		}
		t, ok := dates.Parse(strings.Join(values, " "), preset, locale)
		if !ok {
			return "", fmt.Errorf("cannot parse %q as a %s %s date", strings.Join(values, " "), preset, locale)
		}
		return t.Format(time.RFC3339), nil
	}

	return "", fmt.Errorf("%w: unknown command %q", errUsage, command)
}

func numberArg(values []string) (float64, error) {
	if len(values) != 1 {
		return 0, fmt.Errorf("%w: expected exactly one numeric value", errUsage)
	}
	value, err := cast.ToFloat64E(values[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", values[0], err)
	}
	return value, nil
}

func writeTables(w io.Writer, format string) error {
	snapshot := l10n.Tables()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snapshot); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported tables format %q", format)
	}
}
