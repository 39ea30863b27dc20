package l10n

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/locales"
)

// calendarPatterns mirror the CLDR patterns the go-playground translators
// render, indexed by preset. Fields are CLDR letters in braces, anything
// else is literal text.
var calendarPatterns = map[string]struct{ date, clock [4]string }{
	"en": {
		date:  [4]string{"{M}/{d}/{yy}", "{MMM} {d}, {y}", "{MMMM} {d}, {y}", "{EEEE}, {MMMM} {d}, {y}"},
		clock: clock12Patterns,
	},
	"fr": {
		date:  [4]string{"{d}/{M}/{y}", "{d} {MMM} {y}", "{d} {MMMM} {y}", "{EEEE} {d} {MMMM} {y}"},
		clock: clock24Patterns,
	},
	"de": {
		date:  [4]string{"{d}.{M}.{yy}", "{d}.{M}.{y}", "{d}. {MMMM} {y}", "{EEEE}, {d}. {MMMM} {y}"},
		clock: clock24Patterns,
	},
	"es": {
		date:  [4]string{"{d}/{M}/{yy}", "{d} {MMM} {y}", "{d} de {MMMM} de {y}", "{EEEE}, {d} de {MMMM} de {y}"},
		clock: [4]string{"{H}:{m}", "{H}:{m}:{s}", "{H}:{m}:{s} {z}", "{H}:{m}:{s} ({z})"},
	},
	"it": {
		date:  [4]string{"{d}/{M}/{yy}", "{d} {MMM} {y}", "{d} {MMMM} {y}", "{EEEE} {d} {MMMM} {y}"},
		clock: clock24Patterns,
	},
	"pt": {
		date:  [4]string{"{d}/{M}/{y}", "{d} de {MMM} de {y}", "{d} de {MMMM} de {y}", "{EEEE}, {d} de {MMMM} de {y}"},
		clock: clock24Patterns,
	},
	"ru": {
		date:  [4]string{"{d}.{M}.{y}", "{d} {MMM} {y} г.", "{d} {MMMM} {y} г.", "{EEEE}, {d} {MMMM} {y} г."},
		clock: clock24Patterns,
	},
	"ar": {
		date:  [4]string{"{d}/{M}/{y}", "{d}/{M}/{y}", "{d} {MMMM} {y}", "{EEEE}، {d} {MMMM} {y}"},
		clock: clock12Patterns,
	},
	"zh": {
		date:  [4]string{"{y}/{M}/{d}", "{y}年{M}月{d}日", "{y}年{M}月{d}日", "{y}年{M}月{d}日{EEEE}"},
		clock: [4]string{"{a}{h}:{m}", "{a}{h}:{m}:{s}", "{z} {a}{h}:{m}:{s}", "{z} {a}{h}:{m}:{s}"},
	},
	"ja": {
		date:  [4]string{"{y}/{M}/{d}", "{y}/{M}/{d}", "{y}年{M}月{d}日", "{y}年{M}月{d}日{EEEE}"},
		clock: [4]string{"{H}:{m}", "{H}:{m}:{s}", "{H}:{m}:{s} {z}", "{H}時{m}分{s}秒 {z}"},
	},
	"ko": {
		date:  [4]string{"{yy}. {M}. {d}.", "{y}. {M}. {d}.", "{y}년 {M}월 {d}일", "{y}년 {M}월 {d}일 {EEEE}"},
		clock: [4]string{"{a} {h}:{m}", "{a} {h}:{m}:{s}", "{a} {h}시 {m}분 {s}초 {z}", "{a} {h}시 {m}분 {s}초 {z}"},
	},
	"hi": {
		date:  [4]string{"{d}/{M}/{yy}", "{d} {MMM} {y}", "{d} {MMMM} {y}", "{EEEE}, {d} {MMMM} {y}"},
		clock: clock12Patterns,
	},
}

var (
	clock12Patterns = [4]string{"{h}:{m} {a}", "{h}:{m}:{s} {a}", "{h}:{m}:{s} {a} {z}", "{h}:{m}:{s} {a} {z}"}
	clock24Patterns = [4]string{"{H}:{m}", "{H}:{m}:{s}", "{H}:{m}:{s} {z}", "{H}:{m}:{s} {z}"}
)

// parsePatterns lists the datetime, date and time patterns for preset, in
// the order Parse tries them.
func parsePatterns(locale string, preset FormatPreset) ([]string, bool) {
	patterns, ok := calendarPatterns[locale]
	if !ok {
		return nil, false
	}
	date, clock := patterns.date[preset], patterns.clock[preset]
	return []string{date + lookupDateTimeGlue(locale) + clock, date, clock}, true
}

// bidi marks and the no-break spaces CLDR puts in periods and glue
var calendarTextFolder = strings.NewReplacer(
	"\u200e", "",
	"\u200f", "",
	"\u061c", "",
	"\u00a0", " ",
	"\u202f", " ",
)

func foldCalendarText(s string) string {
	return calendarTextFolder.Replace(s)
}

// calendarNames holds the words a translator writes into dates, indexed by
// time.Month and time.Weekday.
type calendarNames struct {
	monthsAbbreviated []string
	monthsWide        []string
	weekdays          []string
	periods           []string
}

func newCalendarNames(trans locales.Translator) calendarNames {
	names := calendarNames{
		monthsAbbreviated: make([]string, 13),
		monthsWide:        make([]string, 13),
		weekdays:          make([]string, 7),
		periods:           make([]string, 2),
	}
	for month := time.January; month <= time.December; month++ {
		names.monthsAbbreviated[month] = foldCalendarText(trans.MonthAbbreviated(month))
		names.monthsWide[month] = foldCalendarText(trans.MonthWide(month))
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		names.weekdays[day] = foldCalendarText(trans.WeekdayWide(day))
	}

	// translators do not expose their day periods; read them off a rendered clock
	for i, hour := range []int{1, 13} {
		clock := foldCalendarText(trans.FmtTimeShort(time.Date(2000, time.January, 1, hour, 0, 0, 0, time.UTC)))
		names.periods[i] = strings.TrimFunc(clock, func(r rune) bool {
			return unicode.IsDigit(r) || unicode.IsSpace(r) || r == ':'
		})
	}
	return names
}

func (n calendarNames) words(field string) []string {
	switch field {
	case "MMM":
		return n.monthsAbbreviated
	case "MMMM":
		return n.monthsWide
	case "EEEE":
		return n.weekdays
	case "a":
		return n.periods
	}
	return nil
}

// parse matches value against pattern as a whole. value must already be
// folded.
func (n calendarNames) parse(pattern, value string, loc *time.Location) (time.Time, bool) {
	fields, ok := n.match(splitPattern(pattern), value, newCalendarFields())
	if !ok {
		return time.Time{}, false
	}
	return fields.at(loc)
}

type patternPart struct {
	field   string
	literal string
}

func splitPattern(pattern string) []patternPart {
	var parts []patternPart
	for pattern != "" {
		open := strings.IndexByte(pattern, '{')
		switch {
		case open < 0:
			return append(parts, patternPart{literal: foldCalendarText(pattern)})
		case open > 0:
			parts = append(parts, patternPart{literal: foldCalendarText(pattern[:open])})
			pattern = pattern[open:]
		default:
			end := strings.IndexByte(pattern, '}')
			parts = append(parts, patternPart{field: pattern[1:end]})
			pattern = pattern[end+1:]
		}
	}
	return parts
}

// match walks parts left to right, backtracking over names and zones.
func (n calendarNames) match(parts []patternPart, input string, f calendarFields) (calendarFields, bool) {
	if len(parts) == 0 {
		return f, input == ""
	}
	part, rest := parts[0], parts[1:]

	switch part.field {
	case "":
		if !hasPrefixFold(input, part.literal) {
			return f, false
		}
		return n.match(rest, input[len(part.literal):], f)

	case "MMM", "MMMM", "EEEE", "a":
		for i, word := range n.words(part.field) {
			if word == "" || !hasPrefixFold(input, word) {
				continue
			}
			if out, ok := n.match(rest, input[len(word):], f.withWord(part.field, i)); ok {
				return out, true
			}
		}
		return f, false

	case "z":
		// zone names are informational; the value is read in the caller's location
		for end := len(input); end > 0; end-- {
			if end < len(input) && !utf8.RuneStart(input[end]) {
				continue
			}
			if strings.TrimSpace(input[:end]) == "" {
				continue
			}
			if out, ok := n.match(rest, input[end:], f); ok {
				return out, true
			}
		}
		return f, false

	default:
		digits := 0
		for digits < len(input) && input[digits] >= '0' && input[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			return f, false
		}
		value, err := strconv.Atoi(input[:digits])
		if err != nil || !f.set(part.field, value, digits) {
			return f, false
		}
		return n.match(rest, input[digits:], f)
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

type calendarFields struct {
	year, month, day     int
	hour, minute, second int
	weekday              int
	period               int
	twelveHour           bool
}

// Unset date fields default to January 1 of year 0, as time.Parse does.
func newCalendarFields() calendarFields {
	return calendarFields{month: 1, day: 1, weekday: -1, period: -1}
}

func (f *calendarFields) set(field string, value, digits int) bool {
	switch field {
	case "y":
		f.year = value
	case "yy":
		if digits != 2 {
			return false
		}
		f.year = 2000 + value
		if value >= 69 {
			f.year = 1900 + value
		}
	case "M":
		f.month = value
	case "d":
		f.day = value
	case "h":
		f.hour, f.twelveHour = value, true
	case "H":
		f.hour = value
	case "m":
		f.minute = value
	case "s":
		f.second = value
	default:
		return false
	}
	return true
}

func (f calendarFields) withWord(field string, index int) calendarFields {
	switch field {
	case "MMM", "MMMM":
		f.month = index
	case "EEEE":
		f.weekday = index
	case "a":
		f.period = index
	}
	return f
}

func (f calendarFields) at(loc *time.Location) (time.Time, bool) {
	hour := f.hour
	if f.twelveHour {
		if hour > 12 {
			return time.Time{}, false
		}
		switch {
		case f.period == 1 && hour < 12:
			hour += 12
		case f.period == 0 && hour == 12:
			hour = 0
		}
	}
	if hour > 23 || f.minute > 59 || f.second > 59 {
		return time.Time{}, false
	}
	if f.month < 1 || f.month > 12 || f.day < 1 {
		return time.Time{}, false
	}

	t := time.Date(f.year, time.Month(f.month), f.day, hour, f.minute, f.second, 0, loc)
	if t.Day() != f.day || t.Month() != time.Month(f.month) {
		return time.Time{}, false
	}
	if f.weekday >= 0 && t.Weekday() != time.Weekday(f.weekday) {
		return time.Time{}, false
	}
	return t, true
}

var goLayoutFields = strings.NewReplacer(
	"{yy}", "06",
	"{y}", "2006",
	"{MMMM}", "January",
	"{MMM}", "Jan",
	"{M}", "1",
	"{d}", "2",
	"{EEEE}", "Monday",
	"{h}", "3",
	"{H}", "15",
	"{m}", "4",
	"{s}", "5",
	"{a}", "PM",
	"{z}", "MST",
)

// goLayout rewrites a calendar pattern as a time package layout.
func goLayout(pattern string) string {
	return goLayoutFields.Replace(foldCalendarText(pattern))
}
