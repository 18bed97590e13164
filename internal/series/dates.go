package series

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// InvalidDate is the label used when a commit date cannot be parsed.
const InvalidDate = "Invalid Date"

// Locales with a short date convention, in monday's listing order. en_US
// comes first and is the fallback for unmatched tags.
var (
	shortLocales  []monday.Locale
	localeMatcher language.Matcher
)

func init() {
	var tags []language.Tag
	for _, l := range monday.ListLocales() {
		if _, ok := monday.ShortFormatsByLocale[l]; !ok {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(string(l), "_", "-"))
		if err != nil {
			continue
		}
		shortLocales = append(shortLocales, l)
		tags = append(tags, tag)
	}
	localeMatcher = language.NewMatcher(tags)
}

var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DateFormatter renders commit timestamps as short, locale-specific labels.
type DateFormatter struct {
	locale monday.Locale
	loc    *time.Location
}

// NewDateFormatter picks the supported locale closest to tag. Dates are
// converted into loc before formatting; nil means UTC.
func NewDateFormatter(tag language.Tag, loc *time.Location) DateFormatter {
	_, idx, _ := localeMatcher.Match(tag)
	if idx < 0 || idx >= len(shortLocales) {
		idx = 0
	}
	if loc == nil {
		loc = time.UTC
	}
	return DateFormatter{locale: shortLocales[idx], loc: loc}
}

// Locale reports the monday locale the formatter renders with.
func (f DateFormatter) Locale() monday.Locale {
	if f.locale == "" {
		return monday.LocaleEnUS
	}
	return f.locale
}

// Format returns the short label for raw, or InvalidDate if raw is not a
// recognised ISO-8601 timestamp.
func (f DateFormatter) Format(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return InvalidDate
	}
	loc := f.loc
	if loc == nil {
		loc = time.UTC
	}
	l := f.Locale()
	return monday.Format(t.In(loc), monday.ShortFormatsByLocale[l], l)
}

// FormatShortDate formats raw in UTC using the convention of tag.
func FormatShortDate(raw string, tag language.Tag) string {
	return NewDateFormatter(tag, time.UTC).Format(raw)
}

// ParseDate accepts RFC 3339 timestamps, offsets without a colon,
// zone-less timestamps (read as UTC) and bare dates.
func ParseDate(raw string) (time.Time, bool) {
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
