// Package i18n looks up display strings by key and fills in parameters.
//
// A string may contain {name} placeholders, replaced by the matching
// parameter, and one [a|b|c] variation group, replaced by the option at the
// index given by the "variation" parameter. Integer parameters are printed
// with the dictionary's locale grouping, so 12345 renders as 12,345 in
// English.
package i18n

import (
	"maps"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Key identifies a string in a Dictionary.
type Key string

const (
	GameTitle     Key = "gameTitle"
	GameSubtitle  Key = "gameSubtitle"
	Helper        Key = "helper"
	Sound         Key = "sound"
	Paused        Key = "paused"
	Score         Key = "score"
	Best          Key = "best"
	Resume        Key = "resume"
	Quit          Key = "quit"
	LoadingHeader Key = "loadingHeader"
	TitlePlay     Key = "titlePlay"
	Points        Key = "points"
)

// VariationParam selects an option from a [a|b] group.
const VariationParam = "variation"

// Params holds placeholder values.
type Params map[string]any

// English is the built-in dictionary.
var English = map[Key]string{
	GameTitle:     "BUBBO BUBBO",
	GameSubtitle:  "A space bubble shooter",
	Helper:        "[Click|Tap] to shoot bubbles. Match 3 to pop them!",
	Sound:         "Sound",
	Paused:        "Paused",
	Score:         "Score",
	Best:          "Best {score}",
	Resume:        "Resume",
	Quit:          "Quit",
	LoadingHeader: "Made with Ebitengine",
	TitlePlay:     "Play",
	Points:        "+{points}",
}

var variationRe = regexp.MustCompile(`\[(.*?)\]`)

// Dictionary translates keys for one locale.
type Dictionary struct {
	entries map[Key]string
	printer *message.Printer
}

// New creates a dictionary for tag from entries. Entries are copied.
func New(tag language.Tag, entries map[Key]string) *Dictionary {
	return &Dictionary{
		entries: maps.Clone(entries),
		printer: message.NewPrinter(tag),
	}
}

// NewEnglish returns the built-in English dictionary.
func NewEnglish() *Dictionary {
	return New(language.English, English)
}

// T returns the string for k with params applied. A missing key returns the
// key itself.
func (d *Dictionary) T(k Key, params Params) string {
	str, ok := d.entries[k]
	if !ok {
		return string(k)
	}
	if len(params) == 0 {
		return str
	}

	if v, ok := params[VariationParam].(int); ok {
		if m := variationRe.FindStringSubmatchIndex(str); m != nil {
			items := strings.Split(str[m[2]:m[3]], "|")
			selected := ""
			if v >= 0 && v < len(items) {
				selected = items[v]
			}
			str = str[:m[0]] + selected + str[m[1]:]
		}
	}

	for name, value := range params {
		str = strings.ReplaceAll(str, "{"+name+"}", d.format(value))
	}
	return str
}

// Number formats n with locale grouping.
func (d *Dictionary) Number(n int) string {
	return d.printer.Sprintf("%d", n)
}

func (d *Dictionary) format(v any) string {
	switch n := v.(type) {
	case int:
		return d.Number(n)
	case string:
		return n
	default:
		return d.printer.Sprint(n)
	}
}
