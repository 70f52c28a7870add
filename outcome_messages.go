package schemacore

import (
	"embed"
	"strconv"
	"strings"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// NewMessageBundle returns an initialized internationalization bundle with
// the embedded "en" and "zh-Hans" outcome message locales, the same
// embed.FS + go-i18n pairing the teacher uses for its own diagnostics.
func NewMessageBundle() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)
	if err := bundle.LoadFS(localesFS, "locales/*.json"); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Localize renders a ScopedOutcome as a human-readable message using the
// given localizer, falling back to a bare kind name if no message key
// matches (e.g. the bundle failed to load).
func (so ScopedOutcome) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return so.Outcome.Kind.String()
	}
	key := "outcome." + so.Outcome.Kind.String()
	msg := localizer.Get(key, i18n.Vars(outcomeVars(so.Outcome)))
	if msg == "" || msg == key {
		return so.Outcome.Kind.String()
	}
	return msg
}

func outcomeVars(o Outcome) map[string]any {
	vars := make(map[string]any, 4)
	if o.Property != "" {
		vars["property"] = o.Property
	}
	if o.URI != "" {
		vars["uri"] = o.URI
	}
	if o.FormatName != "" {
		vars["format"] = o.FormatName
	}
	if len(o.TypeSet) > 0 {
		vars["expected"] = strings.Join(o.TypeSet, ", ")
	}
	if o.Bound != nil {
		vars["bound"] = strconv.FormatFloat(*o.Bound, 'g', -1, 64)
	}
	if o.Actual != nil {
		vars["actual"] = strconv.FormatFloat(*o.Actual, 'g', -1, 64)
	}
	return vars
}
