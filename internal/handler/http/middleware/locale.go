package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/i18n"
	"golang.org/x/text/language"
)

// Locale stores the request's locale in the context. The ?lang query
// parameter wins over Accept-Language; unmatched requests get the default.
func Locale(next http.Handler) http.Handler {
	supported := i18n.Supported()
	matcher := language.NewMatcher(supported)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tags []language.Tag
		if lang := r.URL.Query().Get("lang"); lang != "" {
			if tag, err := language.Parse(lang); err == nil {
				tags = append(tags, tag)
			}
		}
		if accept, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil {
			tags = append(tags, accept...)
		}

		locale := i18n.DefaultLocale()
		if len(tags) > 0 {
			if _, idx, confidence := matcher.Match(tags...); confidence != language.No {
				base, _ := supported[idx].Base()
				locale = base.String()
			}
		}

		next.ServeHTTP(w, r.WithContext(i18n.WithLocale(r.Context(), locale)))
	})
}
