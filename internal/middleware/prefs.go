package middleware

import (
	"smartinvoice/internal/render"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const ctxLocale = "pref_locale"

const localeCookieAge = 86400 * 30

var localeMatcher = language.NewMatcher([]language.Tag{language.English, language.Malay})

// Prefs resolves the display locale (query > cookie > Accept-Language > fallback) and stores it
// on the context. A locale given in the query is persisted in the "lang" cookie.
func Prefs(fallback string) gin.HandlerFunc {
	if l, ok := render.NormalizeLocale(fallback); ok {
		fallback = l
	} else {
		fallback = render.LocaleEN
	}

	return func(c *gin.Context) {
		locale := ""
		if v, err := c.Cookie("lang"); err == nil {
			if l, ok := render.NormalizeLocale(v); ok {
				locale = l
			}
		}
		if q := c.Query("lang"); q != "" {
			if l, ok := render.NormalizeLocale(q); ok {
				locale = l
				c.SetCookie("lang", l, localeCookieAge, "/", "", false, false)
			}
		}
		if locale == "" {
			locale = detectLocale(c.GetHeader("Accept-Language"), fallback)
		}
		c.Set(ctxLocale, locale)
		c.Next()
	}
}

// LocaleFrom returns the locale chosen by Prefs, or English when the middleware did not run.
func LocaleFrom(c *gin.Context) string {
	if v := c.GetString(ctxLocale); v != "" {
		return v
	}
	return render.LocaleEN
}

func detectLocale(header, fallback string) string {
	if header == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	if idx == 1 {
		return render.LocaleMS
	}
	return render.LocaleEN
}
