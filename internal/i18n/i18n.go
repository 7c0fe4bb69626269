package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/handmade-next/internal/constants"

	"github.com/gin-gonic/gin"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var (
	bundleOnce sync.Once
	bundle     *goi18n.Bundle
	matcher    language.Matcher
	supported  []language.Tag
)

func load() {
	bundleOnce.Do(func() {
		bundle = goi18n.NewBundle(language.MustParse(constants.LocaleViVN))
		supported = make([]language.Tag, 0, len(constants.SupportedLocales))
		for _, locale := range constants.SupportedLocales {
			tag := language.MustParse(locale)
			supported = append(supported, tag)
			entries := catalog[locale]
			messages := make([]*goi18n.Message, 0, len(entries))
			for id, text := range entries {
				messages = append(messages, &goi18n.Message{ID: id, Other: text})
			}
			if err := bundle.AddMessages(tag, messages...); err != nil {
				panic(fmt.Sprintf("i18n: load %s: %v", locale, err))
			}
		}
		matcher = language.NewMatcher(supported)
	})
}

// NormalizeLocale 将任意语言标识归一到支持的站点语言
func NormalizeLocale(raw string) string {
	load()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return constants.LocaleViVN
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return constants.LocaleViVN
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return constants.LocaleViVN
	}
	return constants.SupportedLocales[index]
}

// ResolveLocale 从请求中解析语言，优先 query 参数 lang，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleViVN
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	return NormalizeLocale(c.GetHeader("Accept-Language"))
}

// T 翻译消息，缺失时回退到默认语言，再回退到 key 本身
func T(locale, key string) string {
	load()
	localizer := goi18n.NewLocalizer(bundle, NormalizeLocale(locale), constants.LocaleViVN)
	text, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil || text == "" {
		return key
	}
	return text
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// Has 判断消息是否存在于指定语言
func Has(locale, key string) bool {
	entries, ok := catalog[locale]
	if !ok {
		return false
	}
	_, ok = entries[key]
	return ok
}
