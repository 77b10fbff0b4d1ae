package widget

import (
	"strings"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

// Messages holds the localized prefixes of error bubbles
type Messages struct {
	ChatErrorPrefix   string
	ModelsErrorPrefix string
}

var catalogs = map[string]Messages{
	"ja": {
		ChatErrorPrefix:   "エラー: ",
		ModelsErrorPrefix: "モデル取得エラー: ",
	},
	"en": {
		ChatErrorPrefix:   "Error: ",
		ModelsErrorPrefix: "Failed to load models: ",
	},
}

// MessagesFor returns the strings for locale, falling back to Japanese for
// unknown or empty locales. Region suffixes ("en-US", "ja_JP") are ignored.
func MessagesFor(locale string) Messages {
	lang := strings.ToLower(locale)
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	if m, ok := catalogs[lang]; ok {
		return m
	}
	return catalogs["ja"]
}

// ChatError formats a failed chat request for display
func (m Messages) ChatError(err error) string {
	return m.ChatErrorPrefix + detail(err)
}

// ModelsError formats a failed model-list request for display
func (m Messages) ModelsError(err error) string {
	return m.ModelsErrorPrefix + detail(err)
}

func detail(err error) string {
	msg := apierrors.UserMessage(err)
	if msg == "" {
		return models.UnknownErrorText
	}
	return msg
}
