// internal/webutil/validator.go
package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/vi" // ベトナム語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	vi_translations "github.com/go-playground/validator/v10/translations/vi"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

// fieldNameTranslations は json タグ名 -> 表示名
var fieldNameTranslations = map[string]string{
	"area_id":         "Lĩnh vực",
	"item_text":       "Nội dung",
	"should_keep":     "Giữ lại",
	"priority_level":  "Mức ưu tiên",
	"fixed_position":  "Vị trí cố định",
	"reflection_text": "Suy ngẫm",
	"action_taken":    "Hành động",
	"trigger":         "Khi",
	"action":          "Thì",
	"why_text":        "Lý do",
	"status":          "Trạng thái",
	"what_clearer":    "Điều rõ ràng hơn",
	"what_lighter":    "Điều nhẹ nhàng hơn",
	"what_adjust":     "Điều cần điều chỉnh",
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	vietnamese := vi.New()
	uni := ut.New(vietnamese, vietnamese)
	var found bool
	Trans, found = uni.GetTranslator("vi")
	if !found {
		log.Fatal("translator not found")
	}

	if err := vi_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation("required", "{0} là bắt buộc.")
	registerTranslation("uuid", "{0} không hợp lệ.")
	registerParamTranslation("oneof", "{0} phải là một trong [{1}].")
	registerParamTranslation("max", "{0} tối đa {1} ký tự.")
}

func displayName(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	return fe.Field()
}

// registerTranslation はフィールド名のみを埋め込むメッセージを登録します
func registerTranslation(tag, msg string) {
	_ = Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		return ut.Add(tag, msg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, displayName(fe))
		return t
	})
}

// registerParamTranslation はタグのパラメータも埋め込みます
func registerParamTranslation(tag, msg string) {
	_ = Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		return ut.Add(tag, msg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, displayName(fe), fe.Param())
		return t
	})
}
