package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"front":      "表面",
	"back":       "裏面",
	"category":   "カテゴリ",
	"difficulty": "難易度",
	"usage":      "例文",
	"cards":      "カード",
	"quality":    "評価",
	"size":       "問題数",
	"selected":   "回答",
	"type":       "試験の種類",
	"answer":     "解答",
	"text":       "本文",
	"phrase":     "表現",
	"position":   "挿入位置",
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	return fe.Field()
}

func isLengthCheck(fe validator.FieldError) bool {
	switch fe.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return true
	}
	return false
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

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translatedField(fe), fe.Param())
			return t
		})
	}

	registerTranslation("required", "{0}は必須項目です。")
	registerTranslation("oneof", "{0}は[{1}]のいずれかを指定してください。")

	// min / max は文字列なら文字数、数値なら値の範囲として表示する
	registerBound := func(tag, lengthMsg, valueMsg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			if err := ut.Add(tag+"-length", lengthMsg, true); err != nil {
				return err
			}
			return ut.Add(tag+"-value", valueMsg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			key := tag + "-value"
			if isLengthCheck(fe) {
				key = tag + "-length"
			}
			t, _ := ut.T(key, translatedField(fe), fe.Param())
			return t
		})
	}
	registerBound("min", "{0}は{1}文字以上で入力してください。", "{0}は{1}以上で指定してください。")
	registerBound("max", "{0}は{1}文字以下で入力してください。", "{0}は{1}以下で指定してください。")
}
