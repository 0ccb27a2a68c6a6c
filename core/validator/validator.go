// Package validator wraps go-playground/validator with English messages.
package validator

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator 定义校验器接口
type Validator interface {
	// Struct 校验结构体
	Struct(s any) error
	// StructCtx 带上下文校验结构体
	StructCtx(ctx context.Context, s any) error
}

// FieldError 单个字段的校验失败
type FieldError struct {
	Namespace string
	Field     string
	Tag       string
	Message   string
}

// ValidationErrors 校验错误集合，Error 返回以 "; " 拼接的翻译消息
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Option 校验器选项
type Option func(*validatorImpl)

// WithTagName 设置校验标签名
func WithTagName(tagName string) Option {
	return func(v *validatorImpl) {
		v.validator.SetTagName(tagName)
	}
}

// WithFieldNameTag 使用指定 struct tag（如 mapstructure）作为错误中的字段名
func WithFieldNameTag(tag string) Option {
	return func(v *validatorImpl) {
		v.validator.RegisterTagNameFunc(tagNameFunc(tag))
	}
}

type validatorImpl struct {
	validator *validator.Validate
	trans     ut.Translator
}

var (
	// Validate 全局校验器实例
	Validate Validator
	once     sync.Once
)

func init() {
	once.Do(func() {
		Validate = New(WithFieldNameTag("mapstructure"))
	})
}

// New 创建新的校验器实例
func New(opts ...Option) Validator {
	v := &validatorImpl{
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	v.trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v.validator, v.trans)

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Struct 校验结构体
func (v *validatorImpl) Struct(s any) error {
	return v.StructCtx(context.Background(), s)
}

// StructCtx 带上下文校验结构体
func (v *validatorImpl) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}

	return v.translate(v.validator.StructCtx(ctx, s))
}

func (v *validatorImpl) translate(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Namespace: fe.Namespace(),
			Field:     fe.Field(),
			Tag:       fe.Tag(),
			Message:   fe.Translate(v.trans),
		})
	}
	return out
}
