package validator

import (
	"reflect"
	"strings"
)

// tagNameFunc 返回按 tag 取字段名的函数，tag 缺失时回退到 Go 字段名
func tagNameFunc(tag string) func(reflect.StructField) string {
	return func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		default:
			return name
		}
	}
}
