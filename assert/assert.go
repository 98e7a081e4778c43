package assert

import (
	"fmt"
	"reflect"
)

func Assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

func AssertNotEmpty(s string) {
	if s == "" {
		panic("expected non-empty string")
	}
}

// AssertNotNil also catches typed nil pointers
// stored in an interface.
func AssertNotNil(a any) {
	if a == nil {
		panic("expect non-nil value")
	}
	v := reflect.ValueOf(a)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		if v.IsNil() {
			panic(fmt.Sprintf("expect non-nil %T", a))
		}
	}
}
