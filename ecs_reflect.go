package morphscape

import (
	"reflect"
)

// Component columns are typed slices ([]T) held as any so queries can
// assert them back without reflection.

func columnMake(elem reflect.Type) any {
	return reflect.MakeSlice(reflect.SliceOf(elem), 0, 4).Interface()
}

func columnGet(column any, idx int) reflect.Value {
	return reflect.ValueOf(column).Index(idx)
}

func columnSet(column any, idx int, val reflect.Value) {
	reflect.ValueOf(column).Index(idx).Set(val)
}

func columnAppendZero(column any) any {
	v := reflect.ValueOf(column)
	return reflect.Append(v, reflect.Zero(v.Type().Elem())).Interface()
}

func columnTruncate(column any, n int) any {
	return reflect.ValueOf(column).Slice(0, n).Interface()
}

func columnLen(column any) int {
	return reflect.ValueOf(column).Len()
}

// componentValue unwraps a component passed by value or by pointer.
func componentValue(component any) (reflect.Type, reflect.Value) {
	t := reflect.TypeOf(component)
	v := reflect.ValueOf(component)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
		v = v.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		panic("component should be a struct or a pointer to a struct")
	}
	return t, v
}
