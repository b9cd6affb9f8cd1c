// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"fmt"
	"reflect"

	"gonum.org/v1/gonum/stat"
)

// fieldBinding is one struct field's binding to a column name.
type fieldBinding struct {
	index int
	name  string
}

// structFieldCache maps a struct type to the field/column bindings of
// its exported fields, computed once per type the first time Scan sees
// it, keyed by struct type alone since a Rows value is cheap to
// construct fresh per query.
var structFieldCache = map[reflect.Type][]fieldBinding{}

// Scan copies the current row's values into dst, a pointer to a struct
// whose exported fields are matched to table columns by a `fits:"..."`
// tag, falling back to the Go field name. Unmatched fields are left
// untouched; unmatched columns are ignored. Works off the decoded
// map[string]interface{} row this package's Rows already holds, rather
// than re-reading bytes per field.
func (r *Rows) Scan(dst interface{}) error {
	if r.row == nil {
		return errf(KindInvalidFITS, "Rows.Scan", "Scan called before a successful Next")
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return errf(KindInvalidFITS, "Rows.Scan", "dst must be a pointer to a struct")
	}
	rv = rv.Elem()
	rt := rv.Type()

	bindings, ok := structFieldCache[rt]
	if !ok {
		bindings = make([]fieldBinding, 0, rt.NumField())
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if f.PkgPath != "" {
				continue // unexported
			}
			name := f.Tag.Get("fits")
			if name == "" {
				name = f.Name
			}
			bindings = append(bindings, fieldBinding{index: i, name: name})
		}
		structFieldCache[rt] = bindings
	}

	for _, b := range bindings {
		val, ok := r.row[b.name]
		if !ok {
			continue
		}
		if err := setField(rv.Field(b.index), val); err != nil {
			return wrapf(KindInvalidFITS, "Rows.Scan", err, "column %q into field %q", b.name, rt.Field(b.index).Name)
		}
	}
	return nil
}

func setField(field reflect.Value, val interface{}) error {
	rv := reflect.ValueOf(val)
	if !rv.IsValid() {
		return nil
	}
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}
	if rv.Type().ConvertibleTo(field.Type()) {
		field.Set(rv.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("value of type %v not assignable to field of type %v", rv.Type(), field.Type())
}

// Describe computes the mean and sample (n-1) standard deviation of a
// numeric column across rows [begin,end) of t, built on gonum/stat's
// running-moments implementation rather than a hand-rolled accumulator.
func (t *tableHDU) Describe(col string, begin, end int64) (mean, stddev float64, err error) {
	if err := t.ensureColumns(); err != nil {
		return 0, 0, err
	}
	rows, err := t.Rows(begin, end)
	if err != nil {
		return 0, 0, err
	}
	var xs []float64
	for rows.Next() {
		v, ok := rows.Value(col)
		if !ok {
			continue
		}
		f, ok := toFloat64(v)
		if !ok {
			continue
		}
		xs = append(xs, f)
	}
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}
	if len(xs) == 0 {
		return 0, 0, errf(KindInvalidFITS, "tableHDU.Describe", "column %q has no numeric values in range", col)
	}
	mean = stat.Mean(xs, nil)
	stddev = stat.StdDev(xs, nil)
	return mean, stddev, nil
}

func toFloat64(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int16:
		return float64(x), true
	case int8:
		return float64(x), true
	case byte:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	default:
		return 0, false
	}
}
