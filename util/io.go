package util

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
)

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("failed to decode %s: %w", file, err)
	}
	return value, nil
}

// Reads rows of a csv file into structs of type T.
//
// Fields are matched by their "csv" tag against the header row. Rows with a
// wrong field count are skipped, empty or unparsable cells leave the field at
// its zero value.
func ReadCSVFromFile[T any](filename string, delimiter rune) (func(yield func(T) bool), error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(file)
	reader.Comma = delimiter
	header, err := reader.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read csv header of %s: %w", filename, err)
	}
	name_row_mapping := NewDict[string, int](10)
	for i, name := range header {
		name_row_mapping[strings.TrimSpace(name)] = i
	}

	var val T
	typ := reflect.TypeOf(val)
	num_field := typ.NumField()
	fields := NewList[Triple[int, int, reflect.Kind]](num_field)
	for i := 0; i < num_field; i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("csv")
		if tag == "" {
			continue
		}
		if !name_row_mapping.ContainsKey(tag) {
			continue
		}
		row := name_row_mapping[tag]
		switch field.Type.Kind() {
		case reflect.Bool:
			fields.Add(MakeTriple(i, row, reflect.Bool))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fields.Add(MakeTriple(i, row, reflect.Int))
		case reflect.Float32, reflect.Float64:
			fields.Add(MakeTriple(i, row, reflect.Float64))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			fields.Add(MakeTriple(i, row, reflect.Uint))
		case reflect.String:
			fields.Add(MakeTriple(i, row, reflect.String))
		}
	}

	return func(yield func(T) bool) {
		defer file.Close()
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			} else if err != nil {
				continue
			}
			t := reflect.New(typ).Elem()
			for _, field := range fields {
				index := field.A
				row := field.B
				typ := field.C
				value := strings.TrimSpace(record[row])
				if value == "" {
					continue
				}
				f := t.Field(index)
				switch typ {
				case reflect.Bool:
					num, _ := strconv.ParseBool(value)
					f.SetBool(num)
				case reflect.Int:
					num, _ := strconv.ParseInt(value, 10, 64)
					f.SetInt(num)
				case reflect.Uint:
					num, _ := strconv.ParseUint(value, 10, 64)
					f.SetUint(num)
				case reflect.Float64:
					num, _ := strconv.ParseFloat(value, 64)
					f.SetFloat(num)
				case reflect.String:
					f.SetString(value)
				}
			}
			value := t.Interface().(T)
			if !yield(value) {
				break
			}
		}
	}, nil
}
