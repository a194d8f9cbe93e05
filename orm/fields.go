package orm

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm/schema"
)

// Fields maps database column names to values.
type Fields map[string]any

var schemaCache sync.Map

// FieldsOf returns the column values of a GORM model pointer.
func FieldsOf(model any) (Fields, error) {
	s, err := schema.Parse(model, &schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("orm: parse schema: %w", err)
	}
	return fieldsOf(context.Background(), s, reflect.ValueOf(model)), nil
}

func fieldsOf(ctx context.Context, s *schema.Schema, rv reflect.Value) Fields {
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	out := make(Fields, len(s.Fields))
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		v, _ := f.ValueOf(ctx, rv)
		out[f.DBName] = v
	}
	return out
}
