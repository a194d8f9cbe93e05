package orm

import (
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const validationCallback = "recordscope:validate"

// RegisterValidation makes GORM refuse to create or update any Validatable
// model that fails its rules, so saves that bypass Record are gated too. The
// statement fails with a *ValidationError and nothing is written. Updates
// are checked against the record as it will be stored: the values passed to
// Update or Updates overlay the model's current fields.
func RegisterValidation(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register(validationCallback, validateStatement); err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").Register(validationCallback, validateStatement)
}

func validateStatement(tx *gorm.DB) {
	stmt := tx.Statement
	if tx.Error != nil || stmt.Schema == nil {
		return
	}

	rv := stmt.ReflectValue
	switch rv.Kind() {
	case reflect.Struct:
		validateValue(tx, rv)
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len() && tx.Error == nil; i++ {
			validateValue(tx, reflect.Indirect(rv.Index(i)))
		}
	}
}

func validateValue(tx *gorm.DB, rv reflect.Value) {
	if !rv.CanAddr() {
		return
	}
	v, ok := rv.Addr().Interface().(Validatable)
	if !ok {
		return
	}
	rules := v.ValidationRules()
	if len(rules) == 0 {
		return
	}
	fields := fieldsOf(tx.Statement.Context, tx.Statement.Schema, rv)
	overlayDest(tx.Statement, fields)
	if errs := Validate(fields, rules); len(errs) > 0 {
		_ = tx.AddError(&ValidationError{Errors: errs})
	}
}

// overlayDest copies the values of Update and Updates into fields. Save and
// Create pass the model itself as Dest, which leaves fields untouched. SQL
// expressions are skipped; their result is only known to the database.
func overlayDest(stmt *gorm.Statement, fields Fields) {
	switch dest := stmt.Dest.(type) {
	case nil:
		return
	case map[string]any:
		for key, v := range dest {
			if _, ok := v.(clause.Expression); ok {
				continue
			}
			if f := stmt.Schema.LookUpField(key); f != nil && f.DBName != "" {
				key = f.DBName
			}
			fields[key] = v
		}
		return
	}

	dv := reflect.ValueOf(stmt.Dest)
	if dv.Kind() == reflect.Ptr {
		if mv := reflect.ValueOf(stmt.Model); mv.Kind() == reflect.Ptr && mv.Pointer() == dv.Pointer() {
			return
		}
		dv = dv.Elem()
	}
	if dv.Kind() != reflect.Struct || dv.Type() != stmt.Schema.ModelType {
		return
	}
	// Updates with a struct writes its non-zero fields only.
	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" {
			continue
		}
		if v, zero := f.ValueOf(stmt.Context, dv); !zero {
			fields[f.DBName] = v
		}
	}
}
