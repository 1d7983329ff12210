package workflow

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldErrors errores de validación por campo (clave = nombre JSON del campo). Nunca llegan a la red.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Patrones de los formularios.
var (
	httpURLPattern    = regexp.MustCompile(`(?i)^https?://.+`)
	imageExtPattern   = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|bmp|svg)$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nifPattern        = regexp.MustCompile(`^[0-9A-Za-z]{7,12}$`)
	postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)
)

// Validator envuelve go-playground/validator con las reglas propias de la tienda y
// mensajes en español. Los mensajes se pueden afinar por campo con Messages.
type Validator struct {
	v *validator.Validate
}

// NewValidator registra las reglas personalizadas:
//
//	httpurl   empieza por http:// o https://
//	imageext  termina en una extensión de imagen conocida
//	mail      formato usuario@dominio.tld
//	nif       7 a 12 caracteres alfanuméricos
//	postcode  5 dígitos
//	notblank  no vacío tras quitar espacios
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		return d.InexactFloat64()
	}, decimal.Decimal{})

	mustRegister(v, "httpurl", func(fl validator.FieldLevel) bool {
		return httpURLPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v, "imageext", func(fl validator.FieldLevel) bool {
		return imageExtPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v, "mail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "nif", func(fl validator.FieldLevel) bool {
		return nifPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "postcode", func(fl validator.FieldLevel) bool {
		return postalCodePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("workflow: registrar %s: %v", tag, err))
	}
}

// Messages mensajes por "campo.regla" o por "campo" que sustituyen a los genéricos.
type Messages map[string]string

// Struct valida s y devuelve FieldErrors (nil si es válido). Solo se informa el primer
// error de cada campo.
func (val *Validator) Struct(s any, msgs Messages) FieldErrors {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"general": err.Error()}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(fe, msgs)
	}
	return out
}

func message(fe validator.FieldError, msgs Messages) string {
	if m, ok := msgs[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := msgs[fe.Field()]; ok {
		return m
	}
	switch fe.Tag() {
	case "required", "notblank":
		return "Este campo es obligatorio"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Mínimo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("Debe ser al menos %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Debe ser mayor o igual que %s", fe.Param())
	case "eqfield":
		return "Los valores no coinciden"
	case "oneof":
		return "Valor no permitido"
	case "mail":
		return "Email no válido"
	case "nif":
		return "DNI/NIF no válido"
	case "postcode":
		return "Código postal no válido"
	case "httpurl":
		return "Debe empezar por http:// o https://"
	case "imageext":
		return "Debe terminar en una extensión de imagen válida (.jpg, .png, .webp, etc.)"
	}
	return "Valor no válido"
}
