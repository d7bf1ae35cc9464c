package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-stock/internal/application/dto"
)

var errInvalidBody = errors.New("cuerpo inválido")

// validationError primer campo que no cumple su tag validate, con el nombre JSON del campo.
type validationError struct {
	field string
	tag   string
	param string
}

func (e *validationError) Error() string {
	switch e.tag {
	case "required":
		return fmt.Sprintf("'%s' es requerido", e.field)
	case "max":
		return fmt.Sprintf("'%s' admite como máximo %s", e.field, e.param)
	case "min":
		return fmt.Sprintf("'%s' requiere como mínimo %s", e.field, e.param)
	case "oneof":
		return fmt.Sprintf("'%s' debe ser uno de [%s]", e.field, e.param)
	case "email":
		return fmt.Sprintf("'%s' debe ser un email válido", e.field)
	case "uuid":
		return fmt.Sprintf("'%s' debe ser un UUID", e.field)
	default:
		return fmt.Sprintf("'%s' no cumple '%s'", e.field, e.tag)
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "query"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
	return validate
}

func validateStruct(payload any) error {
	if err := getValidator().Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &validationError{field: fe.Field(), tag: fe.Tag(), param: fe.Param()}
		}
		return err
	}
	return nil
}

// parseBody decodifica el JSON del body y lo valida.
func parseBody(c *fiber.Ctx, payload any) error {
	if err := c.BodyParser(payload); err != nil {
		return errInvalidBody
	}
	return validateStruct(payload)
}

// parseOptionalBody igual que parseBody pero un body vacío es válido.
func parseOptionalBody(c *fiber.Ctx, payload any) error {
	if len(c.Body()) == 0 {
		return validateStruct(payload)
	}
	return parseBody(c, payload)
}

// parsePage lee limit/offset de la query con valores por defecto.
func parsePage(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, &validationError{field: "limit/offset", tag: "numeric"}
	}
	if err := validateStruct(&page); err != nil {
		return page, err
	}
	page.DefaultPage()
	return page, nil
}
