// Package validation traduz as regras declaradas nas tags `validate` dos formulários
// para erros de validação da aplicação.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	apperror "estoqueti/internal/errors"
)

// Validator encapsula um *validator.Validate configurado para ler a tag `msg`.
type Validator struct {
	validate *validator.Validate
}

// New cria um Validator. A tag `msg` de cada campo substitui o nome do campo nos erros,
// de forma que a mensagem exibida ao usuário é declarada junto da regra.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("msg")
	})
	return &Validator{validate: v}
}

// Struct valida s e retorna um *apperror.ValidationError com a mensagem do primeiro campo inválido.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.NewValidationError("Dados inválidos.")
	}

	fe := fieldErrs[0]
	// Sem tag msg, Field() devolve o próprio nome do campo Go.
	if fe.Field() == fe.StructField() {
		return apperror.NewValidationError(fmt.Sprintf("Campo %s inválido (%s).", fe.StructField(), fe.Tag()))
	}
	return apperror.NewValidationError(fe.Field())
}
