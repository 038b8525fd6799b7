// Package response concentra a escrita das respostas JSON dos handlers.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/pkg/middleware"
)

// Handle processa erros de serviço e envia respostas padronizadas ao cliente.
// Sem erro, data é codificado com successStatus; com erro, o corpo segue domain.ErrorResponse.
func Handle(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				log.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	// TRATAMENTO DE ERROS
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
			"path":       r.URL.Path,
			"request_id": middleware.GetRequestID(r.Context()),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// MaxBodyBytes é o tamanho máximo aceito para o corpo JSON de uma requisição.
const MaxBodyBytes = 1 << 20

// DecodeJSON lê o corpo da requisição em dst, limitado a MaxBodyBytes.
func DecodeJSON(r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}

// Actor retorna o usuário autenticado anexado pelo middleware de autenticação.
func Actor(r *http.Request) (domain.Actor, error) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return domain.Actor{}, apperror.NewUnauthorizedError("Sessão não encontrada.")
	}
	return actor, nil
}
