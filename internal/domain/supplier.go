package domain

import "time"

// Supplier representa um fornecedor de materiais.
type Supplier struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	CNPJ      string       `json:"cnpj"`
	Phone     string       `json:"phone"`
	Email     string       `json:"email"`
	Address   string       `json:"address"`
	Status    RecordStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
