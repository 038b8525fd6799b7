package domain

// Formulários de entrada por tipo de operação.
// A tag `msg` define a mensagem exibida quando a validação do campo falha.

// RequestItemForm é um item do carrinho de uma solicitação.
type RequestItemForm struct {
	MaterialID string `json:"material_id" validate:"required" msg:"Preencha todos os campos."`
	Quantity   int    `json:"quantity" validate:"gt=0" msg:"A quantidade deve ser maior que zero."`
}

// RequestForm é usado na abertura e no reenvio (correção) de uma solicitação.
type RequestForm struct {
	Justification string            `json:"justification" validate:"required" msg:"Preencha todos os campos."`
	Location      string            `json:"location" validate:"required" msg:"Preencha todos os campos."`
	Items         []RequestItemForm `json:"items" validate:"required,min=1,dive" msg:"Preencha todos os campos."`
}

// ActionForm acompanha as ações Atender, Pedir Correção e Rejeitar.
type ActionForm struct {
	Observation string   `json:"observation" validate:"required" msg:"Preencha a observação."`
	Attachments []string `json:"attachments"`
}

// Destinos possíveis na conclusão de uma solicitação.
const (
	DeliverToRequester = "requester"
	DeliverToOther     = "other"
)

// CompletionForm acompanha a ação Concluir.
type CompletionForm struct {
	DeliverTo   string `json:"deliver_to" validate:"required,oneof=requester other" msg:"Selecione quem recebeu o material."`
	Recipient   string `json:"recipient" validate:"required_if=DeliverTo other" msg:"Informe o nome de quem recebeu o material."`
	Observation string `json:"observation"`
}

// StockEntryForm registra uma entrada (compra) ou devolução de material.
type StockEntryForm struct {
	Type        MovementType `json:"type" validate:"required,oneof=ENTRADA DEVOLUCAO" msg:"Tipo de movimentação inválido."`
	MaterialID  string       `json:"material_id" validate:"required" msg:"Selecione um material."`
	Quantity    int          `json:"quantity" validate:"gt=0" msg:"A quantidade deve ser maior que zero."`
	NF          string       `json:"nf"`
	Observation string       `json:"observation"`
	DeliveredBy string       `json:"delivered_by"`
	Contract    string       `json:"contract"`
	Order       string       `json:"order"`
}

// MaterialForm é usado na criação e edição de materiais.
type MaterialForm struct {
	CodeSAP     string `json:"code_sap"`
	Description string `json:"description" validate:"required" msg:"A descrição do material é obrigatória."`
	Unit        string `json:"unit" validate:"required,oneof=Unidade Caixa Metro Bobina Rolo Par Litro Pacote Kit Peça" msg:"Unidade de medida inválida."`
	SupplierID  int    `json:"supplier_id" validate:"gt=0" msg:"Selecione um fornecedor."`
	MinStock    int    `json:"min_stock" validate:"gte=0" msg:"O estoque mínimo não pode ser negativo."`
	Category    string `json:"category" validate:"required" msg:"A categoria é obrigatória."`
}

// SupplierForm é usado na criação e edição de fornecedores.
type SupplierForm struct {
	Name    string `json:"name" validate:"required" msg:"O nome do fornecedor é obrigatório."`
	CNPJ    string `json:"cnpj" validate:"required" msg:"O CNPJ é obrigatório."`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email" msg:"E-mail inválido."`
	Address string `json:"address"`
}

// UserForm é usado na criação e edição de usuários.
type UserForm struct {
	Name           string   `json:"name" validate:"required" msg:"O nome é obrigatório."`
	Email          string   `json:"email" validate:"required,email" msg:"E-mail inválido."`
	Role           UserRole `json:"role" validate:"required,oneof=ADMIN SOLICITANTE" msg:"Perfil inválido."`
	Department     string   `json:"department"`
	RegistrationID string   `json:"registration_id" validate:"required,number" msg:"Matrícula deve conter apenas números."`
	Company        string   `json:"company"`
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Role     UserRole `json:"role" validate:"required" msg:"Preencha todos os campos."`
	Email    string   `json:"email" validate:"required" msg:"Preencha todos os campos."`
	Password string   `json:"password" validate:"required" msg:"Preencha todos os campos."`
}

// PasswordChange é o payload da troca de senha pelo próprio usuário.
type PasswordChange struct {
	OldPassword     string `json:"old_password" validate:"required" msg:"Preencha todos os campos."`
	NewPassword     string `json:"new_password" validate:"required" msg:"Preencha todos os campos."`
	ConfirmPassword string `json:"confirm_password" validate:"required" msg:"Preencha todos os campos."`
}
