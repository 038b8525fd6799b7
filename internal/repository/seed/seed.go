// Package seed contém a carga de demonstração do almoxarifado (usuários, fornecedores,
// materiais, solicitações e movimentações).
package seed

import (
	"time"

	"estoqueti/internal/domain"
)

var seededAt = time.Date(2023, 10, 1, 8, 0, 0, 0, time.UTC)

// Users retorna os usuários de demonstração, todos com o mesmo hash de senha.
func Users(passwordHash string) []domain.User {
	users := []domain.User{
		{ID: "1", Name: "Carlos Administrador", Email: "admin@amazonas.com.br", Role: domain.RoleAdmin, Department: "TI - Infraestrutura", RegistrationID: "001", Company: "Amazonas Energia"},
		{ID: "2", Name: "João Solicitante", Email: "joao@amazonas.com.br", Role: domain.RoleSolicitante, Department: "Manutenção", RegistrationID: "002", Company: "Tercerizada A"},
		{ID: "3", Name: "Maria Engenharia", Email: "maria@amazonas.com.br", Role: domain.RoleSolicitante, Department: "Engenharia", RegistrationID: "003", Company: "Amazonas Energia"},
		{ID: "4", Name: "Usuário de Teste", Email: "teste@amazonas.com.br", Role: domain.RoleSolicitante, Department: "TI - Qualidade", RegistrationID: "998", Company: "Amazonas Energia"},
		{ID: "5", Name: "Admin de Teste", Email: "admin.teste@amazonas.com.br", Role: domain.RoleAdmin, Department: "TI - Gestão", RegistrationID: "999", Company: "Amazonas Energia"},
	}
	for i := range users {
		users[i].PasswordHash = passwordHash
		users[i].Status = domain.StatusAtivo
		users[i].CreatedAt = seededAt
		users[i].UpdatedAt = seededAt
	}
	return users
}

// Suppliers retorna os fornecedores de demonstração.
func Suppliers() []domain.Supplier {
	suppliers := []domain.Supplier{
		{ID: 1, Name: "Dell Computadores", CNPJ: "00.000.000/0001-99", Phone: "(11) 4004-0000", Email: "contato@dell.com", Address: "Av. Industrial, SP"},
		{ID: 2, Name: "Furukawa Electric", CNPJ: "11.111.111/0001-11", Phone: "(41) 3333-3333", Email: "vendas@furukawa.com", Address: "Curitiba, PR"},
		{ID: 3, Name: "Cisco Systems", CNPJ: "22.222.222/0001-22", Phone: "(11) 5555-5555", Email: "br-sales@cisco.com", Address: "São Paulo, SP"},
		{ID: 4, Name: "Kalunga Papelaria", CNPJ: "33.333.333/0001-33", Phone: "(11) 3003-3003", Email: "empresas@kalunga.com", Address: "Manaus, AM"},
	}
	for i := range suppliers {
		suppliers[i].Status = domain.StatusAtivo
		suppliers[i].CreatedAt = seededAt
		suppliers[i].UpdatedAt = seededAt
	}
	return suppliers
}

// Materials retorna o catálogo de demonstração.
func Materials() []domain.Material {
	return []domain.Material{
		{ID: "m1", CodeDAT: "DAT-001", CodeSAP: "SAP-1001", Description: "Cabo UTP Cat6 Azul", Unit: "Caixa", SupplierID: 2, CurrentStock: 45, MinStock: 10, Category: "Cabeamento"},
		{ID: "m2", CodeDAT: "DAT-002", CodeSAP: "SAP-1002", Description: "Conector RJ45 Macho", Unit: "Unidade", SupplierID: 2, CurrentStock: 500, MinStock: 100, Category: "Conectores"},
		{ID: "m3", CodeDAT: "DAT-003", CodeSAP: "SAP-2001", Description: "Mouse Óptico USB Dell", Unit: "Unidade", SupplierID: 1, CurrentStock: 12, MinStock: 15, Category: "Periféricos"},
		{ID: "m4", CodeDAT: "DAT-004", CodeSAP: "SAP-2002", Description: "Teclado ABNT2 USB Dell", Unit: "Unidade", SupplierID: 1, CurrentStock: 8, MinStock: 10, Category: "Periféricos"},
		{ID: "m5", CodeDAT: "DAT-005", CodeSAP: "SAP-3001", Description: "Switch Cisco 24 Portas Gigabit", Unit: "Unidade", SupplierID: 3, CurrentStock: 2, MinStock: 2, Category: "Rede"},
		{ID: "m6", CodeDAT: "DAT-006", CodeSAP: "SAP-4001", Description: "Bateria 9V Alcalina", Unit: "Unidade", SupplierID: 4, CurrentStock: 0, MinStock: 20, Category: "Consumíveis"},
		{ID: "m7", CodeDAT: "DAT-007", CodeSAP: "SAP-5001", Description: "Monitor 24 Polegadas LED", Unit: "Unidade", SupplierID: 1, CurrentStock: 5, MinStock: 5, Category: "Periféricos"},
		{ID: "m8", CodeDAT: "DAT-008", CodeSAP: "SAP-6001", Description: "Capacete de Segurança Aba Frontal", Unit: "Unidade", SupplierID: 4, CurrentStock: 30, MinStock: 10, Category: "EPI"},
		{ID: "m9", CodeDAT: "DAT-009", CodeSAP: "SAP-6002", Description: "Luva de Vaqueta Par", Unit: "Par", SupplierID: 4, CurrentStock: 15, MinStock: 20, Category: "EPI"},
		{ID: "m10", CodeDAT: "DAT-010", CodeSAP: "SAP-7001", Description: "Toner Impressora Laser HP 85A", Unit: "Unidade", SupplierID: 4, CurrentStock: 3, MinStock: 5, Category: "Consumíveis"},
	}
}

// Requests retorna as solicitações de demonstração (uma pendente e uma concluída).
func Requests() []domain.MaterialRequest {
	return []domain.MaterialRequest{
		{
			ID:               "ID_00001",
			RequesterID:      "2",
			RequesterName:    "João Solicitante",
			RequesterCompany: "Tercerizada A",
			Department:       "Manutenção",
			Date:             "2023-11-28",
			Status:           domain.StatusPendente,
			Location:         "Sede - 2º Andar",
			Justification:    "Troca de periféricos equipe financeira",
			Items: []domain.RequestItem{
				{MaterialID: "m3", Quantity: 2, MaterialName: "Mouse Óptico USB Dell", MaterialUnit: "Unidade"},
				{MaterialID: "m4", Quantity: 2, MaterialName: "Teclado ABNT2 USB Dell", MaterialUnit: "Unidade"},
			},
			History: []domain.HistoryEntry{
				{Date: "2023-11-28 08:30", User: "João Solicitante", Action: domain.ActionAbertura, Message: "Solicitação criada no sistema."},
			},
		},
		{
			ID:               "ID_00002",
			RequesterID:      "3",
			RequesterName:    "Maria Engenharia",
			RequesterCompany: "Amazonas Energia",
			Department:       "Engenharia",
			Date:             "2023-11-29",
			Status:           domain.StatusConcluido,
			Location:         "Subestação Centro",
			Justification:    "Manutenção de rede urgente",
			Items: []domain.RequestItem{
				{MaterialID: "m1", Quantity: 2, MaterialName: "Cabo UTP Cat6 Azul", MaterialUnit: "Caixa"},
				{MaterialID: "m2", Quantity: 50, MaterialName: "Conector RJ45 Macho", MaterialUnit: "Unidade"},
			},
			History: []domain.HistoryEntry{
				{Date: "2023-11-29 09:00", User: "Maria Engenharia", Action: domain.ActionAbertura, Message: "Solicitação criada."},
				{Date: "2023-11-29 10:00", User: "Carlos Administrador", Action: domain.ActionAtender, Message: "Material liberado para retirada."},
				{Date: "2023-11-29 14:00", User: "Carlos Administrador", Action: domain.ActionConclusao, Message: "Entregue ao solicitante."},
			},
		},
	}
}

// Movements retorna as movimentações de demonstração, da mais antiga para a mais recente.
func Movements() []domain.Movement {
	return []domain.Movement{
		{ID: "mov-3", Type: domain.MovementEntrada, MaterialID: "m3", Quantity: 20, Date: "2023-10-15", Responsible: "Carlos Administrador", NF: "NF-1020", Contract: "CTR-2022/105", Order: "PED-7744"},
		{ID: "mov-1", Type: domain.MovementEntrada, MaterialID: "m1", Quantity: 10, Date: "2023-11-01", Responsible: "Carlos Administrador", NF: "NF-5050", Contract: "CTR-2023/001", Order: "PED-9988"},
		{ID: "mov-2", Type: domain.MovementSaida, MaterialID: "m1", Quantity: 2, Date: "2023-11-29", Responsible: "Carlos Administrador", Recipient: "Maria Engenharia", RequestID: "ID_00002", Ticket: "CH-12345"},
		{ID: "mov-4", Type: domain.MovementSaida, MaterialID: "m2", Quantity: 50, Date: "2023-11-29", Responsible: "Carlos Administrador", Recipient: "Maria Engenharia", RequestID: "ID_00002", Ticket: "CH-12345"},
		{ID: "mov-5", Type: domain.MovementDevolucao, MaterialID: "m1", Quantity: 1, Date: "2023-11-30", Responsible: "Carlos Administrador", DeliveredBy: "João da Silva", Ticket: "Obs: Material sobrou"},
	}
}
