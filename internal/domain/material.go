package domain

// Material representa um item do catálogo do almoxarifado.
type Material struct {
	ID           string `json:"id"`
	CodeDAT      string `json:"code_dat"` // Código interno sequencial (DAT-###)
	CodeSAP      string `json:"code_sap"`
	Description  string `json:"description"`
	Unit         string `json:"unit"`
	SupplierID   int    `json:"supplier_id"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	Category     string `json:"category"`
}

// IsLowStock é derivado e nunca armazenado.
func (m Material) IsLowStock() bool {
	return m.CurrentStock <= m.MinStock
}

// MaterialView é a representação de saída com o indicador de estoque baixo.
type MaterialView struct {
	Material
	LowStock bool `json:"low_stock"`
}

// NewMaterialView monta a visão de saída do material.
func NewMaterialView(m Material) MaterialView {
	return MaterialView{Material: m, LowStock: m.IsLowStock()}
}

// UnitOptions lista as unidades de medida aceitas no cadastro.
var UnitOptions = []string{"Unidade", "Caixa", "Metro", "Bobina", "Rolo", "Par", "Litro", "Pacote", "Kit", "Peça"}

// MaterialFilter define os parâmetros de busca do catálogo.
type MaterialFilter struct {
	Query        string // Substring de descrição ou código DAT
	Category     string
	LowStockOnly bool
}
