package domain

// DashboardSummary reúne os indicadores da tela inicial do administrador.
type DashboardSummary struct {
	TotalMaterials  int            `json:"total_materials"`
	LowStockCount   int            `json:"low_stock_count"`
	LowStock        []Material     `json:"low_stock"`
	OpenRequests    int            `json:"open_requests"`
	MovementsCount  int            `json:"movements_count"`
	StockByCategory map[string]int `json:"stock_by_category"`
}
