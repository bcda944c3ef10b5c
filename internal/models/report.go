package models

// UnknownGroup labels rows whose grouping association cannot be resolved.
const UnknownGroup = "Unknown"

// RevenueReport summarises payments.
type RevenueReport struct {
	TotalRevenue     Money            `json:"totalRevenue"`
	RevenueByMethod  map[string]Money `json:"revenueByMethod"`
	RevenueByService map[string]Money `json:"revenueByService"`
	Payments         []PaymentDetail  `json:"payments"`
}

// ServiceStats are the performance figures for one service name.
type ServiceStats struct {
	TotalServices     int     `json:"totalServices"`
	TotalCost         Money   `json:"totalCost"`
	AverageCost       float64 `json:"averageCost"`
	CompletedServices int     `json:"completedServices"`
}

// PerformanceReport summarises service records per service.
type PerformanceReport struct {
	ServiceStats   map[string]*ServiceStats `json:"serviceStats"`
	TotalServices  int                      `json:"totalServices"`
	ServiceRecords []ServiceRecordDetail    `json:"serviceRecords"`
}

// PartInventory is one row of the grouped parts aggregation.
type PartInventory struct {
	Name          string `bson:"_id" json:"name"`
	TotalQuantity int64  `bson:"total_quantity" json:"totalQuantity"`
	TotalCost     Money  `bson:"total_cost" json:"totalCost"`
}

// InventoryReport summarises parts consumption.
type InventoryReport struct {
	PartsInventory   []PartInventory `json:"partsInventory"`
	TotalPartsCost   Money           `json:"totalPartsCost"`
	TotalUniqueParts int             `json:"totalUniqueParts"`
}

// CarHistory is the service history of one car.
type CarHistory struct {
	TotalServices int                   `json:"totalServices"`
	TotalSpent    Money                 `json:"totalSpent"`
	Services      []ServiceRecordDetail `json:"services"`
}

// CustomerHistoryReport groups service records by car.
type CustomerHistoryReport struct {
	CarHistory    map[string]*CarHistory `json:"carHistory"`
	TotalCars     int                    `json:"totalCars"`
	TotalServices int                    `json:"totalServices"`
}

// DashboardSummary backs the admin UI landing page.
type DashboardSummary struct {
	TotalRevenue        Money                 `json:"totalRevenue"`
	TotalServices       int                   `json:"totalServices"`
	AverageServiceHours float64               `json:"averageServiceHours"`
	ActiveCars          int                   `json:"activeCars"`
	RecentRecords       []ServiceRecordDetail `json:"recentRecords"`
}
