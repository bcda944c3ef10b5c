package models

// Request schemas for the record routes. Create requests carry required
// fields by value; update requests use pointers so that only supplied fields
// overwrite stored values.

type CreateCarRequest struct {
	Make         string    `json:"make" validate:"required"`
	Model        string    `json:"model" validate:"required"`
	Year         int       `json:"year" validate:"required,gt=0"`
	LicensePlate string    `json:"licensePlate" validate:"required"`
	VIN          string    `json:"vin" validate:"required"`
	Color        string    `json:"color"`
	Mileage      int       `json:"mileage" validate:"gte=0"`
	Status       CarStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UpdateCarRequest struct {
	Make         *string    `json:"make" validate:"omitnil,min=1"`
	Model        *string    `json:"model" validate:"omitnil,min=1"`
	Year         *int       `json:"year" validate:"omitnil,gt=0"`
	LicensePlate *string    `json:"licensePlate" validate:"omitnil,min=1"`
	VIN          *string    `json:"vin" validate:"omitnil,min=1"`
	Color        *string    `json:"color"`
	Mileage      *int       `json:"mileage" validate:"omitnil,gte=0"`
	Status       *CarStatus `json:"status" validate:"omitnil,oneof=active inactive"`
}

type CreateServiceRequest struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	BasePrice   Money         `json:"basePrice" validate:"gte=0"`
	Duration    *int          `json:"duration" validate:"omitnil,gt=0"`
	Status      ServiceStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UpdateServiceRequest struct {
	Name        *string        `json:"name" validate:"omitnil,min=1"`
	Description *string        `json:"description"`
	BasePrice   *Money         `json:"basePrice" validate:"omitnil,gte=0"`
	Duration    *int           `json:"duration" validate:"omitnil,gt=0"`
	Status      *ServiceStatus `json:"status" validate:"omitnil,oneof=active inactive"`
}

// PartRequest is one entry of the embedded parts list on a service record.
type PartRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
	Cost     Money  `json:"cost" validate:"gte=0"`
}

type CreateServiceRecordRequest struct {
	CarID      string        `json:"carId" validate:"required,mongodb"`
	ServiceID  string        `json:"serviceId" validate:"required,mongodb"`
	StartDate  *DateTime     `json:"startDate" validate:"required"`
	EndDate    *DateTime     `json:"endDate"`
	Status     RecordStatus  `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Cost       Money         `json:"cost" validate:"gte=0"`
	Technician string        `json:"technician" validate:"required"`
	Notes      string        `json:"notes"`
	PartsUsed  []PartRequest `json:"partsUsed"`
}

// UpdateServiceRecordRequest replaces the parts list wholesale when PartsUsed
// is present, including when it is an empty list. An explicit null endDate
// clears the end date.
type UpdateServiceRecordRequest struct {
	CarID      *string          `json:"carId" validate:"omitnil,mongodb"`
	ServiceID  *string          `json:"serviceId" validate:"omitnil,mongodb"`
	StartDate  *DateTime        `json:"startDate"`
	EndDate    OptionalDateTime `json:"endDate"`
	Status     *RecordStatus    `json:"status" validate:"omitnil,oneof=pending in_progress completed cancelled"`
	Cost       *Money           `json:"cost" validate:"omitnil,gte=0"`
	Technician *string          `json:"technician" validate:"omitnil,min=1"`
	Notes      *string          `json:"notes"`
	PartsUsed  *[]PartRequest   `json:"partsUsed"`
}

type CreatePaymentRequest struct {
	ServiceRecordID string        `json:"serviceRecordId" validate:"required,mongodb"`
	Amount          *Money        `json:"amount" validate:"required,gte=0"`
	PaymentDate     *DateTime     `json:"paymentDate"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash credit debit transfer"`
	Status          PaymentStatus `json:"status" validate:"omitempty,oneof=pending completed failed"`
	TransactionID   string        `json:"transactionId"`
	Notes           string        `json:"notes"`
}

type UpdatePaymentRequest struct {
	ServiceRecordID *string        `json:"serviceRecordId" validate:"omitnil,mongodb"`
	Amount          *Money         `json:"amount" validate:"omitnil,gte=0"`
	PaymentDate     *DateTime      `json:"paymentDate"`
	PaymentMethod   *PaymentMethod `json:"paymentMethod" validate:"omitnil,oneof=cash credit debit transfer"`
	Status          *PaymentStatus `json:"status" validate:"omitnil,oneof=pending completed failed"`
	TransactionID   *string        `json:"transactionId"`
	Notes           *string        `json:"notes"`
}
