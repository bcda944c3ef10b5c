package models

// ServiceRecordDetail is a service record joined to its car, service, parts
// and, when requested, payments.
type ServiceRecordDetail struct {
	ServiceRecord `bson:",inline"`
	Car           *Car        `bson:"car,omitempty" json:"car,omitempty"`
	Service       *Service    `bson:"service,omitempty" json:"service,omitempty"`
	PartsUsed     []PartsUsed `bson:"parts_used" json:"partsUsed"`
	Payments      []Payment   `bson:"payments,omitempty" json:"payments,omitempty"`
}

// PaymentDetail is a payment joined to its service record and, through the
// record, the car and service.
type PaymentDetail struct {
	Payment       `bson:",inline"`
	ServiceRecord *ServiceRecord `bson:"service_record,omitempty" json:"serviceRecord,omitempty"`
	Car           *Car           `bson:"car,omitempty" json:"car,omitempty"`
	Service       *Service       `bson:"service,omitempty" json:"service,omitempty"`
}

// ServiceName returns the joined service name, or "" when unresolved.
func (p *PaymentDetail) ServiceName() string {
	if p.Service == nil {
		return ""
	}
	return p.Service.Name
}
