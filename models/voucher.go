package models

import "time"

// BonoDefinition describes a purchasable session pack for one service.
type BonoDefinition struct {
	ID            string  `bson:"id" json:"id"`
	ServiceID     string  `bson:"service_id" json:"serviceId"`
	Name          string  `bson:"name" json:"name"`
	TotalSessions int     `bson:"total_sessions" json:"totalSessions"`
	Price         float64 `bson:"price" json:"price"`
}

// ClientVoucher links a client to a purchased pack and tracks how many
// sessions remain. The remaining counter is decremented by the process that
// consumes voucher-funded appointments; this service only reads it to gate
// the "book from voucher" action.
type ClientVoucher struct {
	ID                string    `bson:"id" json:"id"`
	ClientID          string    `bson:"client_id" json:"clientId"`
	DefinitionID      string    `bson:"definition_id" json:"definitionId"`
	ServiceID         string    `bson:"service_id" json:"serviceId"`
	TotalSessions     int       `bson:"total_sessions" json:"totalSessions"`
	RemainingSessions int       `bson:"remaining_sessions" json:"remainingSessions"`
	PurchasedAt       time.Time `bson:"purchased_at" json:"purchasedAt"`
}

// Usable reports whether the voucher still has sessions to spend.
func (v ClientVoucher) Usable() bool {
	return v.RemainingSessions > 0
}
