package entity

import "time"

// Customer representa un cliente sin préstamo asociado (registro simple).
// No tiene campos derivados ni restricciones de unicidad entre registros.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	JoinDate  time.Time
	IDType    string
	IDNumber  string
	Photo     *ImageRef
	CreatedAt time.Time
	UpdatedAt time.Time
}
