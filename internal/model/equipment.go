package model

type Equipment struct {
	Base
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Stock       int    `db:"stock" json:"stock"`
}

type CreateEquipmentRequest struct {
	Name        string
	Description string
	Stock       int
}
