package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Monetary values are rendered as JSON numbers, matching what clients already parse.
	decimal.MarshalJSONWithoutQuotes = true
}

// Delivery is a single delivery ("entrega") owned by a tenant ("empresa").
type Delivery struct {
	ID       int64           `db:"id" json:"id"`
	Name     string          `db:"nome" json:"nome"`
	Address  string          `db:"endereco" json:"endereco"`
	Phone    string          `db:"telefone" json:"telefone"`
	Product  string          `db:"produto" json:"produto"`
	Amount   decimal.Decimal `db:"valor" json:"valor"`
	Date     time.Time       `db:"data" json:"data"`
	Tenant   string          `db:"empresa" json:"empresa"`
	OnCredit bool            `db:"fiado" json:"fiado"`
}

// Credential is a row of the login table. Password holds either a bcrypt hash or,
// for rows created before hashing was introduced, the plain value.
type Credential struct {
	Username string `db:"usuario"`
	Password string `db:"senha"`
	Tenant   string `db:"empresa"`
}
