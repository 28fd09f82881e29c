package transfer

// Bytes returns the canonical byte encoding of the payload used for
// signing and fee calculation: the raw UTF-8 bytes of the currency
// immediately followed by the raw UTF-8 bytes of the amount string. There
// is no version byte, length prefix or delimiter. The encoding is not
// self-delimiting; disambiguation belongs to the surrounding envelope and
// the exact concatenation must be preserved for wire compatibility.
func Bytes(a *Asset) []byte {
	buf := make([]byte, 0, len(a.Currency)+len(a.Amount))
	buf = append(buf, a.Currency...)
	buf = append(buf, a.Amount...)
	return buf
}

// Row is the flat persisted shape of a transfer transaction. Presence of
// the currency column marks the row as belonging to this transaction type.
type Row struct {
	TxID     string `json:"t_id"`
	Currency string `json:"transfers_currency,omitempty"`
	Amount   string `json:"transfers_amount,omitempty"`
}

// Read reconstructs the transfer payload from a persisted row. Rows
// without a currency column belong to other transaction types and decode
// to nil. The columns are not re-validated; validation happened at
// verification time, before persistence.
func Read(row *Row) *Asset {
	if len(row.Currency) == 0 {
		return nil
	}

	return &Asset{
		Currency: row.Currency,
		Amount:   row.Amount,
	}
}
