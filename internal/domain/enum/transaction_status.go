package enum

// TransactionStatus is the server-authoritative status of a transaction.
// It matches the wire format of the remote transaction service; clients only
// ever observe this value, they never write it.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// IsTerminal reports whether no further transition is expected. Once a
// terminal status is observed, polling must stop.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionCompleted || s == TransactionFailed
}

// IsValid reports whether the value is one of the known statuses.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionPending, TransactionCompleted, TransactionFailed:
		return true
	}
	return false
}

func (s TransactionStatus) String() string {
	return string(s)
}
