package ports

// TxMetrics counts committed and reverted transactions per operation.
type TxMetrics interface {
	RecordAccepted(op string)
	RecordReverted(op string)
}
