package entity

type TxType string

const (
	TxTypeTransfer   TxType = "transfer"
	TxTypeConversion TxType = "conversion"
)

// TxState is the reversal lifecycle state of a transaction.
type TxState string

const (
	TxStateActive   TxState = "active"
	TxStateReversed TxState = "reversed"
	TxStateReversal TxState = "reversal"
)

type LedgerEventKind string

const (
	LedgerEventTransferCompleted   LedgerEventKind = "transfer.completed"
	LedgerEventTransactionReversed LedgerEventKind = "transaction.reversed"
)
