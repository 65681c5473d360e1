package models

// Kind names one of the five transaction variants. The values match the
// "type" column of the input records.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

// Transaction is one validated input record. The set of implementations is
// closed: Deposit, Withdrawal, Dispute, Resolve and Chargeback.
type Transaction interface {
	ClientID() ClientID
	TxID() TxID
	Kind() Kind

	isTransaction()
}

// Ref carries the identifiers every transaction has.
type Ref struct {
	Client ClientID
	Tx     TxID
}

func (r Ref) ClientID() ClientID { return r.Client }
func (r Ref) TxID() TxID         { return r.Tx }

// Deposit credits the client's available funds.
type Deposit struct {
	Ref
	Amount Amount
}

// Withdrawal debits the client's available funds.
type Withdrawal struct {
	Ref
	Amount Amount
}

// Dispute claims back an earlier deposit, moving its amount to held.
type Dispute struct{ Ref }

// Resolve closes a dispute in the client's favour, releasing held funds.
type Resolve struct{ Ref }

// Chargeback closes a dispute against the client, removing the held funds
// and locking the account.
type Chargeback struct{ Ref }

func (Deposit) Kind() Kind    { return KindDeposit }
func (Withdrawal) Kind() Kind { return KindWithdrawal }
func (Dispute) Kind() Kind    { return KindDispute }
func (Resolve) Kind() Kind    { return KindResolve }
func (Chargeback) Kind() Kind { return KindChargeback }

func (Deposit) isTransaction()    {}
func (Withdrawal) isTransaction() {}
func (Dispute) isTransaction()    {}
func (Resolve) isTransaction()    {}
func (Chargeback) isTransaction() {}

func NewDeposit(client ClientID, tx TxID, amount Amount) Deposit {
	return Deposit{Ref: Ref{Client: client, Tx: tx}, Amount: amount}
}

func NewWithdrawal(client ClientID, tx TxID, amount Amount) Withdrawal {
	return Withdrawal{Ref: Ref{Client: client, Tx: tx}, Amount: amount}
}

func NewDispute(client ClientID, tx TxID) Dispute {
	return Dispute{Ref: Ref{Client: client, Tx: tx}}
}

func NewResolve(client ClientID, tx TxID) Resolve {
	return Resolve{Ref: Ref{Client: client, Tx: tx}}
}

func NewChargeback(client ClientID, tx TxID) Chargeback {
	return Chargeback{Ref: Ref{Client: client, Tx: tx}}
}

// AmountOf returns the amount carried by deposits and withdrawals.
func AmountOf(tx Transaction) (Amount, bool) {
	switch t := tx.(type) {
	case Deposit:
		return t.Amount, true
	case Withdrawal:
		return t.Amount, true
	default:
		return Amount{}, false
	}
}
