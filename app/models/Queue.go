package models

import "github.com/DedS3t/twoworlds-backend/pkg/ledger"

type PaymentInvoice struct {
	CellId    int            `json:"cellId"`
	Mandatory *ledger.Ledger `json:"mandatory"`
	Optional  *ledger.Ledger `json:"optional"`
}

type ChanceQueue struct {
	Queue     []string `json:"queue"`
	Processed int      `json:"processed"`
}

type PaymentQueue struct {
	Queue     []PaymentInvoice `json:"queue"`
	Processed int              `json:"processed"`
}

type RoomQueue struct {
	Chances  ChanceQueue  `json:"chances"`
	Payments PaymentQueue `json:"payments"`
}

func (q RoomQueue) Clone() RoomQueue {
	out := q
	out.Chances.Queue = cloneSlice(q.Chances.Queue)
	out.Payments.Queue = cloneSlice(q.Payments.Queue)
	return out
}
