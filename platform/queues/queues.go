// Package queues implements the per-room chance and payment queues.
//
// Both queues are append-only with a processed cursor that only moves
// forward; entries before the cursor stay in place so a client that
// reconnects can be resynchronised. Callers serialise access per room.
package queues

import "github.com/DedS3t/twoworlds-backend/app/models"

func EnqueueChance(q models.RoomQueue, chanceId string) models.RoomQueue {
	out := q.Clone()
	out.Chances.Queue = append(out.Chances.Queue, chanceId)
	return out
}

// DequeueChance returns the entry at the cursor and advances it. ok is
// false when every entry was already processed.
func DequeueChance(q models.RoomQueue) (models.RoomQueue, string, bool) {
	if q.Chances.Processed >= len(q.Chances.Queue) {
		return q, "", false
	}
	out := q.Clone()
	id := out.Chances.Queue[out.Chances.Processed]
	out.Chances.Processed++
	return out, id, true
}

func FlushChances(q models.RoomQueue) models.RoomQueue {
	out := q.Clone()
	out.Chances = models.ChanceQueue{Queue: []string{}}
	return out
}

func EnqueuePayment(q models.RoomQueue, invoice models.PaymentInvoice) models.RoomQueue {
	out := q.Clone()
	out.Payments.Queue = append(out.Payments.Queue, invoice)
	return out
}

func DequeuePayment(q models.RoomQueue) (models.RoomQueue, models.PaymentInvoice, bool) {
	if q.Payments.Processed >= len(q.Payments.Queue) {
		return q, models.PaymentInvoice{}, false
	}
	out := q.Clone()
	invoice := out.Payments.Queue[out.Payments.Processed]
	out.Payments.Processed++
	return out, invoice, true
}

// PeekPayment returns the entry at the cursor without consuming it.
func PeekPayment(q models.RoomQueue) (models.PaymentInvoice, bool) {
	if q.Payments.Processed >= len(q.Payments.Queue) {
		return models.PaymentInvoice{}, false
	}
	return q.Payments.Queue[q.Payments.Processed], true
}

func FlushPayments(q models.RoomQueue) models.RoomQueue {
	out := q.Clone()
	out.Payments = models.PaymentQueue{Queue: []models.PaymentInvoice{}}
	return out
}

func PendingPayments(q models.RoomQueue) int {
	return len(q.Payments.Queue) - q.Payments.Processed
}

func PendingChances(q models.RoomQueue) int {
	return len(q.Chances.Queue) - q.Chances.Processed
}

// Flush clears both queues.
func Flush(q models.RoomQueue) models.RoomQueue {
	return FlushPayments(FlushChances(q))
}
