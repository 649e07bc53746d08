package model

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from TransactionStatus
		to   TransactionStatus
		want bool
	}{
		{"pending to approved", TransactionStatusPending, TransactionStatusApproved, true},
		{"pending to rejected", TransactionStatusPending, TransactionStatusRejected, true},
		{"pending to cancelled", TransactionStatusPending, TransactionStatusCancelled, true},
		{"pending to pending", TransactionStatusPending, TransactionStatusPending, false},
		{"approved to rejected", TransactionStatusApproved, TransactionStatusRejected, false},
		{"rejected to approved", TransactionStatusRejected, TransactionStatusApproved, false},
		{"cancelled to approved", TransactionStatusCancelled, TransactionStatusApproved, false},
		{"pending to arbitrary", TransactionStatusPending, TransactionStatus("shipped"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}
