package service

import (
	"testing"

	"github.com/gearmart-next/internal/constants"
)

func TestCanTransitionOrderStatus(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusShipped, false},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusProcessing, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusShipped, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusCancelled, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusDelivered, false},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusProcessing, constants.OrderStatusCancelled, true},
		{constants.OrderStatusProcessing, constants.OrderStatusConfirmed, false},
		{constants.OrderStatusShipped, constants.OrderStatusOutForDelivery, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled, false},
		{constants.OrderStatusOutForDelivery, constants.OrderStatusDelivered, true},
		{constants.OrderStatusOutForDelivery, constants.OrderStatusCancelled, false},
		{constants.OrderStatusDelivered, constants.OrderStatusReturned, true},
		{constants.OrderStatusDelivered, constants.OrderStatusRefunded, true},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusReturned, constants.OrderStatusRefunded, true},
		{constants.OrderStatusRefunded, constants.OrderStatusReturned, false},
		{constants.OrderStatusCancelled, constants.OrderStatusConfirmed, false},
		// 同状态视为合法
		{constants.OrderStatusShipped, constants.OrderStatusShipped, true},
		// 大小写与空白归一化
		{"  PENDING ", "Confirmed", true},
		// 未知状态
		{"bogus", constants.OrderStatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := canTransitionOrderStatus(tc.from, tc.to); got != tc.want {
			t.Errorf("canTransitionOrderStatus(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		constants.OrderStatusPending,
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
		constants.OrderStatusReturned,
		constants.OrderStatusRefunded,
		" DELIVERED ",
	} {
		if !validOrderStatus(status) {
			t.Errorf("expected %q valid", status)
		}
	}
	for _, status := range []string{"", "bogus", "complete"} {
		if validOrderStatus(status) {
			t.Errorf("expected %q invalid", status)
		}
	}
}
