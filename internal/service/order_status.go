package service

import (
	"strings"

	"github.com/gearmart-next/internal/constants"
)

// allowedTransitions 订单状态机：key 为当前状态，value 为允许到达的目标状态集合。
// cancelled/returned/refunded 作为侧分支挂在主链路上。
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusShipped:    true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusDelivered:      true,
	},
	constants.OrderStatusOutForDelivery: {
		constants.OrderStatusDelivered: true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusReturned: true,
		constants.OrderStatusRefunded: true,
	},
	constants.OrderStatusReturned: {
		constants.OrderStatusRefunded: true,
	},
}

// canTransitionOrderStatus 判断订单状态迁移是否合法
func canTransitionOrderStatus(from, to string) bool {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	if from == to {
		return true
	}
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// validOrderStatus 判断状态取值是否为已知状态
func validOrderStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.OrderStatusPending,
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
		constants.OrderStatusReturned,
		constants.OrderStatusRefunded:
		return true
	}
	return false
}
