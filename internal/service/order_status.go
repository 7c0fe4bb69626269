package service

import (
	"strings"

	"github.com/handmade-next/internal/models"
)

// orderTransitions 订单状态流转表
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusAwaitingPayment: {models.OrderStatusPending, models.OrderStatusCanceled},
	models.OrderStatusPending:         {models.OrderStatusProcessing, models.OrderStatusCanceled},
	models.OrderStatusProcessing:      {models.OrderStatusShipped, models.OrderStatusCanceled},
	models.OrderStatusShipped:         {models.OrderStatusDelivered},
	models.OrderStatusDelivered:       {models.OrderStatusCompleted},
}

// ParseOrderStatus 解析订单状态
func ParseOrderStatus(raw string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case models.OrderStatusAwaitingPayment,
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCompleted,
		models.OrderStatusCanceled:
		return status, nil
	}
	return "", ErrOrderStatusInvalid
}

// CanTransition 判断状态是否允许从 current 流转到 target
func CanTransition(current, target models.OrderStatus) bool {
	for _, next := range orderTransitions[current] {
		if next == target {
			return true
		}
	}
	return false
}

// NextStatuses 返回当前状态可流转到的状态
func NextStatuses(current models.OrderStatus) []models.OrderStatus {
	return append([]models.OrderStatus(nil), orderTransitions[current]...)
}

// IsTerminal 是否为终态
func IsTerminal(status models.OrderStatus) bool {
	return len(orderTransitions[status]) == 0
}

// previousStatuses 返回可流转到 target 的全部状态
func previousStatuses(target models.OrderStatus) []models.OrderStatus {
	result := make([]models.OrderStatus, 0)
	for from, nexts := range orderTransitions {
		for _, next := range nexts {
			if next == target {
				result = append(result, from)
			}
		}
	}
	return result
}
