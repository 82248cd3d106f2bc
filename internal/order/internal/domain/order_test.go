// Copyright 2024 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validOrder() Order {
	return Order{
		BuyerID: 23,
		Items: []OrderItem{
			{SKU: SKU{ID: 1, SN: "sku-a", Price: 1000, Quantity: 2}, LineTotal: 2000},
			{SKU: SKU{ID: 2, SN: "sku-b", Price: 500, Quantity: 1}, LineTotal: 500},
		},
		Subtotal: 2500,
		Tax:      200,
		Shipping: 0,
		Discount: 0,
		Total:    2700,
	}
}

func TestOrder_Validate(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		mutate  func(o *Order)
		wantErr error
	}{
		{
			name:   "合法订单",
			mutate: func(o *Order) {},
		},
		{
			name:    "订单项为空",
			mutate:  func(o *Order) { o.Items = nil },
			wantErr: ErrEmptyItems,
		},
		{
			name:    "数量为零",
			mutate:  func(o *Order) { o.Items[0].SKU.Quantity = 0 },
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "价格为负",
			mutate:  func(o *Order) { o.Items[0].SKU.Price = -1 },
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "单项小计与价格数量不符",
			mutate:  func(o *Order) { o.Items[0].LineTotal = 1999 },
			wantErr: ErrInvalidLineTotal,
		},
		{
			name:    "小计与订单项之和不符",
			mutate:  func(o *Order) { o.Subtotal = 2400 },
			wantErr: ErrAmountMismatch,
		},
		{
			name:    "总额与各分项不符",
			mutate:  func(o *Order) { o.Total = 2500 },
			wantErr: ErrAmountMismatch,
		},
		{
			name: "优惠后总额为负",
			mutate: func(o *Order) {
				o.Discount = 5000
				o.Total = 2500 + 200 - 5000
			},
			wantErr: ErrNegativeAmount,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			o := validOrder()
			tc.mutate(&o)
			err := o.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestOrderStatus_CanAdvanceTo(t *testing.T) {
	t.Parallel()

	t.Run("自提链路", func(t *testing.T) {
		t.Parallel()
		assert.True(t, OrderStatusConfirmed.CanAdvanceTo(OrderStatusProcessing))
		assert.True(t, OrderStatusProcessing.CanAdvanceTo(OrderStatusReady))
		assert.True(t, OrderStatusReady.CanAdvanceTo(OrderStatusCompleted))
	})

	t.Run("配送链路", func(t *testing.T) {
		t.Parallel()
		assert.True(t, OrderStatusProcessing.CanAdvanceTo(OrderStatusShipped))
		assert.True(t, OrderStatusShipped.CanAdvanceTo(OrderStatusOutForDelivery))
		assert.True(t, OrderStatusOutForDelivery.CanAdvanceTo(OrderStatusDelivered))
	})

	t.Run("不允许跳跃或后退", func(t *testing.T) {
		t.Parallel()
		assert.False(t, OrderStatusConfirmed.CanAdvanceTo(OrderStatusReady))
		assert.False(t, OrderStatusConfirmed.CanAdvanceTo(OrderStatusDelivered))
		assert.False(t, OrderStatusProcessing.CanAdvanceTo(OrderStatusConfirmed))
		assert.False(t, OrderStatusReady.CanAdvanceTo(OrderStatusShipped))
	})

	t.Run("终态不允许任何迁移", func(t *testing.T) {
		t.Parallel()
		for _, s := range []OrderStatus{
			OrderStatusCompleted, OrderStatusDelivered,
			OrderStatusCanceled, OrderStatusRefunded,
		} {
			assert.True(t, s.IsTerminal())
			assert.False(t, s.CanAdvanceTo(OrderStatusProcessing))
		}
	})
}

func TestPaymentStatus_CanUploadBill(t *testing.T) {
	t.Parallel()
	assert.True(t, PaymentStatusPending.CanUploadBill())
	assert.True(t, PaymentStatusRejected.CanUploadBill())
	assert.False(t, PaymentStatusPendingVerification.CanUploadBill())
	assert.False(t, PaymentStatusVerified.CanUploadBill())
	assert.False(t, PaymentStatusCompleted.CanUploadBill())
}

func TestOrder_DeliveryConsistent(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name           string
		paymentStatus  PaymentStatus
		deliveryStatus DeliveryStatus
		want           bool
	}{
		{
			name:           "未审核_配送待处理",
			paymentStatus:  PaymentStatusPending,
			deliveryStatus: DeliveryStatusPending,
			want:           true,
		},
		{
			name:           "未审核_配送已确认",
			paymentStatus:  PaymentStatusPendingVerification,
			deliveryStatus: DeliveryStatusConfirmed,
			want:           false,
		},
		{
			name:           "被拒绝_配送已发货",
			paymentStatus:  PaymentStatusRejected,
			deliveryStatus: DeliveryStatusShipped,
			want:           false,
		},
		{
			name:           "审核通过_配送已确认",
			paymentStatus:  PaymentStatusVerified,
			deliveryStatus: DeliveryStatusConfirmed,
			want:           true,
		},
		{
			name:           "审核通过_配送已送达",
			paymentStatus:  PaymentStatusVerified,
			deliveryStatus: DeliveryStatusDelivered,
			want:           true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			o := Order{
				Payment:  Payment{Status: tc.paymentStatus},
				Delivery: Delivery{Status: tc.deliveryStatus},
			}
			assert.Equal(t, tc.want, o.DeliveryConsistent())
		})
	}
}
