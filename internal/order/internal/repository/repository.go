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

package repository

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/repository/dao"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error)
	FindOrderByID(ctx context.Context, id int64) (domain.Order, error)
	ListOrders(ctx context.Context, offset, limit int, buyerID int64) ([]domain.Order, error)
	TotalOrders(ctx context.Context, buyerID int64) (int64, error)
	ListAllOrders(ctx context.Context, offset, limit int) ([]domain.Order, error)
	TotalAllOrders(ctx context.Context) (int64, error)
	ListOrdersByPaymentStatus(ctx context.Context, status domain.PaymentStatus, offset, limit int) ([]domain.Order, error)
	TotalOrdersByPaymentStatus(ctx context.Context, status domain.PaymentStatus) (int64, error)

	UpdatePaymentBill(ctx context.Context, buyerID int64, sn string, billImage string) error
	MarkPaymentVerified(ctx context.Context, sn string, adminNotes string) (domain.Order, error)
	MarkPaymentRejected(ctx context.Context, sn string, reason string, adminNotes string) (domain.Order, error)
	AdvanceOrderStatus(ctx context.Context, sn string, from, to domain.OrderStatus, deliveryStatus domain.DeliveryStatus, deliveredAt int64) error
	CompleteOrder(ctx context.Context, orderID int64, notes string) (domain.Order, error)
	CancelOrder(ctx context.Context, buyerID int64, orderID int64) error
	RefundOrder(ctx context.Context, sn string, reason string) error
	SetPickupCode(ctx context.Context, orderID int64, code string) error
	AppendInternalNotes(ctx context.Context, sn string, notes string) error

	ListExpiredOrders(ctx context.Context, offset, limit int, expiredBefore time.Time) ([]domain.Order, error)
	TotalExpiredOrders(ctx context.Context, expiredBefore time.Time) (int64, error)
	CloseExpiredOrders(ctx context.Context, orderIDs []int64) error
}

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{dao: d}
}

type orderRepository struct {
	dao dao.OrderDAO
}

func (o *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	oid, err := o.dao.CreateOrder(ctx, o.toOrderEntity(order), o.toOrderItemEntities(order.Items))
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = oid
	return order, nil
}

func (o *orderRepository) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	order, err := o.dao.FindOrderBySN(ctx, sn)
	if err != nil {
		return domain.Order{}, err
	}
	return o.assembleOrder(ctx, order)
}

func (o *orderRepository) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error) {
	order, err := o.dao.FindOrderBySNAndBuyerID(ctx, sn, buyerID)
	if err != nil {
		return domain.Order{}, err
	}
	return o.assembleOrder(ctx, order)
}

func (o *orderRepository) FindOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	order, err := o.dao.FindOrderByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	return o.assembleOrder(ctx, order)
}

func (o *orderRepository) assembleOrder(ctx context.Context, order dao.Order) (domain.Order, error) {
	items, err := o.dao.FindOrderItemsByOrderID(ctx, order.Id)
	if err != nil {
		return domain.Order{}, err
	}
	res := o.toOrderDomain(order)
	res.Items = o.toOrderItemDomains(items)
	return res, nil
}

func (o *orderRepository) ListOrders(ctx context.Context, offset, limit int, buyerID int64) ([]domain.Order, error) {
	orders, err := o.dao.List(ctx, offset, limit, buyerID)
	if err != nil {
		return nil, err
	}
	return o.toOrderDomains(orders), nil
}

func (o *orderRepository) TotalOrders(ctx context.Context, buyerID int64) (int64, error) {
	return o.dao.Count(ctx, buyerID)
}

func (o *orderRepository) ListAllOrders(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	orders, err := o.dao.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return o.toOrderDomains(orders), nil
}

func (o *orderRepository) TotalAllOrders(ctx context.Context) (int64, error) {
	return o.dao.CountAll(ctx)
}

func (o *orderRepository) ListOrdersByPaymentStatus(ctx context.Context, status domain.PaymentStatus, offset, limit int) ([]domain.Order, error) {
	orders, err := o.dao.ListByPaymentStatus(ctx, status.ToUint8(), offset, limit)
	if err != nil {
		return nil, err
	}
	return o.toOrderDomains(orders), nil
}

func (o *orderRepository) TotalOrdersByPaymentStatus(ctx context.Context, status domain.PaymentStatus) (int64, error) {
	return o.dao.CountByPaymentStatus(ctx, status.ToUint8())
}

func (o *orderRepository) UpdatePaymentBill(ctx context.Context, buyerID int64, sn string, billImage string) error {
	return o.dao.UpdatePaymentBill(ctx, buyerID, sn, billImage)
}

func (o *orderRepository) MarkPaymentVerified(ctx context.Context, sn string, adminNotes string) (domain.Order, error) {
	order, err := o.dao.MarkPaymentVerified(ctx, sn, adminNotes)
	if err != nil {
		return domain.Order{}, err
	}
	return o.toOrderDomain(order), nil
}

func (o *orderRepository) MarkPaymentRejected(ctx context.Context, sn string, reason string, adminNotes string) (domain.Order, error) {
	order, err := o.dao.MarkPaymentRejected(ctx, sn, reason, adminNotes)
	if err != nil {
		return domain.Order{}, err
	}
	return o.toOrderDomain(order), nil
}

func (o *orderRepository) AdvanceOrderStatus(ctx context.Context, sn string, from, to domain.OrderStatus, deliveryStatus domain.DeliveryStatus, deliveredAt int64) error {
	return o.dao.AdvanceOrderStatus(ctx, sn, from.ToUint8(), to.ToUint8(), deliveryStatus.ToUint8(), deliveredAt)
}

func (o *orderRepository) CompleteOrder(ctx context.Context, orderID int64, notes string) (domain.Order, error) {
	order, err := o.dao.CompleteOrder(ctx, orderID, notes)
	if err != nil {
		return domain.Order{}, err
	}
	return o.toOrderDomain(order), nil
}

func (o *orderRepository) CancelOrder(ctx context.Context, buyerID int64, orderID int64) error {
	return o.dao.CancelOrder(ctx, buyerID, orderID)
}

func (o *orderRepository) RefundOrder(ctx context.Context, sn string, reason string) error {
	return o.dao.RefundOrder(ctx, sn, reason)
}

func (o *orderRepository) SetPickupCode(ctx context.Context, orderID int64, code string) error {
	return o.dao.SetPickupCode(ctx, orderID, code)
}

func (o *orderRepository) AppendInternalNotes(ctx context.Context, sn string, notes string) error {
	return o.dao.AppendInternalNotes(ctx, sn, notes)
}

func (o *orderRepository) ListExpiredOrders(ctx context.Context, offset, limit int, expiredBefore time.Time) ([]domain.Order, error) {
	orders, err := o.dao.ListExpiredOrders(ctx, offset, limit, expiredBefore.UnixMilli())
	if err != nil {
		return nil, err
	}
	return o.toOrderDomains(orders), nil
}

func (o *orderRepository) TotalExpiredOrders(ctx context.Context, expiredBefore time.Time) (int64, error) {
	return o.dao.TotalExpiredOrders(ctx, expiredBefore.UnixMilli())
}

func (o *orderRepository) CloseExpiredOrders(ctx context.Context, orderIDs []int64) error {
	return o.dao.CloseExpiredOrders(ctx, orderIDs)
}

func (o *orderRepository) toOrderEntity(order domain.Order) dao.Order {
	return dao.Order{
		Id:                order.ID,
		SN:                order.SN,
		BuyerId:           order.BuyerID,
		Subtotal:          order.Subtotal,
		Tax:               order.Tax,
		Shipping:          order.Shipping,
		Discount:          order.Discount,
		Total:             order.Total,
		Status:            order.Status.ToUint8(),
		PaymentMethod:     order.Payment.Method.ToUint8(),
		PaymentStatus:     order.Payment.Status.ToUint8(),
		BillImage:         order.Payment.BillImage,
		BillUploadedAt:    order.Payment.BillUploadedAt,
		BillVerifiedAt:    order.Payment.BillVerifiedAt,
		RejectionReason:   order.Payment.RejectionReason,
		PaymentAdminNotes: order.Payment.AdminNotes,
		DeliveryMethod:    order.Delivery.Method.ToUint8(),
		DeliveryStatus:    order.Delivery.Status.ToUint8(),
		PickupCode:        order.Delivery.PickupCode,
		Address:           order.Delivery.Address,
		DeliveredAt:       order.Delivery.DeliveredAt,
		CustomerNotes:     order.CustomerNotes,
		InternalNotes:     order.InternalNotes,
	}
}

func (o *orderRepository) toOrderItemEntities(items []domain.OrderItem) []dao.OrderItem {
	return slice.Map(items, func(_ int, src domain.OrderItem) dao.OrderItem {
		return dao.OrderItem{
			SPUId:     src.SKU.SPUID,
			SKUId:     src.SKU.ID,
			SKUSN:     src.SKU.SN,
			SKUName:   src.SKU.Name,
			SKUImage:  src.SKU.Image,
			SKUPrice:  src.SKU.Price,
			Quantity:  src.SKU.Quantity,
			LineTotal: src.LineTotal,
		}
	})
}

func (o *orderRepository) toOrderDomain(order dao.Order) domain.Order {
	return domain.Order{
		ID:       order.Id,
		SN:       order.SN,
		BuyerID:  order.BuyerId,
		Subtotal: order.Subtotal,
		Tax:      order.Tax,
		Shipping: order.Shipping,
		Discount: order.Discount,
		Total:    order.Total,
		Status:   domain.OrderStatus(order.Status),
		Payment: domain.Payment{
			Method:          domain.PaymentMethod(order.PaymentMethod),
			Status:          domain.PaymentStatus(order.PaymentStatus),
			BillImage:       order.BillImage,
			BillUploadedAt:  order.BillUploadedAt,
			BillVerifiedAt:  order.BillVerifiedAt,
			RejectionReason: order.RejectionReason,
			AdminNotes:      order.PaymentAdminNotes,
		},
		Delivery: domain.Delivery{
			Method:      domain.DeliveryMethod(order.DeliveryMethod),
			Status:      domain.DeliveryStatus(order.DeliveryStatus),
			PickupCode:  order.PickupCode,
			Address:     order.Address,
			DeliveredAt: order.DeliveredAt,
		},
		CustomerNotes: order.CustomerNotes,
		InternalNotes: order.InternalNotes,
		Ctime:         order.Ctime,
		Utime:         order.Utime,
	}
}

func (o *orderRepository) toOrderDomains(orders []dao.Order) []domain.Order {
	return slice.Map(orders, func(_ int, src dao.Order) domain.Order {
		return o.toOrderDomain(src)
	})
}

func (o *orderRepository) toOrderItemDomains(items []dao.OrderItem) []domain.OrderItem {
	return slice.Map(items, func(_ int, src dao.OrderItem) domain.OrderItem {
		return domain.OrderItem{
			SKU: domain.SKU{
				SPUID:    src.SPUId,
				ID:       src.SKUId,
				SN:       src.SKUSN,
				Name:     src.SKUName,
				Image:    src.SKUImage,
				Price:    src.SKUPrice,
				Quantity: src.Quantity,
			},
			LineTotal: src.LineTotal,
		}
	})
}
