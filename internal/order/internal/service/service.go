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

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/event"
	"github.com/ecodeclub/estore/internal/order/internal/repository"
	"github.com/ecodeclub/estore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/pickup"
	"github.com/ecodeclub/estore/internal/pkg/sequencenumber"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrOrderNotFound          = dao.ErrOrderNotFound
	ErrInvalidPaymentStatus   = dao.ErrInvalidPaymentStatus
	ErrPaymentAlreadyVerified = dao.ErrPaymentAlreadyVerified
	ErrInvalidOrderStatus     = dao.ErrInvalidOrderStatus
	ErrOrderAlreadyCompleted  = dao.ErrOrderAlreadyCompleted
	ErrPickupCodeNotFound     = pickup.ErrCodeNotFound
	ErrPickupCodeRedeemed     = pickup.ErrCodeRedeemed
	// ErrMissingAddress 宅配/快递订单缺少配送地址
	ErrMissingAddress = errors.New("配送订单缺少地址")
	// ErrEmptyRejectionReason 拒绝凭证必须填写原因
	ErrEmptyRejectionReason = errors.New("拒绝原因为空")
	// ErrInvalidTransition 履约状态不允许该迁移
	ErrInvalidTransition = errors.New("履约状态迁移非法")
)

//go:generate mockgen -source=./service.go -package=ordermocks -destination=../../mocks/order.mock.go Service
type Service interface {
	// CreateOrder 创建订单, 校验金额不变量后落库, 初始为"待支付"
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	FindUserVisibleOrderByUIDAndSN(ctx context.Context, buyerID int64, sn string) (domain.Order, error)
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	ListOrders(ctx context.Context, offset, limit int, buyerID int64) (int64, []domain.Order, error)
	ListAllOrders(ctx context.Context, offset, limit int) (int64, []domain.Order, error)
	// ListOrdersPendingVerification 管理端审核队列, 按上传先后排序
	ListOrdersPendingVerification(ctx context.Context, offset, limit int) (int64, []domain.Order, error)

	// UploadPaymentBill 上传或重传转账凭证, 支付状态进入"待审核"
	UploadPaymentBill(ctx context.Context, buyerID int64, sn string, billImage string) error
	// VerifyPayment 审核通过, 自提订单同时生成自提码
	VerifyPayment(ctx context.Context, sn string, adminNotes string) (domain.Order, error)
	// RejectPayment 审核拒绝, 订单退回"待支付"并作废自提码
	RejectPayment(ctx context.Context, sn string, reason string, adminNotes string) (domain.Order, error)
	// AdvanceFulfillment 沿履约状态机单向推进
	AdvanceFulfillment(ctx context.Context, sn string, next domain.OrderStatus) error
	CancelOrder(ctx context.Context, buyerID int64, orderID int64) error
	RefundOrder(ctx context.Context, sn string, reason string) error
	AppendInternalNotes(ctx context.Context, sn string, notes string) error

	// VerifyPickupCode 店员查验自提码, 只读
	VerifyPickupCode(ctx context.Context, code string) (domain.Order, error)
	// CompleteOrderByPickupCode 核销自提码并完成订单
	CompleteOrderByPickupCode(ctx context.Context, staffID int64, code string, notes string) (domain.Order, error)

	ListExpiredOrders(ctx context.Context, offset, limit int, ctime int64) ([]domain.Order, error)
	TotalExpiredOrders(ctx context.Context, ctime int64) (int64, error)
	// CancelExpiredOrders 批量关闭超时未支付订单
	CancelExpiredOrders(ctx context.Context, orderIDs []int64) error
}

func NewService(repo repository.OrderRepository,
	pickupSvc pickup.Service,
	producer event.OrderStatusEventProducer,
	snGenerator *sequencenumber.Generator) Service {
	return &service{
		repo:        repo,
		pickupSvc:   pickupSvc,
		producer:    producer,
		snGenerator: snGenerator,
		logger:      elog.DefaultLogger,
	}
}

type service struct {
	repo        repository.OrderRepository
	pickupSvc   pickup.Service
	producer    event.OrderStatusEventProducer
	snGenerator *sequencenumber.Generator
	logger      *elog.Component
}

func (s *service) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := order.Validate(); err != nil {
		return domain.Order{}, err
	}
	if order.Delivery.Method.RequiresAddress() && order.Delivery.Address == "" {
		return domain.Order{}, ErrMissingAddress
	}
	sn, err := s.snGenerator.Generate(order.BuyerID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("生成订单序列号失败: %w", err)
	}
	order.SN = sn
	order.Status = domain.OrderStatusPendingPayment
	order.Payment.Status = domain.PaymentStatusPending
	order.Delivery.Status = domain.DeliveryStatusPending
	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}
	s.sendEvent(ctx, event.OrderStatusEvent{
		OrderSN: created.SN,
		BuyerID: created.BuyerID,
		Type:    event.TypeOrderCreated,
		Status:  created.Status.ToUint8(),
	})
	return created, nil
}

func (s *service) FindUserVisibleOrderByUIDAndSN(ctx context.Context, buyerID int64, sn string) (domain.Order, error) {
	return s.repo.FindOrderBySNAndBuyerID(ctx, sn, buyerID)
}

func (s *service) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	return s.repo.FindOrderBySN(ctx, sn)
}

func (s *service) ListOrders(ctx context.Context, offset, limit int, buyerID int64) (int64, []domain.Order, error) {
	var (
		eg     errgroup.Group
		total  int64
		orders []domain.Order
	)
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrders(ctx, buyerID)
		return err
	})
	eg.Go(func() error {
		var err error
		orders, err = s.repo.ListOrders(ctx, offset, limit, buyerID)
		return err
	})
	return total, orders, eg.Wait()
}

func (s *service) ListAllOrders(ctx context.Context, offset, limit int) (int64, []domain.Order, error) {
	var (
		eg     errgroup.Group
		total  int64
		orders []domain.Order
	)
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalAllOrders(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		orders, err = s.repo.ListAllOrders(ctx, offset, limit)
		return err
	})
	return total, orders, eg.Wait()
}

func (s *service) ListOrdersPendingVerification(ctx context.Context, offset, limit int) (int64, []domain.Order, error) {
	var (
		eg     errgroup.Group
		total  int64
		orders []domain.Order
	)
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrdersByPaymentStatus(ctx, domain.PaymentStatusPendingVerification)
		return err
	})
	eg.Go(func() error {
		var err error
		orders, err = s.repo.ListOrdersByPaymentStatus(ctx, domain.PaymentStatusPendingVerification, offset, limit)
		return err
	})
	return total, orders, eg.Wait()
}

func (s *service) UploadPaymentBill(ctx context.Context, buyerID int64, sn string, billImage string) error {
	err := s.repo.UpdatePaymentBill(ctx, buyerID, sn, billImage)
	if err != nil {
		return err
	}
	s.sendEvent(ctx, event.OrderStatusEvent{
		OrderSN: sn,
		BuyerID: buyerID,
		Type:    event.TypeBillUploaded,
		Status:  domain.OrderStatusPendingPayment.ToUint8(),
	})
	return nil
}

func (s *service) VerifyPayment(ctx context.Context, sn string, adminNotes string) (domain.Order, error) {
	order, err := s.repo.MarkPaymentVerified(ctx, sn, adminNotes)
	if err != nil {
		return domain.Order{}, err
	}
	if order.Delivery.Method.RequiresPickup() {
		// Mint对同一订单幂等, 审核通过后宕机重试也不会发出两个码
		code, err := s.pickupSvc.Mint(ctx, order.ID, order.SN)
		if err != nil {
			return domain.Order{}, fmt.Errorf("生成自提码失败: orderSN=%s: %w", sn, err)
		}
		if err := s.repo.SetPickupCode(ctx, order.ID, code.Code); err != nil {
			return domain.Order{}, err
		}
		order.Delivery.PickupCode = code.Code
	}
	s.sendEvent(ctx, event.OrderStatusEvent{
		OrderSN: order.SN,
		BuyerID: order.BuyerID,
		Type:    event.TypePaymentVerified,
		Status:  order.Status.ToUint8(),
		Detail:  order.Delivery.PickupCode,
	})
	return order, nil
}

func (s *service) RejectPayment(ctx context.Context, sn string, reason string, adminNotes string) (domain.Order, error) {
	if reason == "" {
		return domain.Order{}, ErrEmptyRejectionReason
	}
	order, err := s.repo.MarkPaymentRejected(ctx, sn, reason, adminNotes)
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.pickupSvc.InvalidateByOrderID(ctx, order.ID); err != nil {
		s.logger.Error("作废自提码失败",
			elog.String("orderSN", sn), elog.FieldErr(err))
	}
	s.sendEvent(ctx, event.OrderStatusEvent{
		OrderSN: order.SN,
		BuyerID: order.BuyerID,
		Type:    event.TypePaymentRejected,
		Status:  order.Status.ToUint8(),
		Detail:  reason,
	})
	return order, nil
}

func (s *service) AdvanceFulfillment(ctx context.Context, sn string, next domain.OrderStatus) error {
	order, err := s.repo.FindOrderBySN(ctx, sn)
	if err != nil {
		return err
	}
	if !order.Status.CanAdvanceTo(next) {
		return fmt.Errorf("%w: %d -> %d", ErrInvalidTransition, order.Status, next)
	}
	deliveryStatus, deliveredAt := s.deliveryStateFor(next)
	advanced := order
	advanced.Status = next
	advanced.Delivery.Status = deliveryStatus
	if !advanced.DeliveryConsistent() {
		return fmt.Errorf("%w: 支付未审核通过, 配送状态不允许离开待配送", ErrInvalidTransition)
	}
	err = s.repo.AdvanceOrderStatus(ctx, sn, order.Status, next, deliveryStatus, deliveredAt)
	if err != nil {
		return err
	}
	s.sendEvent(ctx, event.OrderStatusEvent{
		OrderSN: order.SN,
		BuyerID: order.BuyerID,
		Type:    event.TypeStatusChanged,
		Status:  next.ToUint8(),
	})
	return nil
}

// deliveryStateFor 履约状态推进时同步配送状态
func (s *service) deliveryStateFor(next domain.OrderStatus) (domain.DeliveryStatus, int64) {
	switch next {
	case domain.OrderStatusShipped:
		return domain.DeliveryStatusShipped, 0
	case domain.OrderStatusOutForDelivery:
		return domain.DeliveryStatusOutForDelivery, 0
	case domain.OrderStatusDelivered:
		return domain.DeliveryStatusDelivered, time.Now().UnixMilli()
	case domain.OrderStatusCompleted:
		return domain.DeliveryStatusDelivered, time.Now().UnixMilli()
	default:
		return domain.DeliveryStatusConfirmed, 0
	}
}

func (s *service) CancelOrder(ctx context.Context, buyerID int64, orderID int64) error {
	err := s.repo.CancelOrder(ctx, buyerID, orderID)
	if err != nil {
		return err
	}
	if err := s.pickupSvc.InvalidateByOrderID(ctx, orderID); err != nil {
		s.logger.Error("作废自提码失败",
			elog.Int64("orderID", orderID), elog.FieldErr(err))
	}
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	s.sendEvent(ctx, event.OrderStatusEvent{
		OrderSN: order.SN,
		BuyerID: order.BuyerID,
		Type:    event.TypeOrderCanceled,
		Status:  order.Status.ToUint8(),
	})
	return nil
}

func (s *service) RefundOrder(ctx context.Context, sn string, reason string) error {
	order, err := s.repo.FindOrderBySN(ctx, sn)
	if err != nil {
		return err
	}
	if err := s.repo.RefundOrder(ctx, sn, reason); err != nil {
		return err
	}
	if err := s.pickupSvc.InvalidateByOrderID(ctx, order.ID); err != nil {
		s.logger.Error("作废自提码失败",
			elog.String("orderSN", sn), elog.FieldErr(err))
	}
	s.sendEvent(ctx, event.OrderStatusEvent{
		OrderSN: order.SN,
		BuyerID: order.BuyerID,
		Type:    event.TypeOrderRefunded,
		Status:  domain.OrderStatusRefunded.ToUint8(),
		Detail:  reason,
	})
	return nil
}

func (s *service) AppendInternalNotes(ctx context.Context, sn string, notes string) error {
	return s.repo.AppendInternalNotes(ctx, sn, notes)
}

func (s *service) VerifyPickupCode(ctx context.Context, code string) (domain.Order, error) {
	c, err := s.pickupSvc.FindActiveByCode(ctx, code)
	if err != nil {
		return domain.Order{}, err
	}
	return s.repo.FindOrderByID(ctx, c.OrderID)
}

func (s *service) CompleteOrderByPickupCode(ctx context.Context, staffID int64, code string, notes string) (domain.Order, error) {
	c, err := s.pickupSvc.FindActiveByCode(ctx, code)
	if err != nil {
		return domain.Order{}, err
	}
	order, err := s.repo.CompleteOrder(ctx, c.OrderID, notes)
	if err != nil {
		return domain.Order{}, err
	}
	// 订单已完成, 核销失败只记录日志, 下次重试会因订单终态被拦截
	if _, err := s.pickupSvc.Redeem(ctx, staffID, code); err != nil {
		s.logger.Error("核销自提码失败",
			elog.String("code", code),
			elog.String("orderSN", order.SN), elog.FieldErr(err))
	}
	s.sendEvent(ctx, event.OrderStatusEvent{
		OrderSN: order.SN,
		BuyerID: order.BuyerID,
		Type:    event.TypeOrderCompleted,
		Status:  order.Status.ToUint8(),
	})
	return order, nil
}

func (s *service) ListExpiredOrders(ctx context.Context, offset, limit int, ctime int64) ([]domain.Order, error) {
	return s.repo.ListExpiredOrders(ctx, offset, limit, time.UnixMilli(ctime))
}

func (s *service) TotalExpiredOrders(ctx context.Context, ctime int64) (int64, error) {
	return s.repo.TotalExpiredOrders(ctx, time.UnixMilli(ctime))
}

func (s *service) CancelExpiredOrders(ctx context.Context, orderIDs []int64) error {
	return s.repo.CloseExpiredOrders(ctx, orderIDs)
}

// sendEvent 事件投递失败不阻塞主流程
func (s *service) sendEvent(ctx context.Context, evt event.OrderStatusEvent) {
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Error("发送订单状态事件失败",
			elog.String("orderSN", evt.OrderSN),
			elog.String("type", evt.Type), elog.FieldErr(err))
	}
}
