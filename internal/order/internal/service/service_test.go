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
	"strings"
	"testing"
	"time"

	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/event"
	"github.com/ecodeclub/estore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/pickup"
	pickupmocks "github.com/ecodeclub/estore/internal/pickup/mocks"
	"github.com/ecodeclub/estore/internal/pkg/sequencenumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeOrderRepository 模拟条件更新语义的内存实现
type fakeOrderRepository struct {
	nextID int64
	orders map[int64]*domain.Order
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: make(map[int64]*domain.Order)}
}

func (f *fakeOrderRepository) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	f.nextID++
	order.ID = f.nextID
	order.Ctime = time.Now().UnixMilli()
	o := order
	f.orders[order.ID] = &o
	return order, nil
}

func (f *fakeOrderRepository) findBySN(sn string) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.SN == sn {
			return o, nil
		}
	}
	return nil, dao.ErrOrderNotFound
}

func (f *fakeOrderRepository) FindOrderBySN(_ context.Context, sn string) (domain.Order, error) {
	o, err := f.findBySN(sn)
	if err != nil {
		return domain.Order{}, err
	}
	return *o, nil
}

func (f *fakeOrderRepository) FindOrderBySNAndBuyerID(_ context.Context, sn string, buyerID int64) (domain.Order, error) {
	o, err := f.findBySN(sn)
	if err != nil || o.BuyerID != buyerID {
		return domain.Order{}, dao.ErrOrderNotFound
	}
	return *o, nil
}

func (f *fakeOrderRepository) FindOrderByID(_ context.Context, id int64) (domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, dao.ErrOrderNotFound
	}
	return *o, nil
}

func (f *fakeOrderRepository) ListOrders(_ context.Context, offset, limit int, buyerID int64) ([]domain.Order, error) {
	var res []domain.Order
	for _, o := range f.orders {
		if o.BuyerID == buyerID {
			res = append(res, *o)
		}
	}
	return res, nil
}

func (f *fakeOrderRepository) TotalOrders(_ context.Context, buyerID int64) (int64, error) {
	var count int64
	for _, o := range f.orders {
		if o.BuyerID == buyerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderRepository) ListAllOrders(_ context.Context, offset, limit int) ([]domain.Order, error) {
	var res []domain.Order
	for _, o := range f.orders {
		res = append(res, *o)
	}
	return res, nil
}

func (f *fakeOrderRepository) TotalAllOrders(_ context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepository) ListOrdersByPaymentStatus(_ context.Context, status domain.PaymentStatus, offset, limit int) ([]domain.Order, error) {
	var res []domain.Order
	for _, o := range f.orders {
		if o.Payment.Status == status {
			res = append(res, *o)
		}
	}
	return res, nil
}

func (f *fakeOrderRepository) TotalOrdersByPaymentStatus(_ context.Context, status domain.PaymentStatus) (int64, error) {
	res, _ := f.ListOrdersByPaymentStatus(context.Background(), status, 0, 0)
	return int64(len(res)), nil
}

func (f *fakeOrderRepository) UpdatePaymentBill(_ context.Context, buyerID int64, sn string, billImage string) error {
	o, err := f.findBySN(sn)
	if err != nil {
		return err
	}
	if o.BuyerID != buyerID {
		return dao.ErrOrderNotFound
	}
	if !o.Payment.Status.CanUploadBill() {
		return dao.ErrInvalidPaymentStatus
	}
	o.Payment.BillImage = billImage
	o.Payment.BillUploadedAt = time.Now().UnixMilli()
	o.Payment.Status = domain.PaymentStatusPendingVerification
	o.Payment.RejectionReason = ""
	return nil
}

func (f *fakeOrderRepository) MarkPaymentVerified(_ context.Context, sn string, adminNotes string) (domain.Order, error) {
	o, err := f.findBySN(sn)
	if err != nil {
		return domain.Order{}, err
	}
	if o.Payment.Status != domain.PaymentStatusPendingVerification {
		if o.Payment.Status == domain.PaymentStatusVerified {
			return domain.Order{}, dao.ErrPaymentAlreadyVerified
		}
		return domain.Order{}, dao.ErrInvalidPaymentStatus
	}
	o.Payment.Status = domain.PaymentStatusVerified
	o.Payment.BillVerifiedAt = time.Now().UnixMilli()
	o.Payment.AdminNotes = adminNotes
	o.Status = domain.OrderStatusConfirmed
	o.Delivery.Status = domain.DeliveryStatusConfirmed
	return *o, nil
}

func (f *fakeOrderRepository) MarkPaymentRejected(_ context.Context, sn string, reason string, adminNotes string) (domain.Order, error) {
	o, err := f.findBySN(sn)
	if err != nil {
		return domain.Order{}, err
	}
	if o.Payment.Status != domain.PaymentStatusPendingVerification {
		if o.Payment.Status == domain.PaymentStatusVerified {
			return domain.Order{}, dao.ErrPaymentAlreadyVerified
		}
		return domain.Order{}, dao.ErrInvalidPaymentStatus
	}
	o.Payment.Status = domain.PaymentStatusRejected
	o.Payment.RejectionReason = reason
	o.Payment.AdminNotes = adminNotes
	o.Status = domain.OrderStatusPendingPayment
	o.Delivery.Status = domain.DeliveryStatusPending
	o.Delivery.PickupCode = ""
	return *o, nil
}

func (f *fakeOrderRepository) AdvanceOrderStatus(_ context.Context, sn string, from, to domain.OrderStatus, deliveryStatus domain.DeliveryStatus, deliveredAt int64) error {
	o, err := f.findBySN(sn)
	if err != nil {
		return err
	}
	if o.Status != from {
		return dao.ErrInvalidOrderStatus
	}
	o.Status = to
	o.Delivery.Status = deliveryStatus
	if deliveredAt > 0 {
		o.Delivery.DeliveredAt = deliveredAt
	}
	return nil
}

func (f *fakeOrderRepository) CompleteOrder(_ context.Context, orderID int64, notes string) (domain.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, dao.ErrOrderNotFound
	}
	switch o.Status {
	case domain.OrderStatusConfirmed, domain.OrderStatusProcessing, domain.OrderStatusReady:
	case domain.OrderStatusCompleted:
		return domain.Order{}, dao.ErrOrderAlreadyCompleted
	default:
		return domain.Order{}, dao.ErrInvalidOrderStatus
	}
	o.Status = domain.OrderStatusCompleted
	o.Payment.Status = domain.PaymentStatusCompleted
	o.Delivery.Status = domain.DeliveryStatusDelivered
	o.Delivery.DeliveredAt = time.Now().UnixMilli()
	if notes != "" {
		o.InternalNotes += "\n" + notes
	}
	return *o, nil
}

func (f *fakeOrderRepository) CancelOrder(_ context.Context, buyerID int64, orderID int64) error {
	o, ok := f.orders[orderID]
	if !ok || o.BuyerID != buyerID {
		return dao.ErrOrderNotFound
	}
	if o.Status.IsTerminal() {
		return dao.ErrInvalidOrderStatus
	}
	o.Status = domain.OrderStatusCanceled
	o.Payment.Status = domain.PaymentStatusCanceled
	o.Delivery.PickupCode = ""
	return nil
}

func (f *fakeOrderRepository) RefundOrder(_ context.Context, sn string, reason string) error {
	o, err := f.findBySN(sn)
	if err != nil {
		return err
	}
	if o.Status.IsTerminal() {
		return dao.ErrInvalidOrderStatus
	}
	o.Status = domain.OrderStatusRefunded
	o.Payment.Status = domain.PaymentStatusRefunded
	o.Delivery.PickupCode = ""
	if reason != "" {
		o.InternalNotes += "\n" + reason
	}
	return nil
}

func (f *fakeOrderRepository) SetPickupCode(_ context.Context, orderID int64, code string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return dao.ErrOrderNotFound
	}
	o.Delivery.PickupCode = code
	return nil
}

func (f *fakeOrderRepository) AppendInternalNotes(_ context.Context, sn string, notes string) error {
	o, err := f.findBySN(sn)
	if err != nil {
		return err
	}
	o.InternalNotes += "\n" + notes
	return nil
}

func (f *fakeOrderRepository) ListExpiredOrders(_ context.Context, offset, limit int, expiredBefore time.Time) ([]domain.Order, error) {
	var res []domain.Order
	for _, o := range f.orders {
		if o.Status == domain.OrderStatusPendingPayment && o.Ctime < expiredBefore.UnixMilli() {
			res = append(res, *o)
		}
	}
	return res, nil
}

func (f *fakeOrderRepository) TotalExpiredOrders(_ context.Context, expiredBefore time.Time) (int64, error) {
	res, _ := f.ListExpiredOrders(context.Background(), 0, 0, expiredBefore)
	return int64(len(res)), nil
}

func (f *fakeOrderRepository) CloseExpiredOrders(_ context.Context, orderIDs []int64) error {
	for _, id := range orderIDs {
		o, ok := f.orders[id]
		if !ok || o.Status != domain.OrderStatusPendingPayment {
			continue
		}
		o.Status = domain.OrderStatusCanceled
		o.Payment.Status = domain.PaymentStatusCanceled
	}
	return nil
}

// fakeProducer 捕获发送的事件
type fakeProducer struct {
	events []event.OrderStatusEvent
}

func (f *fakeProducer) Produce(_ context.Context, evt event.OrderStatusEvent) error {
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeProducer) lastEvent() event.OrderStatusEvent {
	if len(f.events) == 0 {
		return event.OrderStatusEvent{}
	}
	return f.events[len(f.events)-1]
}

func newTestService(t *testing.T, pickupSvc pickup.Service) (Service, *fakeOrderRepository, *fakeProducer) {
	t.Helper()
	repo := newFakeOrderRepository()
	producer := &fakeProducer{}
	svc := NewService(repo, pickupSvc, producer, sequencenumber.NewGenerator())
	return svc, repo, producer
}

func newStorePickupOrder() domain.Order {
	return domain.Order{
		BuyerID: 23,
		Items: []domain.OrderItem{
			{
				SKU:       domain.SKU{SPUID: 1, ID: 11, SN: "sku-coffee", Name: "咖啡豆", Price: 1000, Quantity: 2},
				LineTotal: 2000,
			},
			{
				SKU:       domain.SKU{SPUID: 2, ID: 21, SN: "sku-mug", Name: "马克杯", Price: 500, Quantity: 1},
				LineTotal: 500,
			},
		},
		Subtotal: 2500,
		Tax:      200,
		Shipping: 0,
		Total:    2700,
		Payment: domain.Payment{
			Method: domain.PaymentMethodBankTransfer,
		},
		Delivery: domain.Delivery{
			Method: domain.DeliveryMethodStorePickup,
		},
	}
}

func TestService_CreateOrder(t *testing.T) {
	t.Parallel()

	t.Run("创建成功_初始状态与序列号", func(t *testing.T) {
		t.Parallel()
		svc, _, producer := newTestService(t, nil)
		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		assert.NotZero(t, order.ID)
		assert.Len(t, order.SN, 32)
		assert.Equal(t, domain.OrderStatusPendingPayment, order.Status)
		assert.Equal(t, domain.PaymentStatusPending, order.Payment.Status)
		assert.Equal(t, domain.DeliveryStatusPending, order.Delivery.Status)
		assert.Equal(t, event.TypeOrderCreated, producer.lastEvent().Type)
	})

	t.Run("金额不一致_拒绝创建", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t, nil)
		o := newStorePickupOrder()
		o.Total = 9999
		_, err := svc.CreateOrder(context.Background(), o)
		assert.ErrorIs(t, err, domain.ErrAmountMismatch)
	})

	t.Run("订单项为空_拒绝创建", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t, nil)
		o := newStorePickupOrder()
		o.Items = nil
		_, err := svc.CreateOrder(context.Background(), o)
		assert.ErrorIs(t, err, domain.ErrEmptyItems)
	})

	t.Run("宅配订单缺少地址_拒绝创建", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t, nil)
		o := newStorePickupOrder()
		o.Delivery.Method = domain.DeliveryMethodHome
		o.Shipping = 500
		o.Total = 3200
		_, err := svc.CreateOrder(context.Background(), o)
		assert.ErrorIs(t, err, ErrMissingAddress)
	})
}

func TestService_UploadPaymentBill(t *testing.T) {
	t.Parallel()

	t.Run("待支付订单上传凭证_进入待审核", func(t *testing.T) {
		t.Parallel()
		svc, _, producer := newTestService(t, nil)
		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)

		err = svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg")
		require.NoError(t, err)

		got, err := svc.FindOrderBySN(context.Background(), order.SN)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPendingVerification, got.Payment.Status)
		assert.Equal(t, "bills/23/1.jpg", got.Payment.BillImage)
		assert.Equal(t, event.TypeBillUploaded, producer.lastEvent().Type)
	})

	t.Run("审核被拒后重传_覆盖凭证并清除拒绝原因", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().InvalidateByOrderID(gomock.Any(), gomock.Any()).Return(nil)
		svc, _, _ := newTestService(t, pickupSvc)

		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))
		_, err = svc.RejectPayment(context.Background(), order.SN, "凭证模糊", "")
		require.NoError(t, err)

		err = svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/2.jpg")
		require.NoError(t, err)

		got, err := svc.FindOrderBySN(context.Background(), order.SN)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPendingVerification, got.Payment.Status)
		assert.Equal(t, "bills/23/2.jpg", got.Payment.BillImage)
		assert.Empty(t, got.Payment.RejectionReason)
	})

	t.Run("审核通过后重传_被拒绝", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pickup.Code{Code: "1234"}, nil)
		svc, _, _ := newTestService(t, pickupSvc)

		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))
		_, err = svc.VerifyPayment(context.Background(), order.SN, "")
		require.NoError(t, err)

		err = svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/2.jpg")
		assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
	})

	t.Run("订单不存在", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t, nil)
		err := svc.UploadPaymentBill(context.Background(), 23, "no-such-sn", "bills/23/1.jpg")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_VerifyPayment(t *testing.T) {
	t.Parallel()

	t.Run("自提订单审核通过_生成自提码", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		svc, _, producer := newTestService(t, pickupSvc)

		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))

		pickupSvc.EXPECT().Mint(gomock.Any(), order.ID, order.SN).
			Return(pickup.Code{OrderID: order.ID, OrderSN: order.SN, Code: "4321"}, nil)

		verified, err := svc.VerifyPayment(context.Background(), order.SN, "已核对转账流水")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusConfirmed, verified.Status)
		assert.Equal(t, domain.PaymentStatusVerified, verified.Payment.Status)
		assert.Equal(t, "4321", verified.Delivery.PickupCode)
		assert.Equal(t, event.TypePaymentVerified, producer.lastEvent().Type)

		got, err := svc.FindOrderBySN(context.Background(), order.SN)
		require.NoError(t, err)
		assert.Equal(t, "4321", got.Delivery.PickupCode)
	})

	t.Run("宅配订单审核通过_不生成自提码", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		// 没有设置Mint期望, 被调用会直接失败
		pickupSvc := pickupmocks.NewMockService(ctrl)
		svc, _, _ := newTestService(t, pickupSvc)

		o := newStorePickupOrder()
		o.Delivery.Method = domain.DeliveryMethodHome
		o.Delivery.Address = "北京市海淀区知春路"
		o.Shipping = 500
		o.Total = 3200
		order, err := svc.CreateOrder(context.Background(), o)
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))

		verified, err := svc.VerifyPayment(context.Background(), order.SN, "")
		require.NoError(t, err)
		assert.Empty(t, verified.Delivery.PickupCode)
	})

	t.Run("重复审核_返回已审核错误", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pickup.Code{Code: "1234"}, nil)
		svc, _, _ := newTestService(t, pickupSvc)

		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))
		_, err = svc.VerifyPayment(context.Background(), order.SN, "")
		require.NoError(t, err)

		_, err = svc.VerifyPayment(context.Background(), order.SN, "")
		assert.ErrorIs(t, err, ErrPaymentAlreadyVerified)
	})

	t.Run("凭证未上传_不允许审核", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t, nil)
		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)

		_, err = svc.VerifyPayment(context.Background(), order.SN, "")
		assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
	})
}

func TestService_RejectPayment(t *testing.T) {
	t.Parallel()

	t.Run("审核拒绝_订单退回待支付并作废自提码", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		svc, _, producer := newTestService(t, pickupSvc)

		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))

		pickupSvc.EXPECT().InvalidateByOrderID(gomock.Any(), order.ID).Return(nil)

		rejected, err := svc.RejectPayment(context.Background(), order.SN, "金额对不上", "转账单号查无此笔")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPendingPayment, rejected.Status)
		assert.Equal(t, domain.PaymentStatusRejected, rejected.Payment.Status)
		assert.Equal(t, "金额对不上", rejected.Payment.RejectionReason)
		assert.Empty(t, rejected.Delivery.PickupCode)
		assert.Equal(t, event.TypePaymentRejected, producer.lastEvent().Type)
	})

	t.Run("拒绝原因为空_被拒绝", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		svc, _, _ := newTestService(t, pickupSvc)

		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))

		_, err = svc.RejectPayment(context.Background(), order.SN, "", "")
		assert.ErrorIs(t, err, ErrEmptyRejectionReason)

		// 订单仍停留在待审核
		got, err := svc.FindOrderBySN(context.Background(), order.SN)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPendingVerification, got.Payment.Status)
	})
}

func TestService_AdvanceFulfillment(t *testing.T) {
	t.Parallel()

	newConfirmedOrder := func(t *testing.T, svc Service) domain.Order {
		t.Helper()
		o := newStorePickupOrder()
		order, err := svc.CreateOrder(context.Background(), o)
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))
		verified, err := svc.VerifyPayment(context.Background(), order.SN, "")
		require.NoError(t, err)
		return verified
	}

	t.Run("沿状态机推进", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pickup.Code{Code: "1234"}, nil)
		svc, _, _ := newTestService(t, pickupSvc)
		order := newConfirmedOrder(t, svc)

		require.NoError(t, svc.AdvanceFulfillment(context.Background(), order.SN, domain.OrderStatusProcessing))
		require.NoError(t, svc.AdvanceFulfillment(context.Background(), order.SN, domain.OrderStatusReady))

		got, err := svc.FindOrderBySN(context.Background(), order.SN)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusReady, got.Status)
	})

	t.Run("跳跃推进_被拒绝", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pickup.Code{Code: "1234"}, nil)
		svc, _, _ := newTestService(t, pickupSvc)
		order := newConfirmedOrder(t, svc)

		err := svc.AdvanceFulfillment(context.Background(), order.SN, domain.OrderStatusReady)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("后退_被拒绝", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pickup.Code{Code: "1234"}, nil)
		svc, _, _ := newTestService(t, pickupSvc)
		order := newConfirmedOrder(t, svc)

		require.NoError(t, svc.AdvanceFulfillment(context.Background(), order.SN, domain.OrderStatusProcessing))
		err := svc.AdvanceFulfillment(context.Background(), order.SN, domain.OrderStatusConfirmed)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("支付未审核_配送不允许离开待配送", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		svc, repo, _ := newTestService(t, pickupSvc)
		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		// 订单状态被改成已确认, 但支付仍未审核
		repo.orders[order.ID].Status = domain.OrderStatusConfirmed

		err = svc.AdvanceFulfillment(context.Background(), order.SN, domain.OrderStatusProcessing)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("配送链路_送达时间被记录", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		svc, _, _ := newTestService(t, pickupSvc)

		o := newStorePickupOrder()
		o.Delivery.Method = domain.DeliveryMethodExpress
		o.Delivery.Address = "上海市浦东新区张江路"
		o.Shipping = 800
		o.Total = 3500
		order, err := svc.CreateOrder(context.Background(), o)
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))
		_, err = svc.VerifyPayment(context.Background(), order.SN, "")
		require.NoError(t, err)

		for _, next := range []domain.OrderStatus{
			domain.OrderStatusProcessing,
			domain.OrderStatusShipped,
			domain.OrderStatusOutForDelivery,
			domain.OrderStatusDelivered,
		} {
			require.NoError(t, svc.AdvanceFulfillment(context.Background(), order.SN, next))
		}

		got, err := svc.FindOrderBySN(context.Background(), order.SN)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusDelivered, got.Status)
		assert.Equal(t, domain.DeliveryStatusDelivered, got.Delivery.Status)
		assert.NotZero(t, got.Delivery.DeliveredAt)
	})
}

func TestService_CompleteOrderByPickupCode(t *testing.T) {
	t.Parallel()

	t.Run("核销成功_订单完成", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pickup.Code{Code: "1234"}, nil)
		svc, _, producer := newTestService(t, pickupSvc)

		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))
		_, err = svc.VerifyPayment(context.Background(), order.SN, "")
		require.NoError(t, err)

		pickupSvc.EXPECT().FindActiveByCode(gomock.Any(), "1234").
			Return(pickup.Code{OrderID: order.ID, OrderSN: order.SN, Code: "1234"}, nil)
		pickupSvc.EXPECT().Redeem(gomock.Any(), int64(1001), "1234").
			Return(pickup.Code{OrderID: order.ID, Code: "1234"}, nil)

		completed, err := svc.CompleteOrderByPickupCode(context.Background(), 1001, "1234", "买家到店自提")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCompleted, completed.Status)
		assert.True(t, strings.Contains(completed.InternalNotes, "买家到店自提"))
		assert.Equal(t, event.TypeOrderCompleted, producer.lastEvent().Type)
	})

	t.Run("自提码不存在", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().FindActiveByCode(gomock.Any(), "0000").
			Return(pickup.Code{}, pickup.ErrCodeNotFound)
		svc, _, _ := newTestService(t, pickupSvc)

		_, err := svc.CompleteOrderByPickupCode(context.Background(), 1001, "0000", "")
		assert.ErrorIs(t, err, ErrPickupCodeNotFound)
	})

	t.Run("自提码已核销", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().FindActiveByCode(gomock.Any(), "1234").
			Return(pickup.Code{}, pickup.ErrCodeRedeemed)
		svc, _, _ := newTestService(t, pickupSvc)

		_, err := svc.CompleteOrderByPickupCode(context.Background(), 1001, "1234", "")
		assert.ErrorIs(t, err, ErrPickupCodeRedeemed)
	})

	t.Run("订单已完成_核销被拦截", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pickup.Code{Code: "1234"}, nil)
		svc, _, _ := newTestService(t, pickupSvc)

		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))
		_, err = svc.VerifyPayment(context.Background(), order.SN, "")
		require.NoError(t, err)

		pickupSvc.EXPECT().FindActiveByCode(gomock.Any(), "1234").
			Return(pickup.Code{OrderID: order.ID, OrderSN: order.SN, Code: "1234"}, nil).Times(2)
		pickupSvc.EXPECT().Redeem(gomock.Any(), int64(1001), "1234").
			Return(pickup.Code{OrderID: order.ID, Code: "1234"}, nil)

		_, err = svc.CompleteOrderByPickupCode(context.Background(), 1001, "1234", "")
		require.NoError(t, err)

		// 核销记录写入失败等场景下活跃码可能残留, 订单终态仍然会拦截二次核销
		_, err = svc.CompleteOrderByPickupCode(context.Background(), 1001, "1234", "")
		assert.ErrorIs(t, err, ErrOrderAlreadyCompleted)
	})
}

func TestService_CancelOrder(t *testing.T) {
	t.Parallel()

	t.Run("取消待支付订单", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().InvalidateByOrderID(gomock.Any(), gomock.Any()).Return(nil)
		svc, _, producer := newTestService(t, pickupSvc)

		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)

		require.NoError(t, svc.CancelOrder(context.Background(), order.BuyerID, order.ID))

		got, err := svc.FindOrderBySN(context.Background(), order.SN)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCanceled, got.Status)
		assert.Equal(t, event.TypeOrderCanceled, producer.lastEvent().Type)
	})

	t.Run("取消已完成订单_被拒绝", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pickup.Code{Code: "1234"}, nil)
		svc, _, _ := newTestService(t, pickupSvc)

		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))
		_, err = svc.VerifyPayment(context.Background(), order.SN, "")
		require.NoError(t, err)

		pickupSvc.EXPECT().FindActiveByCode(gomock.Any(), "1234").
			Return(pickup.Code{OrderID: order.ID, OrderSN: order.SN, Code: "1234"}, nil)
		pickupSvc.EXPECT().Redeem(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pickup.Code{}, nil)
		_, err = svc.CompleteOrderByPickupCode(context.Background(), 1001, "1234", "")
		require.NoError(t, err)

		err = svc.CancelOrder(context.Background(), order.BuyerID, order.ID)
		assert.ErrorIs(t, err, ErrInvalidOrderStatus)
	})
}

func TestService_RefundOrder(t *testing.T) {
	t.Parallel()

	t.Run("已确认订单退款_作废自提码", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		pickupSvc := pickupmocks.NewMockService(ctrl)
		pickupSvc.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pickup.Code{Code: "1234"}, nil)
		svc, _, producer := newTestService(t, pickupSvc)

		order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
		require.NoError(t, err)
		require.NoError(t, svc.UploadPaymentBill(context.Background(), order.BuyerID, order.SN, "bills/23/1.jpg"))
		_, err = svc.VerifyPayment(context.Background(), order.SN, "")
		require.NoError(t, err)

		pickupSvc.EXPECT().InvalidateByOrderID(gomock.Any(), order.ID).Return(nil)

		require.NoError(t, svc.RefundOrder(context.Background(), order.SN, "买家申请退款"))

		got, err := svc.FindOrderBySN(context.Background(), order.SN)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusRefunded, got.Status)
		assert.Equal(t, domain.PaymentStatusRefunded, got.Payment.Status)
		assert.Empty(t, got.Delivery.PickupCode)
		assert.Equal(t, event.TypeOrderRefunded, producer.lastEvent().Type)
	})
}

func TestService_CancelExpiredOrders(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t, nil)
	order, err := svc.CreateOrder(context.Background(), newStorePickupOrder())
	require.NoError(t, err)
	// 把订单创建时间拨回一小时前
	repo.orders[order.ID].Ctime = time.Now().Add(-time.Hour).UnixMilli()

	deadline := time.Now().Add(-30 * time.Minute).UnixMilli()
	total, err := svc.TotalExpiredOrders(context.Background(), deadline)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	expired, err := svc.ListExpiredOrders(context.Background(), 0, 10, deadline)
	require.NoError(t, err)
	require.Len(t, expired, 1)

	require.NoError(t, svc.CancelExpiredOrders(context.Background(), []int64{expired[0].ID}))

	got, err := svc.FindOrderBySN(context.Background(), order.SN)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCanceled, got.Status)
}
