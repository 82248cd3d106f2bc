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

package web

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/service"
	"github.com/ecodeclub/estore/internal/product"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

// taxRatePercent 整数百分比税率, 金额单位为分, 计算时向下取整
const taxRatePercent = 8

// 宅配与快递收取固定运费, 到店自提免运费
const (
	shippingFeeHome    = 500
	shippingFeeExpress = 800
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc        service.Service
	productSvc product.Service
	cache      ecache.Cache
}

func NewHandler(svc service.Service, productSvc product.Service, cache ecache.Cache) *Handler {
	return &Handler{svc: svc, productSvc: productSvc, cache: cache}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/preview", ginx.BS[PreviewOrderReq](h.PreviewOrder))
	g.POST("/create", ginx.BS[CreateOrderReq](h.CreateOrder))
	g.POST("", ginx.BS[RetrieveOrderStatusReq](h.RetrieveOrderStatus))
	g.POST("/list", ginx.BS[ListOrdersReq](h.ListOrders))
	g.POST("/detail", ginx.BS[RetrieveOrderDetailReq](h.RetrieveOrderDetail))
	g.POST("/bill/upload", ginx.BS[UploadBillReq](h.UploadBill))
	g.POST("/cancel", ginx.BS[CancelOrderReq](h.CancelOrder))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

// PreviewOrder 下单前试算金额, 不落库也不校验请求ID
func (h *Handler) PreviewOrder(ctx *ginx.Context, req PreviewOrderReq, _ session.Session) (ginx.Result, error) {
	items, subtotal, err := h.getOrderItems(ctx.Request.Context(), CreateOrderReq{SKUs: req.SKUs})
	if err != nil {
		return invalidInputResult, err
	}
	tax := subtotal * taxRatePercent / 100
	shipping := h.shippingFee(domain.DeliveryMethod(req.DeliveryMethod))
	return ginx.Result{
		Data: PreviewOrderResp{
			SKUs: slice.Map(items, func(idx int, src domain.OrderItem) SKU {
				return SKU{
					SN:       src.SKU.SN,
					Image:    src.SKU.Image,
					Name:     src.SKU.Name,
					Price:    src.SKU.Price,
					Quantity: src.SKU.Quantity,
				}
			}),
			Subtotal: subtotal,
			Tax:      tax,
			Shipping: shipping,
			Total:    subtotal + tax + shipping,
		},
	}, nil
}

// CreateOrder 创建订单, 金额全部由服务端按商品当前价格计算
func (h *Handler) CreateOrder(ctx *ginx.Context, req CreateOrderReq, sess session.Session) (ginx.Result, error) {
	if err := h.checkRequestID(ctx.Request.Context(), req.RequestID); err != nil {
		return systemErrorResult, fmt.Errorf("请求ID错误: %w", err)
	}
	items, subtotal, err := h.getOrderItems(ctx.Request.Context(), req)
	if err != nil {
		return invalidInputResult, err
	}
	tax := subtotal * taxRatePercent / 100
	shipping := h.shippingFee(domain.DeliveryMethod(req.DeliveryMethod))
	order, err := h.svc.CreateOrder(ctx.Request.Context(), domain.Order{
		BuyerID:  sess.Claims().Uid,
		Items:    items,
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
		Payment: domain.Payment{
			Method: domain.PaymentMethod(req.PaymentMethod),
		},
		Delivery: domain.Delivery{
			Method:  domain.DeliveryMethod(req.DeliveryMethod),
			Address: req.Address,
		},
		CustomerNotes: req.CustomerNotes,
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingAddress) {
			return invalidInputResult, err
		}
		return systemErrorResult, fmt.Errorf("创建订单失败: %w", err)
	}
	return ginx.Result{
		Data: CreateOrderResp{
			OrderSN: order.SN,
			Total:   order.Total,
		},
	}, nil
}

func (h *Handler) checkRequestID(ctx context.Context, requestID string) error {
	if requestID == "" {
		return fmt.Errorf("请求ID为空")
	}
	key := h.createOrderRequestKey(requestID)
	val := h.cache.Get(ctx, key)
	if !val.KeyNotFound() {
		return fmt.Errorf("重复请求")
	}
	if err := h.cache.Set(ctx, key, requestID, 0); err != nil {
		return fmt.Errorf("缓存请求ID失败: %w", err)
	}
	return nil
}

func (h *Handler) createOrderRequestKey(requestID string) string {
	return fmt.Sprintf("order:create:%s", requestID)
}

func (h *Handler) getOrderItems(ctx context.Context, req CreateOrderReq) ([]domain.OrderItem, int64, error) {
	if len(req.SKUs) == 0 {
		return nil, 0, fmt.Errorf("商品信息非法")
	}
	items := make([]domain.OrderItem, 0, len(req.SKUs))
	var subtotal int64
	for _, s := range req.SKUs {
		sku, err := h.productSvc.FindSKUBySN(ctx, s.SN)
		if err != nil {
			return nil, 0, fmt.Errorf("商品SKUSN非法: %w", err)
		}
		if s.Quantity < 1 || s.Quantity > sku.Stock {
			return nil, 0, fmt.Errorf("商品数量非法")
		}
		item := domain.OrderItem{
			SKU: domain.SKU{
				SPUID:    sku.SPUID,
				ID:       sku.ID,
				SN:       sku.SN,
				Name:     sku.Name,
				Image:    sku.Image,
				Price:    sku.Price,
				Quantity: s.Quantity,
			},
			LineTotal: sku.Price * s.Quantity,
		}
		subtotal += item.LineTotal
		items = append(items, item)
	}
	return items, subtotal, nil
}

func (h *Handler) shippingFee(m domain.DeliveryMethod) int64 {
	switch m {
	case domain.DeliveryMethodHome:
		return shippingFeeHome
	case domain.DeliveryMethodExpress:
		return shippingFeeExpress
	default:
		return 0
	}
}

// RetrieveOrderStatus 获取订单状态, 前端轮询用
func (h *Handler) RetrieveOrderStatus(ctx *ginx.Context, req RetrieveOrderStatusReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindUserVisibleOrderByUIDAndSN(ctx.Request.Context(), sess.Claims().Uid, req.OrderSN)
	if err != nil {
		return orderNotFoundResult, fmt.Errorf("订单未找到: %w", err)
	}
	return ginx.Result{
		Data: RetrieveOrderStatusResp{
			OrderStatus:   order.Status.ToUint8(),
			PaymentStatus: order.Payment.Status.ToUint8(),
		},
	}, nil
}

// ListOrders 分页查询用户订单
func (h *Handler) ListOrders(ctx *ginx.Context, req ListOrdersReq, sess session.Session) (ginx.Result, error) {
	total, orders, err := h.svc.ListOrders(ctx.Request.Context(), req.Offset, req.Limit, sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(orders, func(idx int, src domain.Order) Order {
				return toOrderVO(src)
			}),
		},
	}, nil
}

// RetrieveOrderDetail 查看订单详情
func (h *Handler) RetrieveOrderDetail(ctx *ginx.Context, req RetrieveOrderDetailReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindUserVisibleOrderByUIDAndSN(ctx.Request.Context(), sess.Claims().Uid, req.OrderSN)
	if err != nil {
		return orderNotFoundResult, fmt.Errorf("订单未找到: %w", err)
	}
	return ginx.Result{
		Data: RetrieveOrderDetailResp{
			Order: toOrderVO(order),
		},
	}, nil
}

// UploadBill 上传/重传转账凭证
func (h *Handler) UploadBill(ctx *ginx.Context, req UploadBillReq, sess session.Session) (ginx.Result, error) {
	if req.BillImage == "" {
		return invalidInputResult, fmt.Errorf("转账凭证为空")
	}
	err := h.svc.UploadPaymentBill(ctx.Request.Context(), sess.Claims().Uid, req.OrderSN, req.BillImage)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return orderNotFoundResult, err
		case errors.Is(err, service.ErrInvalidPaymentStatus):
			return invalidPaymentStateResult, err
		default:
			return systemErrorResult, err
		}
	}
	return ginx.Result{Msg: "OK"}, nil
}

// CancelOrder 取消订单
func (h *Handler) CancelOrder(ctx *ginx.Context, req CancelOrderReq, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	order, err := h.svc.FindUserVisibleOrderByUIDAndSN(ctx.Request.Context(), uid, req.OrderSN)
	if err != nil {
		return orderNotFoundResult, fmt.Errorf("订单未找到: %w", err)
	}
	err = h.svc.CancelOrder(ctx.Request.Context(), uid, order.ID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			return invalidOrderStateResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

// toOrderVO 买家视角, 不暴露内部备注与审核备注
func toOrderVO(order domain.Order) Order {
	return Order{
		SN:       order.SN,
		Subtotal: order.Subtotal,
		Tax:      order.Tax,
		Shipping: order.Shipping,
		Discount: order.Discount,
		Total:    order.Total,
		Status:   order.Status.ToUint8(),
		Payment: Payment{
			Method:          order.Payment.Method.ToUint8(),
			Status:          order.Payment.Status.ToUint8(),
			BillImage:       order.Payment.BillImage,
			BillUploadedAt:  order.Payment.BillUploadedAt,
			BillVerifiedAt:  order.Payment.BillVerifiedAt,
			RejectionReason: order.Payment.RejectionReason,
		},
		Delivery: Delivery{
			Method:      order.Delivery.Method.ToUint8(),
			Status:      order.Delivery.Status.ToUint8(),
			PickupCode:  order.Delivery.PickupCode,
			Address:     order.Delivery.Address,
			DeliveredAt: order.Delivery.DeliveredAt,
		},
		Items: slice.Map(order.Items, func(idx int, src domain.OrderItem) OrderItem {
			return OrderItem{
				SKU: SKU{
					SN:       src.SKU.SN,
					Image:    src.SKU.Image,
					Name:     src.SKU.Name,
					Price:    src.SKU.Price,
					Quantity: src.SKU.Quantity,
				},
				LineTotal: src.LineTotal,
			}
		}),
		CustomerNotes: order.CustomerNotes,
		Ctime:         order.Ctime,
		Utime:         order.Utime,
	}
}
