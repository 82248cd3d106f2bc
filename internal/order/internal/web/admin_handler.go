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
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/list", ginx.B[ListOrdersReq](h.List))
	g.POST("/detail", ginx.B[RetrieveOrderDetailReq](h.Detail))
	g.POST("/verification/list", ginx.B[ListOrdersReq](h.ListPendingVerification))
	g.POST("/verify", ginx.BS[VerifyPaymentReq](h.VerifyPayment))
	g.POST("/reject", ginx.BS[RejectPaymentReq](h.RejectPayment))
	g.POST("/advance", ginx.B[AdvanceOrderReq](h.AdvanceOrder))
	g.POST("/refund", ginx.B[RefundOrderReq](h.RefundOrder))
	g.POST("/notes", ginx.B[AppendNotesReq](h.AppendNotes))
	g.POST("/pickup/verify", ginx.B[VerifyPickupCodeReq](h.VerifyPickupCode))
	g.POST("/pickup/redeem", ginx.BS[RedeemPickupCodeReq](h.RedeemPickupCode))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

func (h *AdminHandler) List(ctx *ginx.Context, req ListOrdersReq) (ginx.Result, error) {
	total, orders, err := h.svc.ListAllOrders(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(orders, func(idx int, src domain.Order) Order {
				return toAdminOrderVO(src)
			}),
		},
	}, nil
}

func (h *AdminHandler) Detail(ctx *ginx.Context, req RetrieveOrderDetailReq) (ginx.Result, error) {
	order, err := h.svc.FindOrderBySN(ctx.Request.Context(), req.OrderSN)
	if err != nil {
		return orderNotFoundResult, fmt.Errorf("订单未找到: %w", err)
	}
	return ginx.Result{
		Data: RetrieveOrderDetailResp{
			Order: toAdminOrderVO(order),
		},
	}, nil
}

// ListPendingVerification 待审核队列, 按凭证上传先后排序
func (h *AdminHandler) ListPendingVerification(ctx *ginx.Context, req ListOrdersReq) (ginx.Result, error) {
	total, orders, err := h.svc.ListOrdersPendingVerification(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(orders, func(idx int, src domain.Order) Order {
				return toAdminOrderVO(src)
			}),
		},
	}, nil
}

// VerifyPayment 审核通过转账凭证, 自提订单同时返回生成的自提码
func (h *AdminHandler) VerifyPayment(ctx *ginx.Context, req VerifyPaymentReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.VerifyPayment(ctx.Request.Context(), req.OrderSN, h.stampOperator(sess, req.AdminNotes))
	if err != nil {
		return h.paymentErrorResult(err), err
	}
	return ginx.Result{
		Data: VerifyPaymentResp{
			OrderStatus: order.Status.ToUint8(),
			PickupCode:  order.Delivery.PickupCode,
		},
	}, nil
}

// RejectPayment 拒绝转账凭证, 订单退回"待支付"
func (h *AdminHandler) RejectPayment(ctx *ginx.Context, req RejectPaymentReq, sess session.Session) (ginx.Result, error) {
	_, err := h.svc.RejectPayment(ctx.Request.Context(), req.OrderSN, req.Reason, h.stampOperator(sess, req.AdminNotes))
	if err != nil {
		if errors.Is(err, service.ErrEmptyRejectionReason) {
			return invalidInputResult, err
		}
		return h.paymentErrorResult(err), err
	}
	return ginx.Result{Msg: "OK"}, nil
}

// stampOperator 审核备注里留操作人uid, 方便事后追溯
func (h *AdminHandler) stampOperator(sess session.Session, notes string) string {
	return fmt.Sprintf("[uid:%d] %s", sess.Claims().Uid, notes)
}

func (h *AdminHandler) paymentErrorResult(err error) ginx.Result {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult
	case errors.Is(err, service.ErrPaymentAlreadyVerified):
		return paymentAlreadyVerifiedResult
	case errors.Is(err, service.ErrInvalidPaymentStatus):
		return invalidPaymentStateResult
	default:
		return systemErrorResult
	}
}

// AdvanceOrder 推进履约状态
func (h *AdminHandler) AdvanceOrder(ctx *ginx.Context, req AdvanceOrderReq) (ginx.Result, error) {
	err := h.svc.AdvanceFulfillment(ctx.Request.Context(), req.OrderSN, domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return orderNotFoundResult, err
		case errors.Is(err, service.ErrInvalidTransition),
			errors.Is(err, service.ErrInvalidOrderStatus):
			return invalidOrderStateResult, err
		default:
			return systemErrorResult, err
		}
	}
	return ginx.Result{Msg: "OK"}, nil
}

// RefundOrder 订单退款并作废自提码
func (h *AdminHandler) RefundOrder(ctx *ginx.Context, req RefundOrderReq) (ginx.Result, error) {
	err := h.svc.RefundOrder(ctx.Request.Context(), req.OrderSN, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return orderNotFoundResult, err
		case errors.Is(err, service.ErrInvalidOrderStatus):
			return invalidOrderStateResult, err
		default:
			return systemErrorResult, err
		}
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *AdminHandler) AppendNotes(ctx *ginx.Context, req AppendNotesReq) (ginx.Result, error) {
	if req.Notes == "" {
		return invalidInputResult, fmt.Errorf("备注为空")
	}
	err := h.svc.AppendInternalNotes(ctx.Request.Context(), req.OrderSN, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return orderNotFoundResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

// VerifyPickupCode 店员查验自提码, 只读不核销
func (h *AdminHandler) VerifyPickupCode(ctx *ginx.Context, req VerifyPickupCodeReq) (ginx.Result, error) {
	order, err := h.svc.VerifyPickupCode(ctx.Request.Context(), req.Code)
	if err != nil {
		return h.pickupErrorResult(err), err
	}
	return ginx.Result{
		Data: VerifyPickupCodeResp{
			Order: toAdminOrderVO(order),
		},
	}, nil
}

// RedeemPickupCode 核销自提码并完成订单
func (h *AdminHandler) RedeemPickupCode(ctx *ginx.Context, req RedeemPickupCodeReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.CompleteOrderByPickupCode(ctx.Request.Context(), sess.Claims().Uid, req.Code, req.Notes)
	if err != nil {
		return h.pickupErrorResult(err), err
	}
	return ginx.Result{
		Data: RedeemPickupCodeResp{
			Order: toAdminOrderVO(order),
		},
	}, nil
}

func (h *AdminHandler) pickupErrorResult(err error) ginx.Result {
	switch {
	case errors.Is(err, service.ErrPickupCodeNotFound):
		return pickupCodeNotFoundResult
	case errors.Is(err, service.ErrPickupCodeRedeemed):
		return pickupCodeRedeemedResult
	case errors.Is(err, service.ErrOrderAlreadyCompleted):
		return orderAlreadyCompletedResult
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult
	case errors.Is(err, service.ErrInvalidOrderStatus):
		return invalidOrderStateResult
	default:
		return systemErrorResult
	}
}

// toAdminOrderVO 管理端视角, 含内部备注与审核备注
func toAdminOrderVO(order domain.Order) Order {
	vo := toOrderVO(order)
	vo.InternalNotes = order.InternalNotes
	vo.Payment.AdminNotes = order.Payment.AdminNotes
	return vo
}
