package web

import (
	"github.com/ecodeclub/estore/internal/order/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	orderNotFoundResult = ginx.Result{
		Code: errs.OrderNotFound.Code,
		Msg:  errs.OrderNotFound.Msg,
	}
	invalidOrderStateResult = ginx.Result{
		Code: errs.InvalidOrderState.Code,
		Msg:  errs.InvalidOrderState.Msg,
	}
	invalidPaymentStateResult = ginx.Result{
		Code: errs.InvalidPaymentState.Code,
		Msg:  errs.InvalidPaymentState.Msg,
	}
	paymentAlreadyVerifiedResult = ginx.Result{
		Code: errs.PaymentAlreadyVerified.Code,
		Msg:  errs.PaymentAlreadyVerified.Msg,
	}
	orderAlreadyCompletedResult = ginx.Result{
		Code: errs.OrderAlreadyCompleted.Code,
		Msg:  errs.OrderAlreadyCompleted.Msg,
	}
	invalidInputResult = ginx.Result{
		Code: errs.InvalidInput.Code,
		Msg:  errs.InvalidInput.Msg,
	}
	pickupCodeNotFoundResult = ginx.Result{
		Code: errs.PickupCodeNotFound.Code,
		Msg:  errs.PickupCodeNotFound.Msg,
	}
	pickupCodeRedeemedResult = ginx.Result{
		Code: errs.PickupCodeRedeemed.Code,
		Msg:  errs.PickupCodeRedeemed.Msg,
	}
)
