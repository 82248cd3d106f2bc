package errs

var (
	SystemError           = ErrorCode{Code: 503001, Msg: "系统错误"}
	OrderNotFound         = ErrorCode{Code: 503002, Msg: "订单未找到"}
	InvalidOrderState     = ErrorCode{Code: 503003, Msg: "订单当前状态不允许该操作"}
	InvalidPaymentState   = ErrorCode{Code: 503004, Msg: "支付当前状态不允许该操作"}
	PaymentAlreadyVerified = ErrorCode{Code: 503005, Msg: "支付凭证已审核通过"}
	OrderAlreadyCompleted = ErrorCode{Code: 503006, Msg: "订单已完成"}
	InvalidInput          = ErrorCode{Code: 503007, Msg: "输入非法"}
	PickupCodeNotFound    = ErrorCode{Code: 503008, Msg: "自提码不存在"}
	PickupCodeRedeemed    = ErrorCode{Code: 503009, Msg: "自提码已核销"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
