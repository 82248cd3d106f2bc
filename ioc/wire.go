//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/estore/internal/notification"
	"github.com/ecodeclub/estore/internal/order"
	"github.com/ecodeclub/estore/internal/pickup"
	"github.com/ecodeclub/estore/internal/product"
	"github.com/ecodeclub/estore/internal/quiz"
	"github.com/ecodeclub/estore/internal/review"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitMQ, InitCache, InitRedis)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		pickup.InitModule,
		product.InitModule,
		order.InitModule,
		notification.InitModule,
		review.InitModule,
		quiz.InitModule,
		wire.FieldsOf(new(*order.Module), "Hdl", "AdminHdl", "CloseExpiredOrdersJob"),
		wire.FieldsOf(new(*product.Module), "Hdl", "AdminHdl"),
		wire.FieldsOf(new(*notification.Module), "Hdl"),
		wire.FieldsOf(new(*review.Module), "Hdl", "AdminHdl"),
		wire.FieldsOf(new(*quiz.Module), "Hdl"),
		InitSession,
		initGinxServer,
		InitAdminServer,
		initCronJobs,
	)
	return new(App), nil
}
