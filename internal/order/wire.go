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

//go:build wireinject

package order

import (
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/estore/internal/order/internal/event"
	"github.com/ecodeclub/estore/internal/order/internal/job"
	"github.com/ecodeclub/estore/internal/order/internal/repository"
	"github.com/ecodeclub/estore/internal/order/internal/service"
	"github.com/ecodeclub/estore/internal/order/internal/web"
	"github.com/ecodeclub/estore/internal/pickup"
	"github.com/ecodeclub/estore/internal/pkg/sequencenumber"
	"github.com/ecodeclub/estore/internal/product"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	initOrderStatusEventProducer,
	repository.NewRepository,
	service.NewService,
	sequencenumber.NewGenerator,
	web.NewHandler,
	web.NewAdminHandler,
	initCloseExpiredOrdersJob,
	wire.Struct(new(Module), "*"))

func InitModule(db *egorm.Component, q mq.MQ, cache ecache.Cache,
	pickupModule *pickup.Module, productModule *product.Module) (*Module, error) {
	wire.Build(
		ModuleSet,
		wire.FieldsOf(new(*pickup.Module), "Svc"),
		wire.FieldsOf(new(*product.Module), "Svc"),
	)
	return new(Module), nil
}

func initOrderStatusEventProducer(q mq.MQ) (event.OrderStatusEventProducer, error) {
	return event.NewOrderStatusEventProducer(q)
}

func initCloseExpiredOrdersJob(svc service.Service) *job.CloseExpiredOrdersJob {
	// 超过30分钟未支付的订单被关闭
	return job.NewCloseExpiredOrdersJob(svc, 100, 30, time.Minute)
}
