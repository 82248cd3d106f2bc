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

package order

import (
	"sync"

	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/job"
	"github.com/ecodeclub/estore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/order/internal/service"
	"github.com/ecodeclub/estore/internal/order/internal/web"
	"github.com/ego-component/egorm"
)

type Module struct {
	Hdl      *Handler
	AdminHdl *AdminHandler
	Svc      Service

	// CloseExpiredOrdersJob 由 ioc 注册到 cron
	CloseExpiredOrdersJob *CloseExpiredOrdersJob
}

type Handler = web.Handler

type AdminHandler = web.AdminHandler

type Service = service.Service

type CloseExpiredOrdersJob = job.CloseExpiredOrdersJob

type Order = domain.Order

type OrderItem = domain.OrderItem

type SKU = domain.SKU

type Payment = domain.Payment

type Delivery = domain.Delivery

type OrderStatus = domain.OrderStatus

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}
