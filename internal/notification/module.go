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

package notification

import (
	"sync"

	"github.com/ecodeclub/estore/internal/notification/internal/domain"
	"github.com/ecodeclub/estore/internal/notification/internal/event"
	"github.com/ecodeclub/estore/internal/notification/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/notification/internal/service"
	"github.com/ecodeclub/estore/internal/notification/internal/web"
	"github.com/ego-component/egorm"
)

type Module struct {
	Hdl *Handler
	Svc Service

	c *event.OrderStatusEventConsumer
}

type Handler = web.Handler

type Service = service.Service

type Notification = domain.Notification

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.NotificationDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewNotificationDAO(db)
}
