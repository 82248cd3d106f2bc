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

package quiz

import (
	"sync"

	"github.com/ecodeclub/estore/internal/quiz/internal/domain"
	"github.com/ecodeclub/estore/internal/quiz/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/quiz/internal/service"
	"github.com/ecodeclub/estore/internal/quiz/internal/web"
	"github.com/ego-component/egorm"
)

type Module struct {
	Hdl *Handler
	Svc Service
}

type Handler = web.Handler

type Service = service.Service

type Attempt = domain.Attempt

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.AttemptDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewAttemptDAO(db)
}
