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

package review

import (
	"sync"

	"github.com/ecodeclub/estore/internal/review/internal/domain"
	"github.com/ecodeclub/estore/internal/review/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/review/internal/service"
	"github.com/ecodeclub/estore/internal/review/internal/web"
	"github.com/ego-component/egorm"
)

type Module struct {
	Hdl      *Handler
	AdminHdl *AdminHandler
	Svc      Service
}

type Handler = web.Handler

type AdminHandler = web.AdminHandler

type Service = service.Service

type Review = domain.Review

type ReviewStatus = domain.ReviewStatus

const (
	PendingStatus  = domain.PendingStatus
	ApprovedStatus = domain.ApprovedStatus
	RejectedStatus = domain.RejectedStatus
)

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.ReviewDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewReviewDAO(db)
}
