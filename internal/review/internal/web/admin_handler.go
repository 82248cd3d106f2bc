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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/review/internal/domain"
	"github.com/ecodeclub/estore/internal/review/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

// AdminHandler 运营侧的评价审核
type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/review")
	g.POST("/pending/list", ginx.B[Page](h.ListPendingReviews))
	g.POST("/approve", ginx.B[ModerateReviewReq](h.ApproveReview))
	g.POST("/reject", ginx.B[ModerateReviewReq](h.RejectReview))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

func (h *AdminHandler) ListPendingReviews(ctx *ginx.Context, req Page) (ginx.Result, error) {
	reviews, total, err := h.svc.ListPendingReviews(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListReviewsResp{
			Total: total,
			Reviews: slice.Map(reviews, func(idx int, src domain.Review) Review {
				vo := toReviewVO(src)
				vo.Status = src.Status.ToUint8()
				return vo
			}),
		},
	}, nil
}

func (h *AdminHandler) ApproveReview(ctx *ginx.Context, req ModerateReviewReq) (ginx.Result, error) {
	return h.moderate(ctx, req.RID, h.svc.ApproveReview)
}

func (h *AdminHandler) RejectReview(ctx *ginx.Context, req ModerateReviewReq) (ginx.Result, error) {
	return h.moderate(ctx, req.RID, h.svc.RejectReview)
}

func (h *AdminHandler) moderate(ctx *ginx.Context, rid int64,
	fn func(ctx context.Context, id int64) error) (ginx.Result, error) {
	err := fn(ctx.Request.Context(), rid)
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		return reviewNotFoundResult, err
	case errors.Is(err, service.ErrInvalidReviewStatus):
		return invalidReviewStatusResult, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}
