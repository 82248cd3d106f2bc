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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/review/internal/domain"
	"github.com/ecodeclub/estore/internal/review/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/review")
	g.POST("/create", ginx.BS[CreateReviewReq](h.CreateReview))
	g.POST("/list", ginx.BS[ListReviewsReq](h.ListReviews))
	g.POST("/mine", ginx.BS[Page](h.ListMyReviews))
	g.POST("/helpful", ginx.BS[VoteHelpfulReq](h.VoteHelpful))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) CreateReview(ctx *ginx.Context, req CreateReviewReq, sess session.Session) (ginx.Result, error) {
	rid, err := h.svc.CreateReview(ctx.Request.Context(), domain.Review{
		UID:     sess.Claims().Uid,
		SKUSN:   req.SKUSN,
		OrderSN: req.OrderSN,
		Rating:  req.Rating,
		Title:   req.Title,
		Content: req.Content,
	})
	if errors.Is(err, service.ErrInvalidRating) {
		return invalidInputResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: CreateReviewResp{RID: rid},
	}, nil
}

func (h *Handler) ListReviews(ctx *ginx.Context, req ListReviewsReq, _ session.Session) (ginx.Result, error) {
	reviews, total, err := h.svc.ListApprovedReviews(ctx.Request.Context(), req.SKUSN, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListReviewsResp{
			Total: total,
			Reviews: slice.Map(reviews, func(idx int, src domain.Review) Review {
				return toReviewVO(src)
			}),
		},
	}, nil
}

func (h *Handler) ListMyReviews(ctx *ginx.Context, req Page, sess session.Session) (ginx.Result, error) {
	reviews, err := h.svc.ListReviewsByUID(ctx.Request.Context(), sess.Claims().Uid, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListReviewsResp{
			Reviews: slice.Map(reviews, func(idx int, src domain.Review) Review {
				vo := toReviewVO(src)
				// 自己的评价可以看到审核状态
				vo.Status = src.Status.ToUint8()
				return vo
			}),
		},
	}, nil
}

func (h *Handler) VoteHelpful(ctx *ginx.Context, req VoteHelpfulReq, _ session.Session) (ginx.Result, error) {
	err := h.svc.VoteHelpful(ctx.Request.Context(), req.RID)
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

func toReviewVO(r domain.Review) Review {
	return Review{
		ID:           r.ID,
		SKUSN:        r.SKUSN,
		OrderSN:      r.OrderSN,
		Rating:       r.Rating,
		Title:        r.Title,
		Content:      r.Content,
		HelpfulVotes: r.HelpfulVotes,
		Ctime:        r.Ctime,
	}
}
