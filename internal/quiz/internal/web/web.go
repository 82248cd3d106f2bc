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
	"github.com/ecodeclub/estore/internal/quiz/internal/domain"
	"github.com/ecodeclub/estore/internal/quiz/internal/errs"
	"github.com/ecodeclub/estore/internal/quiz/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	invalidInputResult = ginx.Result{
		Code: errs.InvalidInput.Code,
		Msg:  errs.InvalidInput.Msg,
	}
)

type SubmitAttemptReq struct {
	QuizID       int64 `json:"quizId"`
	PointsEarned int64 `json:"pointsEarned"`
	TotalPoints  int64 `json:"totalPoints"`
	PassingScore int64 `json:"passingScore"`
}

type SubmitAttemptResp struct {
	Attempt Attempt `json:"attempt"`
}

type ListAttemptsReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListAttemptsResp struct {
	Total    int64     `json:"total,omitempty"`
	Attempts []Attempt `json:"attempts,omitempty"`
}

type BestAttemptReq struct {
	QuizID int64 `json:"quizId"`
}

type Attempt struct {
	ID           int64 `json:"id"`
	QuizID       int64 `json:"quizId"`
	PointsEarned int64 `json:"pointsEarned"`
	TotalPoints  int64 `json:"totalPoints"`
	PassingScore int64 `json:"passingScore"`
	Score        int64 `json:"score"`
	Passed       bool  `json:"passed"`
	Ctime        int64 `json:"ctime"`
}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/quiz")
	g.POST("/submit", ginx.BS[SubmitAttemptReq](h.SubmitAttempt))
	g.POST("/attempt/list", ginx.BS[ListAttemptsReq](h.ListAttempts))
	g.POST("/attempt/best", ginx.BS[BestAttemptReq](h.BestAttempt))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) SubmitAttempt(ctx *ginx.Context, req SubmitAttemptReq, sess session.Session) (ginx.Result, error) {
	attempt, err := h.svc.Submit(ctx.Request.Context(), domain.Attempt{
		UID:          sess.Claims().Uid,
		QuizID:       req.QuizID,
		PointsEarned: req.PointsEarned,
		TotalPoints:  req.TotalPoints,
		PassingScore: req.PassingScore,
	})
	if errors.Is(err, service.ErrInvalidAttempt) {
		return invalidInputResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: SubmitAttemptResp{Attempt: toAttemptVO(attempt)},
	}, nil
}

func (h *Handler) ListAttempts(ctx *ginx.Context, req ListAttemptsReq, sess session.Session) (ginx.Result, error) {
	attempts, total, err := h.svc.ListAttempts(ctx.Request.Context(), sess.Claims().Uid, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListAttemptsResp{
			Total: total,
			Attempts: slice.Map(attempts, func(idx int, src domain.Attempt) Attempt {
				return toAttemptVO(src)
			}),
		},
	}, nil
}

func (h *Handler) BestAttempt(ctx *ginx.Context, req BestAttemptReq, sess session.Session) (ginx.Result, error) {
	attempt, err := h.svc.FindBestAttempt(ctx.Request.Context(), sess.Claims().Uid, req.QuizID)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: toAttemptVO(attempt),
	}, nil
}

func toAttemptVO(a domain.Attempt) Attempt {
	return Attempt{
		ID:           a.ID,
		QuizID:       a.QuizID,
		PointsEarned: a.PointsEarned,
		TotalPoints:  a.TotalPoints,
		PassingScore: a.PassingScore,
		Score:        a.Score,
		Passed:       a.Passed,
		Ctime:        a.Ctime,
	}
}
