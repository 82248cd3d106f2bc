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
	"github.com/ecodeclub/estore/internal/notification/internal/domain"
	"github.com/ecodeclub/estore/internal/notification/internal/errs"
	"github.com/ecodeclub/estore/internal/notification/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/notification/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	notificationNotFoundResult = ginx.Result{
		Code: errs.NotificationNotFound.Code,
		Msg:  errs.NotificationNotFound.Msg,
	}
)

type ListNotificationsReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListNotificationsResp struct {
	Total         int64          `json:"total,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
}

type Notification struct {
	ID      int64  `json:"id"`
	OrderSN string `json:"orderSN,omitempty"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Read    bool   `json:"read"`
	Ctime   int64  `json:"ctime"`
}

type UnreadCountResp struct {
	Count int64 `json:"count"`
}

type MarkReadReq struct {
	ID int64 `json:"id"`
}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/notification")
	g.POST("/list", ginx.BS[ListNotificationsReq](h.List))
	g.POST("/unread/count", ginx.S(h.UnreadCount))
	g.POST("/read", ginx.BS[MarkReadReq](h.MarkRead))
	g.POST("/read/all", ginx.S(h.MarkAllRead))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) List(ctx *ginx.Context, req ListNotificationsReq, sess session.Session) (ginx.Result, error) {
	total, ns, err := h.svc.List(ctx.Request.Context(), sess.Claims().Uid, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListNotificationsResp{
			Total: total,
			Notifications: slice.Map(ns, func(idx int, src domain.Notification) Notification {
				return Notification{
					ID:      src.ID,
					OrderSN: src.OrderSN,
					Type:    src.Type,
					Title:   src.Title,
					Content: src.Content,
					Read:    src.Read,
					Ctime:   src.Ctime,
				}
			}),
		},
	}, nil
}

func (h *Handler) UnreadCount(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	count, err := h.svc.TotalUnread(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: UnreadCountResp{Count: count},
	}, nil
}

func (h *Handler) MarkRead(ctx *ginx.Context, req MarkReadReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.MarkRead(ctx.Request.Context(), sess.Claims().Uid, req.ID)
	if err != nil {
		if errors.Is(err, dao.ErrNotificationNotFound) {
			return notificationNotFoundResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) MarkAllRead(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	err := h.svc.MarkAllRead(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}
