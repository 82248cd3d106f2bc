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

package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
)

type AttemptDAO interface {
	Insert(ctx context.Context, a Attempt) (int64, error)
	ListByUID(ctx context.Context, uid int64, offset, limit int) ([]Attempt, error)
	CountByUID(ctx context.Context, uid int64) (int64, error)
	// FindBestByUIDAndQuizID 该用户在该试卷上的最高分记录
	FindBestByUIDAndQuizID(ctx context.Context, uid, quizID int64) (Attempt, error)
}

type gormAttemptDAO struct {
	db *egorm.Component
}

func NewAttemptDAO(db *egorm.Component) AttemptDAO {
	return &gormAttemptDAO{db: db}
}

func (g *gormAttemptDAO) Insert(ctx context.Context, a Attempt) (int64, error) {
	now := time.Now().UnixMilli()
	a.Ctime, a.Utime = now, now
	err := g.db.WithContext(ctx).Create(&a).Error
	return a.Id, err
}

func (g *gormAttemptDAO) ListByUID(ctx context.Context, uid int64, offset, limit int) ([]Attempt, error) {
	var res []Attempt
	err := g.db.WithContext(ctx).Order("id DESC").Offset(offset).Limit(limit).
		Find(&res, "uid = ?", uid).Error
	return res, err
}

func (g *gormAttemptDAO) CountByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Attempt{}).
		Where("uid = ?", uid).Count(&count).Error
	return count, err
}

func (g *gormAttemptDAO) FindBestByUIDAndQuizID(ctx context.Context, uid, quizID int64) (Attempt, error) {
	var res Attempt
	err := g.db.WithContext(ctx).
		Where("uid = ? AND quiz_id = ?", uid, quizID).
		Order("score DESC, id ASC").First(&res).Error
	return res, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Attempt{})
}

type Attempt struct {
	Id           int64 `gorm:"primaryKey;autoIncrement;comment:答题记录自增ID"`
	Uid          int64 `gorm:"not null;index:idx_uid_quiz_id;comment:答题者ID"`
	QuizId       int64 `gorm:"not null;index:idx_uid_quiz_id;comment:试卷ID"`
	PointsEarned int64 `gorm:"not null;comment:实际得分点数"`
	TotalPoints  int64 `gorm:"not null;comment:总分点数"`
	PassingScore int64 `gorm:"not null;comment:及格线百分制"`
	Score        int64 `gorm:"not null;comment:百分制得分"`
	Passed       bool  `gorm:"not null;default:false;comment:是否通过"`
	Ctime        int64
	Utime        int64
}
