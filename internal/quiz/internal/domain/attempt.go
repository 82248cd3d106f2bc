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

package domain

import "errors"

var ErrInvalidAttempt = errors.New("非法的答题记录")

// Attempt 一次答题记录, 得分在提交时一次性算定
type Attempt struct {
	ID     int64
	UID    int64
	QuizID int64
	// PointsEarned 实际得分点数
	PointsEarned int64
	// TotalPoints 总分点数, 必须大于0
	TotalPoints int64
	// PassingScore 及格线, 百分制
	PassingScore int64
	// Score 百分制得分, 整数截断
	Score  int64
	Passed bool
	Ctime  int64
	Utime  int64
}

func (a Attempt) Validate() error {
	if a.TotalPoints <= 0 ||
		a.PointsEarned < 0 || a.PointsEarned > a.TotalPoints ||
		a.PassingScore < 0 || a.PassingScore > 100 {
		return ErrInvalidAttempt
	}
	return nil
}

// Grade 计算百分制得分与是否通过
func (a *Attempt) Grade() {
	a.Score = a.PointsEarned * 100 / a.TotalPoints
	a.Passed = a.Score >= a.PassingScore
}
