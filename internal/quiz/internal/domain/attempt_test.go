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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttempt_Validate(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		attempt Attempt
		wantErr error
	}{
		{
			name:    "合法记录",
			attempt: Attempt{PointsEarned: 8, TotalPoints: 10, PassingScore: 60},
		},
		{
			name:    "零分也是合法记录",
			attempt: Attempt{PointsEarned: 0, TotalPoints: 10, PassingScore: 60},
			wantErr: nil,
		},
		{
			name:    "总分为零",
			attempt: Attempt{PointsEarned: 0, TotalPoints: 0, PassingScore: 60},
			wantErr: ErrInvalidAttempt,
		},
		{
			name:    "得分为负",
			attempt: Attempt{PointsEarned: -1, TotalPoints: 10, PassingScore: 60},
			wantErr: ErrInvalidAttempt,
		},
		{
			name:    "得分超过总分",
			attempt: Attempt{PointsEarned: 11, TotalPoints: 10, PassingScore: 60},
			wantErr: ErrInvalidAttempt,
		},
		{
			name:    "及格线超过百分制",
			attempt: Attempt{PointsEarned: 8, TotalPoints: 10, PassingScore: 101},
			wantErr: ErrInvalidAttempt,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tc.attempt.Validate(), tc.wantErr)
		})
	}
}

func TestAttempt_Grade(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		attempt    Attempt
		wantScore  int64
		wantPassed bool
	}{
		{
			name:       "满分通过",
			attempt:    Attempt{PointsEarned: 10, TotalPoints: 10, PassingScore: 60},
			wantScore:  100,
			wantPassed: true,
		},
		{
			name:       "恰好踩线通过",
			attempt:    Attempt{PointsEarned: 6, TotalPoints: 10, PassingScore: 60},
			wantScore:  60,
			wantPassed: true,
		},
		{
			name:       "差一分不通过",
			attempt:    Attempt{PointsEarned: 59, TotalPoints: 100, PassingScore: 60},
			wantScore:  59,
			wantPassed: false,
		},
		{
			name: "整数截断后不通过",
			// 17/28*100 = 60.71..., 截断为60
			attempt:    Attempt{PointsEarned: 17, TotalPoints: 28, PassingScore: 61},
			wantScore:  60,
			wantPassed: false,
		},
		{
			name:       "零分",
			attempt:    Attempt{PointsEarned: 0, TotalPoints: 10, PassingScore: 60},
			wantScore:  0,
			wantPassed: false,
		},
		{
			name:       "及格线为零必通过",
			attempt:    Attempt{PointsEarned: 0, TotalPoints: 10, PassingScore: 0},
			wantScore:  0,
			wantPassed: true,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.NoError(t, tc.attempt.Validate())
			tc.attempt.Grade()
			assert.Equal(t, tc.wantScore, tc.attempt.Score)
			assert.Equal(t, tc.wantPassed, tc.attempt.Passed)
		})
	}
}
