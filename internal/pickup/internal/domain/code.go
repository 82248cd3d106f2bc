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

// Code 自提码, 与一个活跃订单一一绑定。
// 码本身只有4位数字, 订单完成后可以被后续订单复用,
// 唯一性只在活跃订单范围内成立。
type Code struct {
	ID      int64
	OrderID int64
	OrderSN string
	Code    string
	Ctime   int64
	Utime   int64
}

// CodeLength 自提码固定4位, 不足补前导零
const CodeLength = 4
