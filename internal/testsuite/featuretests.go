//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package testsuite

import (
	"time"
)

// FeatureTests runs every ".epd" file in folder and returns a short report
// of the aggregate result, for ad-hoc regression runs from the command line.
func FeatureTests(folder string, searchTime time.Duration, searchDepth int) string {
	total, err := RunEpdFolder(folder, searchTime, searchDepth)
	if err != nil {
		return out.Sprintf("feature tests: %s", err)
	}
	var successRate float64
	if total.Counter > 0 {
		successRate = float64(total.SuccessCounter) / float64(total.Counter) * 100
	}
	return out.Sprintf("Feature Test Result: %d/%d successful (%.1f%%), %d failed, %d not tested\n",
		total.SuccessCounter, total.Counter, successRate, total.FailedCounter, total.NotTestedCounter)
}
