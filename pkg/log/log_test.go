// Copyright © 2024 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogContext(t *testing.T) {
	ctx := WithLogField(context.Background(), "op", "executeContract")
	assert.Equal(t, "executeContract", L(ctx).Data["op"])
}

func TestLogContextLimited(t *testing.T) {
	ctx := WithLogField(context.Background(), "nonce", "0123456789012345678901234567890123456789012345678901234567890123456789")
	assert.Equal(t, "0123456789012345678901234567890123456789012345678901234567890...", L(ctx).Data["nonce"])
}

func TestLevels(t *testing.T) {
	defer SetLevel("info")

	SetLevel("eRrOr")
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
	assert.Equal(t, "error", GetLevel())

	SetLevel("WARNING")
	assert.Equal(t, "warn", GetLevel())

	SetLevel("DEBUG")
	assert.True(t, IsDebugEnabled())
	assert.Equal(t, "debug", GetLevel())

	SetLevel("trace")
	assert.True(t, IsTraceEnabled())
	assert.Equal(t, "trace", GetLevel())

	SetLevel("something else")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.Equal(t, "info", GetLevel())
}

func TestFormats(t *testing.T) {
	defer InitConfig(&ldconf.LogConfig{})

	for _, format := range []string{"simple", "detailed", "json"} {
		InitConfig(&ldconf.LogConfig{
			Format:       confutil.P(format),
			Output:       confutil.P("stdout"),
			DisableColor: confutil.P(true),
			UTC:          confutil.P(true),
		})
		L(context.Background()).Infof("%s logs", format)
	}
}

func TestFileOutput(t *testing.T) {
	defer InitConfig(&ldconf.LogConfig{})

	logFile := path.Join(t.TempDir(), "ledgerclient.log")
	InitConfig(&ldconf.LogConfig{
		Output: confutil.P("file"),
		File: ldconf.LogFileConfig{
			Filename: confutil.P(logFile),
			MaxSize:  confutil.P("1Mb"),
		},
	})
	L(context.Background()).Infof("File logs")

	fileExists, err := os.Stat(logFile)
	require.NoError(t, err)
	assert.False(t, fileExists.IsDir())
}
