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

package transport

import (
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/ffresty"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/log"
	"github.com/kaleido-io/ledgerclient/pkg/rpcmsgs"
	"github.com/kaleido-io/ledgerclient/pkg/tlsconf"
)

// httpCaller talks to a JSON gateway in front of the gRPC services.
// Each call is a POST of the request to {url}/{service}/{method}.
type httpCaller struct {
	name   string
	client *resty.Client
}

func newHTTPCaller(ctx context.Context, name string, conf, defs *ldconf.EndpointConfig) (*httpCaller, error) {
	rawURL := confutil.StringOrEmpty(conf.URL, "")
	if rawURL == "" {
		scheme := "http"
		if conf.TLS.Enabled {
			scheme = "https"
		}
		host := confutil.StringNotEmpty(conf.Host, *defs.Host)
		port := confutil.Int(conf.Port, *defs.Port)
		rawURL = fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(host, strconv.Itoa(port)))
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, i18n.WrapError(ctx, err, msgs.MsgTransportInvalidURL, rawURL)
	}
	tlsConf := conf.TLS
	if u.Scheme == "https" {
		tlsConf.Enabled = true
	}
	tlsConfig, err := tlsconf.BuildClientTLSConfig(ctx, &tlsConf)
	if err != nil {
		return nil, err
	}

	client := ffresty.NewWithConfig(ctx, ffresty.Config{
		URL: strings.TrimSuffix(u.String(), "/"),
		HTTPConfig: ffresty.HTTPConfig{
			TLSClientConfig:       tlsConfig,
			HTTPRequestTimeout:    fftypes.FFDuration(confutil.DurationMin(conf.RequestTimeout, 0, *defs.RequestTimeout)),
			HTTPConnectionTimeout: fftypes.FFDuration(confutil.DurationMin(conf.ConnectionTimeout, 0, *defs.ConnectionTimeout)),
		},
	})
	log.L(ctx).Debugf("HTTP gateway %s client created for %s", name, u)
	return &httpCaller{name: name, client: client}, nil
}

func (c *httpCaller) Call(ctx context.Context, service, method string, req, res any) error {
	fm := fullMethod(service, method)
	httpRes, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(res).
		Post(fm)
	if err != nil {
		log.L(ctx).Warnf("Gateway call %s failed: %s", fm, err)
		return &Error{
			Method: fm,
			Err:    i18n.WrapError(ctx, err, msgs.MsgTransportCallFailed, fm),
		}
	}
	if httpRes.IsError() {
		log.L(ctx).Warnf("Gateway call %s failed with status %d", fm, httpRes.StatusCode())
		return &Error{
			Method:     fm,
			Err:        i18n.NewError(ctx, msgs.MsgTransportHTTPStatus, fm, httpRes.StatusCode(), strings.TrimSpace(httpRes.String())),
			Properties: statusProperties(httpRes),
		}
	}
	return nil
}

// statusProperties flattens the base64 status header into a property map
func statusProperties(res *resty.Response) map[string][]byte {
	props := map[string][]byte{}
	if v := res.Header().Get(rpcmsgs.StatusMetadataKey); v != "" {
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			b, err = base64.RawStdEncoding.DecodeString(v)
		}
		if err == nil {
			props[rpcmsgs.StatusMetadataKey] = b
		}
	}
	return props
}

func (c *httpCaller) Close() error {
	return nil
}
