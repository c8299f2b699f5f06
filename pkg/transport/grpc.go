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
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/log"
	"github.com/kaleido-io/ledgerclient/pkg/tlsconf"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type grpcCaller struct {
	name           string
	target         string
	conn           *grpc.ClientConn
	requestTimeout time.Duration
}

func newGRPCCaller(ctx context.Context, name string, conf, defs *ldconf.EndpointConfig, privileged bool) (*grpcCaller, error) {
	host := confutil.StringNotEmpty(conf.Host, *defs.Host)
	port := confutil.Int(conf.Port, *defs.Port)
	if privileged {
		port = confutil.Int(conf.PrivilegedPort, *defs.PrivilegedPort)
	}
	if port <= 0 || port > 65535 {
		return nil, i18n.NewError(ctx, msgs.MsgConfigEndpointInvalid, name, fmt.Sprintf("port=%d", port))
	}

	c := &grpcCaller{
		name:           name,
		target:         net.JoinHostPort(host, strconv.Itoa(port)),
		requestTimeout: confutil.DurationMin(conf.RequestTimeout, 0, *defs.RequestTimeout),
	}

	creds := insecure.NewCredentials()
	tlsConfig, err := tlsconf.BuildClientTLSConfig(ctx, &conf.TLS)
	if err != nil {
		return nil, err
	}
	if tlsConfig != nil {
		creds = credentials.NewTLS(tlsConfig)
	}

	// the connection is not established until the first call
	c.conn, err = grpc.NewClient(c.target,
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
		grpc.WithConnectParams(grpc.ConnectParams{
			Backoff:           backoff.DefaultConfig,
			MinConnectTimeout: confutil.DurationMin(conf.ConnectionTimeout, 0, *defs.ConnectionTimeout),
		}),
	)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgTransportConnectFailed, c.target)
	}
	log.L(ctx).Debugf("gRPC %s client created for %s", name, c.target)
	return c, nil
}

func (c *grpcCaller) Call(ctx context.Context, service, method string, req, res any) error {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}
	fm := fullMethod(service, method)
	var trailer metadata.MD
	if err := c.conn.Invoke(ctx, fm, req, res, grpc.Trailer(&trailer)); err != nil {
		log.L(ctx).Warnf("gRPC call %s to %s failed: %s", fm, c.target, err)
		return &Error{
			Method:  fm,
			Err:     i18n.WrapError(ctx, err, msgs.MsgTransportCallFailed, fm),
			Trailer: trailer,
		}
	}
	return nil
}

func (c *grpcCaller) Close() error {
	return c.conn.Close()
}
