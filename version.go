// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package settee

import (
	"context"
	"encoding/json"
)

// ServerVersion represents a server version response.
type ServerVersion struct {
	// Version is the version of the server.
	Version string `json:"version"`
	// Vendor is the vendor string reported by the server.
	Vendor string `json:"-"`
	// Features is a list of enabled, optional features.
	Features []string `json:"features"`
	// RawResponse is the raw response body returned by the server.
	RawResponse json.RawMessage `json:"-"`
}

// Version returns version and vendor info about the server.
func (s *Server) Version(ctx context.Context) (*ServerVersion, error) {
	s.log.Debug("get server version")
	res, err := s.transport.Get(ctx, "")
	if err != nil {
		return nil, opError(opVersion, err)
	}
	decoded, err := res.Decode()
	if err != nil {
		return nil, opError(opVersion, err)
	}
	if attrError(decoded) {
		return nil, remoteError(opVersion, res)
	}
	var result struct {
		ServerVersion
		Vendor struct {
			Name string `json:"name"`
		} `json:"vendor"`
	}
	if err := res.DecodeJSON(&result); err != nil {
		return nil, opError(opVersion, err)
	}
	version := result.ServerVersion
	version.Vendor = result.Vendor.Name
	version.RawResponse = json.RawMessage(res.Body)
	return &version, nil
}
