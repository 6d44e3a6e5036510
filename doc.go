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

/*
Package settee provides typed access to the database lifecycle endpoints of a
CouchDB server.

A [Server] wraps a single transport bound to one base URL:

	server, err := settee.New("http://localhost:5984")
	if err != nil {
		panic(err)
	}
	result, err := server.CreateDB(ctx, settee.DBName("orders"))

# Errors

Every failure is an [*Error] carrying a [Kind]:

  - [KindRemote]: the server answered, but its response carried a truthy
    "error" field. The raw response is included in the error.
  - [KindTransport]: the request could not be completed, or the response
    could not be decoded.
  - [KindInvalidArgument]: the input was unusable, for example an empty
    database name.

Callers may safely retry transport errors, but should not blindly retry
remote errors.
*/
package settee
