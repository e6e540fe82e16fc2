/*
Package types defines the data structures shared by the dashboard, the CLI and the
API client.

# Records

TestRecord is one generated entity instance. Its Data field is kept as generic JSON
(maps, slices, numbers, strings) because the schema depends on the entity type and
the dashboard only displays it.

# Payloads

The generate endpoint may answer with a JSON array or with a single JSON object.
GeneratePayload decodes both shapes and remembers which one arrived; the workflow
controller turns it into an ordered result list.

# Status

APIStatus is the dashboard's view of service health:

	Checking...   probe not resolved yet
	Connected     last probe succeeded
	Disconnected  last probe failed
	Error         last generation request failed
*/
package types
