/*
Package teslamate queries a TeslaMate API server for vehicle telemetry.

A [Client] issues read-only GET requests for the vehicle list, the status of a vehicle, and its
recent charges and drives. Each request carries the static credential headers from [Config]; no
token exchange takes place.

Failures are returned as classified errors rather than strings:

  - [*HTTPError] when the server answered with a status other than 200.
  - [*QueryError] when the request could not be sent, the body was not JSON, or the body lacked the
    expected data envelope. Its Kind field tells these apart.
  - [ErrNoVehicles] when [Client.PrimaryVehicleID] found an empty vehicle list.

# Examples

	client, err := teslamate.New(teslamate.Config{
		BaseURL:      "https://teslamate.example.com",
		ClientID:     id,
		ClientSecret: secret,
	})
	if err != nil {
		panic(err)
	}
	id, err := client.PrimaryVehicleID(ctx)
	if err != nil {
		panic(err)
	}
	drives, err := client.Drives(ctx, id)
*/
package teslamate
