/*
Package dispatch maps a chat command token to a TeslaMate query and renders the result.

A host registers one command, [CommandName], taking a single token. For each invocation it calls
[Dispatcher.Dispatch], which parses the token into an [Action], runs at most two sequential
queries, and passes the rendered text to the host's [Editor] exactly once:

	help      usage text with the version; no queries
	cars      the vehicle list
	status    status of the primary vehicle
	charges   the five most recent charges of the primary vehicle
	drives    the five most recent drives of the primary vehicle
	battery   battery health of the primary vehicle

The primary vehicle is the first one the API lists. It is looked up again on every dispatch. If it
cannot be resolved, per-vehicle queries are skipped and a fixed message is shown instead.

Any other token renders an unknown-command message without querying the API.
*/
package dispatch
