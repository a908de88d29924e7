// Package gateway is the HTTP client for the Backend Gateway, the remote
// service that owns the persistent graph.
//
// # Endpoints
//
// Field names are the wire contract and are preserved exactly:
//
//	GET  /utils/export?name_filter=&label_filter=&type_filter=
//	     -> {nodes: [{id, labels, properties}], relations: [{id, type, startNode, endNode, properties}]}
//	GET  /labels              -> [string]
//	GET  /relationship_types  -> [string]
//	POST /nodes               {labels, properties}                    -> node
//	POST /relations           {startNode, endNode, type, properties}  -> relation
//	PUT  /nodes/{id}          {properties: {x, y}}                    -> node
//
// # Defaults
//
// [Client.CreateNode] sends ["Custom"] when the label list is empty after
// trimming; [Client.CreateRelation] sends "RELATED_TO" for a blank type.
//
// # Errors and Retry
//
// Reads (export, labels, relationship types) are retried on network errors
// and 5xx responses via [httputil.RetryWithBackoff]. Mutations are sent
// exactly once. Errors carry codes from pkg/errors: NOT_FOUND for 404,
// NETWORK_ERROR for transport failures and other non-2xx statuses.
//
// Every request carries an X-Request-ID header so backend logs can be
// correlated with the editor's log file.
package gateway
